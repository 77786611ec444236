package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/poiesic/scour/core"
	"github.com/poiesic/scour/tools"
)

// ToolHandler executes one tool with the arguments parsed from an MCP
// request and returns the text payload.
type ToolHandler func(ctx context.Context, args map[string]any) (string, error)

func (s *Server) registerTools() {
	searchSchema := searchToolSchema()

	s.register(mcp.Tool{
		Name: "search_context",
		Description: "Search the document for passages relevant to the keywords. " +
			"Falls back from frequency ranking to proximity windows to approximate matching.",
		InputSchema: searchSchema,
	}, s.searchHandler(s.session.SearchContext, s.config.Tools.Context))

	s.register(mcp.Tool{
		Name: "search_exact_phrase",
		Description: "Search the document for the keywords as one literal phrase, in order. " +
			"Degrades to proximity search when the phrase never occurs.",
		InputSchema: searchSchema,
	}, s.searchHandler(s.session.SearchExactPhrase, s.config.Tools.Phrase))

	s.register(mcp.Tool{
		Name: "search_boolean_and",
		Description: "Search the document for windows where every keyword occurs near the others. " +
			"Strict conjunction; nothing is reported unless all keywords are present.",
		InputSchema: searchSchema,
	}, s.searchHandler(s.session.SearchBooleanAnd, s.config.Tools.Boolean))

	s.register(mcp.Tool{
		Name:        "get_context_at_cursor",
		Description: "Read the document text around a cursor reported by an earlier search result.",
		InputSchema: cursorToolSchema(),
	}, s.contextHandler())
}

func (s *Server) register(tool mcp.Tool, handler ToolHandler) {
	s.tools = append(s.tools, tool)
	s.handlers[tool.Name] = handler
}

// searchHandler wraps one session search method. Zero-valued arguments pick
// up the configured per-tool defaults before the session sees them.
func (s *Server) searchHandler(run func(keywords []string, maxResults, contextChars int) []core.SearchResult, defaults tools.ToolConfig) ToolHandler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		var p tools.SearchParams
		if err := decodeArgs(args, &p); err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidArguments, err)
		}
		maxResults, contextChars := defaults.Apply(p.MaxResults, p.ContextChars)
		results := run(p.Keywords, maxResults, contextChars)
		return tools.FormatResults(p.Keywords, results), nil
	}
}

func (s *Server) contextHandler() ToolHandler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		var p tools.ContextParams
		if err := decodeArgs(args, &p); err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidArguments, err)
		}
		before, after := p.Radii()
		return s.session.ContextAt(p.Cursor, before, after), nil
	}
}

// decodeArgs routes the argument map through JSON to fill a typed params
// struct.
func decodeArgs(args map[string]any, v any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// searchToolSchema is the input schema shared by the three search tools.
func searchToolSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"keywords": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Keywords to search for",
			},
			"max_results": map[string]any{
				"type":        "integer",
				"description": "Maximum number of results to return",
			},
			"context_chars": map[string]any{
				"type":        "integer",
				"description": "Total snippet size in characters, centered on each result cursor",
			},
		},
		"required": []string{"keywords"},
	}
}

// cursorToolSchema is the input schema of the context expansion tool.
func cursorToolSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cursor": map[string]any{
				"type":        "integer",
				"description": "Byte offset reported by an earlier search result",
			},
			"chars_before": map[string]any{
				"type":        "integer",
				"description": "Characters to include before the cursor",
			},
			"chars_after": map[string]any{
				"type":        "integer",
				"description": "Characters to include after the cursor",
			},
		},
		"required": []string{"cursor"},
	}
}
