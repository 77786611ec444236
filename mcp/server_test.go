package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scour"
)

const wallDoc = "The Great Wall of China is a series of fortifications built " +
	"across the historical northern borders of ancient Chinese states. " +
	"Several walls were built from as early as the 7th century BC. " +
	"The best-known sections of the wall were built by the Ming Dynasty (1368-1644). " +
	"The total length of all sections ever built measures about 21196 kilometers. " +
	"Watchtowers along the wall served as signal stations and garrison posts. " +
	"Today the wall is one of the most recognizable landmarks in the world."

func newTestServer(t *testing.T) *Server {
	t.Helper()
	session, err := scour.NewSession(wallDoc)
	require.NoError(t, err)
	server, err := NewServer(session, Config{})
	require.NoError(t, err)
	return server
}

// resultText digs the tool output text out of a tools/call response.
func resultText(t *testing.T, resp MCPResponse) string {
	t.Helper()
	require.Nil(t, resp.Error)
	result, ok := resp.Result.(map[string]any)
	require.True(t, ok)
	content, ok := result["content"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, content, 1)
	text, ok := content[0]["text"].(string)
	require.True(t, ok)
	return text
}

func TestNewServer(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		_, err := NewServer(nil, Config{})
		assert.ErrorIs(t, err, ErrSessionRequired)
	})

	t.Run("fills in defaults", func(t *testing.T) {
		server := newTestServer(t)
		assert.Equal(t, "scour", server.config.ServerInfo.Name)
		assert.Equal(t, "dev", server.config.ServerInfo.Version)
		require.NotNil(t, server.config.Tools)
		assert.Equal(t, scour.DefaultContextMaxResults, server.config.Tools.Context.MaxResults)
	})

	t.Run("keeps explicit config", func(t *testing.T) {
		session, err := scour.NewSession(wallDoc)
		require.NoError(t, err)
		server, err := NewServer(session, Config{
			ServerInfo: ServerInfo{Name: "custom", Version: "1.2.3"},
		})
		require.NoError(t, err)
		assert.Equal(t, "custom", server.config.ServerInfo.Name)
		assert.Equal(t, "1.2.3", server.config.ServerInfo.Version)
	})
}

func TestHandleRequest_Initialize(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
	})

	require.Nil(t, resp.Error)
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, 1, resp.ID)

	result, ok := resp.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, protocolVersion, result["protocolVersion"])

	info, ok := result["serverInfo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "scour", info["name"])
}

func TestHandleRequest_ToolsList(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0",
		ID:      2,
		Method:  "tools/list",
	})

	require.Nil(t, resp.Error)
	result, ok := resp.Result.(map[string]any)
	require.True(t, ok)
	listed, ok := result["tools"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, listed, 4)

	names := make([]string, 0, len(listed))
	for _, tool := range listed {
		names = append(names, tool["name"].(string))
	}
	assert.Contains(t, names, "search_context")
	assert.Contains(t, names, "search_exact_phrase")
	assert.Contains(t, names, "search_boolean_and")
	assert.Contains(t, names, "get_context_at_cursor")
}

func TestHandleRequest_ToolsCall(t *testing.T) {
	server := newTestServer(t)
	call := func(params string) MCPResponse {
		return server.HandleRequest(context.Background(), MCPRequest{
			JSONRPC: "2.0",
			ID:      3,
			Method:  "tools/call",
			Params:  json.RawMessage(params),
		})
	}

	t.Run("search tool returns formatted results", func(t *testing.T) {
		resp := call(`{"name":"search_context","arguments":{"keywords":["Ming","Dynasty"]}}`)
		text := resultText(t, resp)
		assert.Contains(t, text, "Search Results for [Ming Dynasty]")
		assert.Contains(t, text, "Ming Dynasty")
	})

	t.Run("cursor tool returns surrounding text", func(t *testing.T) {
		resp := call(`{"name":"get_context_at_cursor","arguments":{"cursor":0,"chars_before":0,"chars_after":4}}`)
		assert.Equal(t, "The ", resultText(t, resp))
	})

	t.Run("no matches is a successful empty payload", func(t *testing.T) {
		resp := call(`{"name":"search_exact_phrase","arguments":{"keywords":["qqqqq"]}}`)
		text := resultText(t, resp)
		assert.Contains(t, text, "No matches found")
	})

	t.Run("unknown tool", func(t *testing.T) {
		resp := call(`{"name":"search_vectors","arguments":{}}`)
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrCodeToolNotFound, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "search_vectors")
	})

	t.Run("malformed params", func(t *testing.T) {
		resp := call(`{"name":`)
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrCodeInvalidParams, resp.Error.Code)
	})

	t.Run("wrong argument types", func(t *testing.T) {
		resp := call(`{"name":"search_context","arguments":{"keywords":"not-an-array"}}`)
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrCodeInvalidParams, resp.Error.Code)
	})
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	server := newTestServer(t)

	resp := server.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0",
		ID:      4,
		Method:  "resources/list",
	})

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeMethodNotFound, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "resources/list")
}

func TestServeStdio(t *testing.T) {
	server := newTestServer(t)

	in := strings.NewReader(
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n" +
			`this is not json` + "\n" +
			`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n")
	var out bytes.Buffer

	err := ServeStdio(context.Background(), server, in, &out)
	require.NoError(t, err)

	decoder := json.NewDecoder(&out)
	var responses []MCPResponse
	for decoder.More() {
		var resp MCPResponse
		require.NoError(t, decoder.Decode(&resp))
		responses = append(responses, resp)
	}
	require.Len(t, responses, 3)

	assert.Nil(t, responses[0].Error)
	require.NotNil(t, responses[1].Error)
	assert.Equal(t, ErrCodeParseError, responses[1].Error.Code)
	assert.Nil(t, responses[2].Error)
}

func TestServeStdio_Cancelled(t *testing.T) {
	server := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n")
	var out bytes.Buffer

	err := ServeStdio(ctx, server, in, &out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServeHTTP(t *testing.T) {
	server := newTestServer(t)
	handler := ServeHTTP(server)

	t.Run("post request", func(t *testing.T) {
		body := `{"jsonrpc":"2.0","id":1,"method":"initialize"}`
		req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp MCPResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Nil(t, resp.Error)
		assert.NotNil(t, resp.Result)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("not json"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		var resp MCPResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrCodeParseError, resp.Error.Code)
	})

	t.Run("rejects non-post methods", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
