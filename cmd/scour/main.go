// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/scour"
	"github.com/poiesic/scour/core"
	"github.com/poiesic/scour/corpus"
	"github.com/poiesic/scour/mcp"
	"github.com/poiesic/scour/tools"
)

const version = "0.1.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	sourceFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Path to the document to search",
		},
		&cli.StringFlag{
			Name:    "task",
			Aliases: []string{"t"},
			Usage:   "External ID of a stored task whose context to search",
		},
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the task store directory",
			Value:   "./scour_db",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML engine configuration file",
		},
	}

	return &cli.App{
		Name:    "scour",
		Usage:   "Multi-strategy text search over long documents",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search a document and print ranked results",
				ArgsUsage: "KEYWORD [KEYWORD...]",
				Action:    searchCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Search strategy (context, phrase, boolean)",
						Value:   "context",
					},
					&cli.IntFlag{
						Name:    "max-results",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results (0 uses the strategy default)",
					},
					&cli.IntFlag{
						Name:  "context-chars",
						Usage: "Snippet size in characters (0 uses the strategy default)",
					},
					&cli.IntFlag{
						Name:    "window",
						Aliases: []string{"w"},
						Usage:   "Proximity window in characters (0 derives it from the snippet size)",
					},
					&cli.IntFlag{
						Name:  "passage-size",
						Usage: "Passage size for relevance scoring (0 uses the default)",
					},
				}, sourceFlags...),
			},
			{
				Name:   "context",
				Usage:  "Print the text surrounding a cursor position",
				Action: contextCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:     "cursor",
						Usage:    "Byte offset into the document",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "before",
						Usage: "Characters to include before the cursor",
						Value: scour.DefaultContextBefore,
					},
					&cli.IntFlag{
						Name:  "after",
						Usage: "Characters to include after the cursor",
						Value: scour.DefaultContextAfter,
					},
				}, sourceFlags...),
			},
			{
				Name:   "serve",
				Usage:  "Serve the search tools over the Model Context Protocol",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "http",
						Usage: "Listen address for HTTP transport (default is stdio)",
					},
				}, sourceFlags...),
			},
			{
				Name:      "import",
				Usage:     "Import a directory of task JSON files into the task store",
				ArgsUsage: "DIR",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the task store directory",
						Value:   "./scour_db",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of files to parse concurrently (0 uses the default)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N files",
						Value: 100,
					},
				},
			},
			{
				Name:  "tasks",
				Usage: "Inspect stored tasks and answers",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List stored tasks",
						Action: tasksListCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "db",
								Aliases: []string{"d"},
								Usage:   "Path to the task store directory",
								Value:   "./scour_db",
							},
							&cli.StringFlag{
								Name:  "domain",
								Usage: "Only list tasks in this domain",
							},
						},
					},
					{
						Name:      "show",
						Usage:     "Show one task and its recorded answers",
						ArgsUsage: "TASK_ID",
						Action:    tasksShowCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "db",
								Aliases: []string{"d"},
								Usage:   "Path to the task store directory",
								Value:   "./scour_db",
							},
						},
					},
				},
			},
		},
	}
}

// loadConfig reads the engine configuration and applies flag overrides.
func loadConfig(c *cli.Context) (*tools.Config, error) {
	cfg, err := tools.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.Int("passage-size") > 0 {
		cfg.PassageSize = c.Int("passage-size")
	}
	if c.Int("window") > 0 {
		cfg.Window = c.Int("window")
	}
	return cfg, nil
}

// openSession builds a session from --file or from a stored task via --task.
// The returned cleanup func releases whatever the session was built from.
func openSession(c *cli.Context, cfg *tools.Config) (*scour.Session, func(), error) {
	filePath := c.String("file")
	taskID := c.String("task")

	switch {
	case filePath != "" && taskID != "":
		return nil, nil, fmt.Errorf("--file and --task are mutually exclusive")

	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read document: %w", err)
		}
		session, err := cfg.NewSession(string(data))
		if err != nil {
			return nil, nil, err
		}
		return session, func() {}, nil

	case taskID != "":
		store, err := scour.NewStore(c.String("db"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open store: %w", err)
		}
		session, _, err := store.OpenTaskSession(context.Background(), taskID,
			scour.WithConfig(cfg.SearchConfig()))
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		return session, func() { store.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("either --file or --task is required")
	}
}

func searchCommand(c *cli.Context) error {
	keywords := c.Args().Slice()
	if len(keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	session, cleanup, err := openSession(c, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	maxResults := c.Int("max-results")
	contextChars := c.Int("context-chars")

	var results []core.SearchResult
	switch strategy := c.String("strategy"); strategy {
	case "context":
		maxResults, contextChars = cfg.Context.Apply(maxResults, contextChars)
		results = session.SearchContext(keywords, maxResults, contextChars)
	case "phrase":
		maxResults, contextChars = cfg.Phrase.Apply(maxResults, contextChars)
		results = session.SearchExactPhrase(keywords, maxResults, contextChars)
	case "boolean":
		maxResults, contextChars = cfg.Boolean.Apply(maxResults, contextChars)
		results = session.SearchBooleanAnd(keywords, maxResults, contextChars)
	default:
		return fmt.Errorf("unknown strategy %q: must be one of context, phrase, boolean", strategy)
	}

	fmt.Fprintln(c.App.Writer, tools.FormatResults(keywords, results))
	return nil
}

func contextCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	session, cleanup, err := openSession(c, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Fprintln(c.App.Writer, session.ContextAt(c.Int("cursor"), c.Int("before"), c.Int("after")))
	return nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	session, cleanup, err := openSession(c, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	server, err := mcp.NewServer(session, mcp.Config{
		ServerInfo: mcp.ServerInfo{Name: "scour", Version: version},
		Tools:      cfg,
	})
	if err != nil {
		return err
	}

	if addr := c.String("http"); addr != "" {
		slog.Info("serving MCP over HTTP", "addr", addr)
		return http.ListenAndServe(addr, mcp.ServeHTTP(server))
	}

	slog.Info("serving MCP over stdio")
	return mcp.ServeStdio(context.Background(), server, os.Stdin, os.Stdout)
}

func importCommand(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		return fmt.Errorf("task directory argument is required")
	}

	store, err := scour.NewStore(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	opts := []corpus.Option{corpus.WithProgress(os.Stderr, c.Int("report-interval"))}
	if c.Int("workers") > 0 {
		opts = append(opts, corpus.WithWorkers(c.Int("workers")))
	}

	importer, err := corpus.NewImporter(store.TaskRepository(), opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Task directory: %s\n", dir)
	fmt.Fprintln(os.Stderr)

	stats, err := importer.Import(context.Background(), dir)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Imported %d tasks (%d skipped)\n", stats.Imported, stats.Skipped)
	return nil
}

func tasksListCommand(c *cli.Context) error {
	store, err := scour.NewStore(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	var records []*core.TaskRecord
	if domain := c.String("domain"); domain != "" {
		records, err = store.TaskRepository().GetTaskRecordsByDomain(ctx, domain)
	} else {
		records, err = store.TaskRepository().GetAllTaskRecords(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Found %d tasks\n", len(records))
	for _, record := range records {
		fmt.Fprintf(c.App.Writer, "%s  %s/%s  %s/%s  %d chars\n",
			record.TaskID, record.Domain, record.SubDomain,
			record.Difficulty, record.Length, len(record.Context))
	}
	return nil
}

func tasksShowCommand(c *cli.Context) error {
	taskID := c.Args().First()
	if taskID == "" {
		return fmt.Errorf("task id argument is required")
	}

	store, err := scour.NewStore(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	record, err := store.TaskRepository().GetTaskRecordByTaskID(ctx, taskID)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Task: %s\n", record.TaskID)
	fmt.Fprintf(c.App.Writer, "Domain: %s/%s\n", record.Domain, record.SubDomain)
	fmt.Fprintf(c.App.Writer, "Difficulty: %s  Length: %s\n", record.Difficulty, record.Length)
	fmt.Fprintf(c.App.Writer, "Question: %s\n", record.Question)
	for i, choice := range record.Choices {
		fmt.Fprintf(c.App.Writer, "  %c) %s\n", 'A'+i, choice)
	}
	fmt.Fprintf(c.App.Writer, "Context: %d chars\n", len(record.Context))

	answers, err := store.AnswerRepository().GetAnswersByTaskID(ctx, taskID)
	if err != nil {
		return err
	}
	if len(answers) > 0 {
		fmt.Fprintf(c.App.Writer, "\nAnswers (%d):\n", len(answers))
		for _, answer := range answers {
			fmt.Fprintf(c.App.Writer, "  %s  %s\n", answer.InsertedAt.Format(time.RFC3339), answer.Predicted)
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
