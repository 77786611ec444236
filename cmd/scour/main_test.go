package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func writeDoc(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestSearchCommand(t *testing.T) {
	t.Run("requires keywords", func(t *testing.T) {
		err := newApp().Run([]string{"scour", "search"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "keyword")
	})

	t.Run("requires a document source", func(t *testing.T) {
		err := newApp().Run([]string{"scour", "search", "wall"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--file or --task")
	})

	t.Run("rejects both sources", func(t *testing.T) {
		err := newApp().Run([]string{"scour", "search", "--file", "a.txt", "--task", "task-001", "wall"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})

	t.Run("rejects an unknown strategy", func(t *testing.T) {
		path := writeDoc(t, "The quick brown fox jumps over the lazy dog.")
		err := newApp().Run([]string{"scour", "search", "--file", path, "--strategy", "vector", "fox"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown strategy")
	})

	t.Run("searches a file", func(t *testing.T) {
		path := writeDoc(t, "The quick brown fox jumps over the lazy dog.")

		var buf bytes.Buffer
		app := newApp()
		app.Writer = &buf

		err := app.Run([]string{"scour", "search", "--file", path, "--strategy", "phrase", "quick", "fox"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Search Results for [quick fox]")
	})

	t.Run("strategy has default value context", func(t *testing.T) {
		app := newApp()
		cmd := findCommand(t, app, "search")

		var strategyFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "strategy" {
				strategyFlag = f
				break
			}
		}
		require.NotNil(t, strategyFlag)
		assert.Equal(t, "context", strategyFlag.Value)
	})
}

func TestContextCommand(t *testing.T) {
	t.Run("prints surrounding text", func(t *testing.T) {
		path := writeDoc(t, "The quick brown fox jumps over the lazy dog.")

		var buf bytes.Buffer
		app := newApp()
		app.Writer = &buf

		err := app.Run([]string{"scour", "context", "--file", path,
			"--cursor", "4", "--before", "0", "--after", "5"})
		require.NoError(t, err)
		assert.Equal(t, "quick\n", buf.String())
	})

	t.Run("cursor is required", func(t *testing.T) {
		path := writeDoc(t, "The quick brown fox jumps over the lazy dog.")
		err := newApp().Run([]string{"scour", "context", "--file", path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cursor")
	})
}

func TestImportAndTasksCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db")

	taskDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, "task-001.json"),
		[]byte(`{"_id":"task-001","domain":"fiction","sub_domain":"mystery","difficulty":"easy","length":"short","question":"Who hid the letter?","context":"The letter was hidden by the gardener.","choices":["The cook","The gardener","The butler","Nobody"]}`),
		0o644))

	err := newApp().Run([]string{"scour", "import", "--db", dbPath, taskDir})
	require.NoError(t, err)

	t.Run("list shows imported tasks", func(t *testing.T) {
		var buf bytes.Buffer
		app := newApp()
		app.Writer = &buf

		err := app.Run([]string{"scour", "tasks", "list", "--db", dbPath})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Found 1 tasks")
		assert.Contains(t, buf.String(), "task-001")
	})

	t.Run("list filters by domain", func(t *testing.T) {
		var buf bytes.Buffer
		app := newApp()
		app.Writer = &buf

		err := app.Run([]string{"scour", "tasks", "list", "--db", dbPath, "--domain", "poetry"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Found 0 tasks")
	})

	t.Run("show prints the task", func(t *testing.T) {
		var buf bytes.Buffer
		app := newApp()
		app.Writer = &buf

		err := app.Run([]string{"scour", "tasks", "show", "--db", dbPath, "task-001"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Who hid the letter?")
		assert.Contains(t, buf.String(), "B) The gardener")
	})

	t.Run("search over a stored task", func(t *testing.T) {
		var buf bytes.Buffer
		app := newApp()
		app.Writer = &buf

		err := app.Run([]string{"scour", "search", "--db", dbPath, "--task", "task-001",
			"--strategy", "boolean", "gardener", "letter"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "gardener")
	})

	t.Run("show fails for an unknown task", func(t *testing.T) {
		err := newApp().Run([]string{"scour", "tasks", "show", "--db", dbPath, "task-999"})
		assert.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		testCases := []string{
			"DEBUG",
			"Info",
			"WaRn",
			"ERROR",
		}

		for _, tc := range testCases {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "loud")
	})

	t.Run("default log level is info", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				level := c.String("log-level")
				assert.Equal(t, "info", level)
				return nil
			},
		}

		err := app.Run([]string{"test"})
		require.NoError(t, err)
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				level := c.String("log-level")
				assert.Equal(t, "debug", level)
				return nil
			},
		}

		err := app.Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()

	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %s not found", name)
	return nil
}

func TestMain(m *testing.M) {
	// Run tests
	code := m.Run()
	os.Exit(code)
}
