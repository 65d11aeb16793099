package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestFetchCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "passage",
		Commands: []*cli.Command{
			{
				Name:   "fetch",
				Usage:  "Fetch a Wikipedia article and store it",
				Action: fetchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Article title to fetch",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "lang",
						Usage: "Wikipedia language edition (overrides config)",
					},
				},
			},
		},
	}

	t.Run("title is required", func(t *testing.T) {
		args := []string{"passage", "fetch"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
	})

	t.Run("lang has no default value", func(t *testing.T) {
		cmd := app.Commands[0]
		var langFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "lang" {
				langFlag = f
				break
			}
		}
		require.NotNil(t, langFlag)
		assert.Empty(t, langFlag.Value)
		assert.False(t, langFlag.Required)
	})
}

func TestAddCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "passage",
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Store local text or PDF files",
				Action: addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "title",
						Usage: "Document title (single file only)",
					},
				},
			},
		},
	}

	t.Run("no files fails", func(t *testing.T) {
		args := []string{"passage", "add"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one file")
	})

	t.Run("title with multiple files fails", func(t *testing.T) {
		args := []string{"passage", "add", "--title", "Notes", "a.txt", "b.txt"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "single file")
	})
}

func TestCompareCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "passage",
		Commands: []*cli.Command{
			{
				Name:   "compare",
				Usage:  "Compare terms by embedding similarity",
				Action: compareCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "mock",
						Usage: "Use the deterministic in-process embedder",
					},
				},
			},
		},
	}

	t.Run("fewer than two terms fails", func(t *testing.T) {
		args := []string{"passage", "compare", "lantern"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least two terms")
	})
}

func TestSearchCommandFlags(t *testing.T) {
	cmd := &cli.Command{
		Name:   "search",
		Usage:  "Search the corpus; without a query, open the interactive UI",
		Action: searchCommand,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "topk",
				Aliases: []string{"k"},
				Usage:   "Number of results to return",
			},
			&cli.BoolFlag{
				Name:  "mock",
				Usage: "Use the deterministic in-process embedder",
			},
		},
	}

	t.Run("topk has alias k and no default", func(t *testing.T) {
		var topkFlag *cli.IntFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "topk" {
				topkFlag = f
				break
			}
		}
		require.NotNil(t, topkFlag)
		assert.Equal(t, []string{"k"}, topkFlag.Aliases)
		assert.Zero(t, topkFlag.Value)
	})

	t.Run("mock defaults to false", func(t *testing.T) {
		var mockFlag *cli.BoolFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.BoolFlag); ok && f.Name == "mock" {
				mockFlag = f
				break
			}
		}
		require.NotNil(t, mockFlag)
		assert.False(t, mockFlag.Value)
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

		err := app.Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "verbose")
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

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}
