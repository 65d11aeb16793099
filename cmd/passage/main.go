// Copyright 2025 Semasia Systems
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
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/semasia/passage"
	"github.com/semasia/passage/ai"
	"github.com/semasia/passage/ai/mock"
	"github.com/semasia/passage/chunker"
	"github.com/semasia/passage/config"
	"github.com/semasia/passage/core"
	"github.com/semasia/passage/ingest"
	"github.com/semasia/passage/rank"
	"github.com/semasia/passage/search"
	"github.com/semasia/passage/tui"
	"github.com/semasia/passage/wiki"
)

func main() {
	// Load .env for API keys
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "passage",
		Usage: "Local-first semantic search over a personal document corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to document store directory (overrides config)",
			},
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
			{
				Name:      "add",
				Usage:     "Store local text or PDF files",
				ArgsUsage: "FILE...",
				Action:    addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "title",
						Usage: "Document title (single file only)",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List stored documents",
				Action: listCommand,
			},
			{
				Name:   "show",
				Usage:  "Show a stored document",
				Action: showCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "Document ID (hex)",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Document title",
					},
					&cli.BoolFlag{
						Name:  "chunks",
						Usage: "Print the document's chunks",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the corpus; without a query, open the interactive UI",
				ArgsUsage: "[QUERY]",
				Action:    searchCommand,
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
			},
			{
				Name:      "compare",
				Usage:     "Compare terms by embedding similarity",
				ArgsUsage: "TERM TERM...",
				Action:    compareCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "mock",
						Usage: "Use the deterministic in-process embedder",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func fetchCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lib, err := openLibrary(c, cfg)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	lang := c.String("lang")
	if lang == "" {
		lang = cfg.Wiki.Language
	}

	clientOpts := []wiki.Option{wiki.WithLanguage(lang)}
	if cfg.Wiki.UserAgent != "" {
		clientOpts = append(clientOpts, wiki.WithUserAgent(cfg.Wiki.UserAgent))
	}
	client := wiki.NewClient(clientOpts...)

	article, err := client.FetchArticle(ctx, c.String("title"))
	if err != nil {
		return fmt.Errorf("failed to fetch article: %w", err)
	}

	pipeline, err := newPipeline(lib, cfg)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	doc := &core.Document{
		Title:  article.Title,
		Source: article.URL,
		Text:   article.Text,
	}
	stored, chunkCount, err := pipeline.Ingest(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to ingest article: %w", err)
	}

	fmt.Printf("Stored %q (%016x) in %d chunks\n", stored.Title, uint64(stored.Id), chunkCount)
	return nil
}

func addCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}
	titleOverride := c.String("title")
	if titleOverride != "" && c.NArg() > 1 {
		return fmt.Errorf("--title applies to a single file only")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lib, err := openLibrary(c, cfg)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	pipeline, err := newPipeline(lib, cfg)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	for _, path := range c.Args().Slice() {
		title, text, err := ingest.ExtractFile(path)
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", path, err)
		}
		if titleOverride != "" {
			title = titleOverride
		}

		doc := &core.Document{
			Title:  title,
			Source: path,
			Text:   text,
		}
		stored, chunkCount, err := pipeline.Ingest(ctx, doc)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}

		fmt.Printf("Stored %q (%016x) in %d chunks\n", stored.Title, uint64(stored.Id), chunkCount)
	}

	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lib, err := openLibrary(c, cfg)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	docs, err := lib.Documents().ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if len(docs) == 0 {
		fmt.Println("No documents stored")
		return nil
	}

	for _, doc := range docs {
		fmt.Printf("%016x  %-32s  %7d chars  %s\n",
			uint64(doc.Id), doc.Title, len(doc.Text), doc.FetchedAt.Format("2006-01-02"))
	}

	chunkCount, err := lib.Chunks().CountChunks(ctx)
	if err != nil {
		return fmt.Errorf("failed to count chunks: %w", err)
	}
	fmt.Printf("%d documents, %d chunks\n", len(docs), chunkCount)
	return nil
}

func showCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lib, err := openLibrary(c, cfg)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	var doc *core.Document
	switch {
	case c.String("id") != "":
		id, parseErr := strconv.ParseUint(c.String("id"), 16, 64)
		if parseErr != nil {
			return fmt.Errorf("invalid document id %q: %w", c.String("id"), parseErr)
		}
		doc, err = lib.Documents().GetDocument(ctx, core.ID(id))
	case c.String("title") != "":
		doc, err = lib.Documents().GetDocumentByTitle(ctx, c.String("title"))
	default:
		return fmt.Errorf("either --id or --title is required")
	}
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	fmt.Printf("Title:   %s\n", doc.Title)
	fmt.Printf("ID:      %016x\n", uint64(doc.Id))
	if doc.Source != "" {
		fmt.Printf("Source:  %s\n", doc.Source)
	}
	fmt.Printf("Fetched: %s\n", doc.FetchedAt.Format(time.RFC3339))
	fmt.Printf("Length:  %d chars\n", len(doc.Text))

	if !c.Bool("chunks") {
		return nil
	}

	chunks, err := lib.Chunks().GetChunks(ctx, doc.Id)
	if err != nil {
		return fmt.Errorf("failed to load chunks: %w", err)
	}
	fmt.Printf("\n%d chunks:\n", len(chunks))
	for _, chunk := range chunks {
		fmt.Printf("\n--- chunk %d (%d chars) ---\n%s\n", chunk.Seq, len(chunk.Text), chunk.Text)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lib, err := openLibrary(c, cfg)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	index, err := buildIndex(ctx, lib, cfg)
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	searcher, err := lib.NewSearcher(index)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	topK := c.Int("topk")
	if topK <= 0 {
		topK = cfg.Search.TopK
	}

	// No query on the command line means interactive mode.
	if c.NArg() == 0 {
		program := tea.NewProgram(tui.New(searcher, topK))
		_, err := program.Run()
		return err
	}

	query := strings.Join(c.Args().Slice(), " ")
	results, err := searcher.Search(ctx, query, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits for %q\n", len(results), query)
	verbatim := false
	for i, hit := range results {
		marker := ""
		if search.MatchesAllWords(hit.Chunk.Text, query) {
			marker = " *"
			verbatim = true
		}
		fmt.Printf("%d: %s %.3f%s [%016x/%d]\n   %s\n",
			i+1, tui.ScoreBar(hit.Score, 20), hit.Score, marker,
			uint64(hit.Chunk.DocumentId), hit.Chunk.Seq, hit.Chunk.Text)
	}
	if verbatim {
		fmt.Println("* contains every query word")
	}
	return nil
}

func compareCommand(c *cli.Context) error {
	ctx := context.Background()

	terms := c.Args().Slice()
	if len(terms) < 2 {
		return fmt.Errorf("at least two terms are required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lib, err := openLibrary(c, cfg)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	vectors, err := lib.Provider().Embedder().EmbedTexts(ctx, terms)
	if err != nil {
		return fmt.Errorf("failed to embed terms: %w", err)
	}

	matrix, err := rank.Matrix(vectors)
	if err != nil {
		return fmt.Errorf("failed to compute similarities: %w", err)
	}

	for i, row := range matrix {
		fmt.Printf("%-16s", terms[i])
		for _, score := range row {
			fmt.Printf(" %6.3f", score)
		}
		fmt.Println()
	}

	fmt.Println()
	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			fmt.Printf("%s / %s: %.3f (%s)\n",
				terms[i], terms[j], matrix[i][j], tui.InterpretScore(matrix[i][j]))
		}
	}
	return nil
}

// loadConfig resolves the application configuration, preferring an
// explicit --config path over the default lookup chain.
func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}

	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded configuration", "path", path)
	return cfg, nil
}

// openLibrary opens the document store named by --db or the config file.
// Commands that define a --mock flag get the deterministic embedder
// instead of the configured endpoint.
func openLibrary(c *cli.Context, cfg *config.AppConfig) (*passage.Library, error) {
	dbPath := c.String("db")
	if dbPath == "" {
		dbPath = cfg.Storage.Path
	}

	var opts []passage.LibraryOption
	if c.Bool("mock") {
		opts = append(opts, passage.WithProvider(mock.NewMockProvider()))
	} else {
		aiConfig := ai.NewConfig(
			ai.WithBaseURL(cfg.Embedder.BaseURL),
			ai.WithEmbeddingModel(cfg.Embedder.Model),
			ai.WithAPIKey(os.Getenv(cfg.Embedder.APIKeyEnv)),
		)
		opts = append(opts, passage.WithAIConfig(aiConfig))
	}

	return passage.NewLibrary(dbPath, opts...)
}

func newPipeline(lib *passage.Library, cfg *config.AppConfig) (*ingest.Pipeline, error) {
	splitter, err := chunker.New(
		chunker.WithMaxLength(cfg.Chunker.MaxLength),
		chunker.WithOverlap(cfg.Chunker.Overlap),
	)
	if err != nil {
		return nil, err
	}
	return lib.NewPipeline(ingest.WithSplitter(splitter))
}

func buildIndex(ctx context.Context, lib *passage.Library, cfg *config.AppConfig) (*search.Index, error) {
	indexerConfig := &search.IndexerConfig{
		BatchSize:      cfg.Indexer.BatchSize,
		Workers:        cfg.Indexer.Workers,
		MaxRetries:     cfg.Indexer.MaxRetries,
		RetryDelay:     time.Duration(cfg.Indexer.RetryDelaySecs) * time.Second,
		ReportInterval: cfg.Indexer.ReportInterval,
	}

	indexer, err := lib.NewIndexer(indexerConfig, os.Stderr)
	if err != nil {
		return nil, err
	}
	return indexer.Build(ctx)
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
