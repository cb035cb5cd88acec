package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/autoextract"
	"github.com/fwojciec/autoextract/batch"
	"github.com/fwojciec/autoextract/etree"
	autohttp "github.com/fwojciec/autoextract/http"
	"github.com/fwojciec/autoextract/list"
	autoslog "github.com/fwojciec/autoextract/slog"
	"github.com/fwojciec/autoextract/sqlite"
	"github.com/fwojciec/autoextract/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Input stream used for "-" sources.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Extraction store for end-to-end testing.
	Extractions autoextract.ExtractionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("autoextract"),
		kong.Description("Extract repeated title/link lists from HTML pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'autoextract --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Command()

	// Load configuration and layer explicit flags on top
	config := autoextract.DefaultConfig()
	if cli.Config != "" {
		loaded, err := yaml.Load(cli.Config)
		if err != nil {
			return fmt.Errorf("failed to load config %q: %w", cli.Config, err)
		}
		config = *loaded
	}
	if strings.HasPrefix(cmd, "extract") {
		cli.Extract.applyTo(&config.Extractor)
		if err := config.Validate(); err != nil {
			return err
		}
	}
	deps.Config = config

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}
	deps.Logger = logger

	// Open database only for commands that persist or read runs
	if strings.HasPrefix(cmd, "runs") || cmd == "serve" || cli.Extract.Save {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set AUTOEXTRACT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.Extractions = sqlite.NewExtractionService(m.DB)
		deps.Extractions = m.Extractions
		if cli.Verbose {
			deps.Extractions = autoslog.NewLoggingExtractionService(m.Extractions, logger)
		}
	}

	// Wire the extraction pipeline
	var extractor autoextract.ListExtractor = list.New(
		list.WithMinNumber(config.Extractor.MinNumber),
		list.WithMinLength(config.Extractor.MinLength),
		list.WithMaxLength(config.Extractor.MaxLength),
		list.WithSimilarityThreshold(config.Extractor.SimilarityThreshold),
	)
	if cli.Verbose {
		extractor = autoslog.NewLoggingExtractor(extractor, logger)
	}
	deps.Extractor = extractor

	var fetchOpts []autohttp.Option
	if config.Fetch.TimeoutSeconds > 0 {
		fetchOpts = append(fetchOpts, autohttp.WithTimeout(time.Duration(config.Fetch.TimeoutSeconds)*time.Second))
	}
	var fetcher autoextract.Fetcher = autohttp.NewFetcher(fetchOpts...)
	if cli.Verbose {
		fetcher = autoslog.NewLoggingFetcher(fetcher, logger)
	}
	deps.Fetcher = fetcher

	if strings.HasPrefix(cmd, "extract") {
		deps.Runner = &batch.Runner{
			Fetcher:     &SourceFetcher{HTTP: deps.Fetcher, Stdin: deps.Stdin},
			Extractor:   deps.Extractor,
			Limiter:     batch.NewDomainLimiter(config.Fetch.RatePerSecond),
			Concurrency: cli.Extract.Concurrency,
		}
		deps.FeedWriter = etree.NewFeedWriter()
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("AUTOEXTRACT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "autoextract.db"
	}
	dir := filepath.Join(home, ".autoextract")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "autoextract.db")
}
