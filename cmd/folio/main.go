package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/build"
	"github.com/fwojciec/folio/crawl"
	"github.com/fwojciec/folio/etree"
	"github.com/fwojciec/folio/fs"
	"github.com/fwojciec/folio/goquery"
	"github.com/fwojciec/folio/htmltomarkdown"
	foliohttp "github.com/fwojciec/folio/http"
	"github.com/fwojciec/folio/readability"
	"github.com/fwojciec/folio/search"
	folioslog "github.com/fwojciec/folio/slog"
	"github.com/fwojciec/folio/sqlite"
	"github.com/fwojciec/folio/trafilatura"
	"github.com/fwojciec/folio/yaml"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite catalog, opened for the commands that use it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("folio"),
		kong.Description("Bilingual content search for the portfolio site"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'folio --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := yaml.LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set FOLIO_CONFIG or --config to use a different configuration file\n")
		return fmt.Errorf("failed to load configuration %q: %w", cli.Config, err)
	}
	deps.Config = cfg

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	content := fs.NewContentDir(cfg.ContentDir)
	assets := fs.NewAssetDir(cfg.OutputDir)
	deps.Lock = content.Lock
	deps.Source = folioslog.NewLoggingContentSource(content, logger)
	deps.Backfiller = &build.Backfiller{
		Assigner: yaml.NewReferenceAssigner(),
		Writer:   content,
		Logger:   logger,
	}

	switch cmd {
	case "build", "docs", "resolve":
		m.DB = sqlite.NewDB(cfg.Database)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set FOLIO_DB to use a different catalog path\n")
			return fmt.Errorf("failed to open catalog at %q: %w", cfg.Database, err)
		}
		defer m.Close()

		documents := sqlite.NewDocumentService(m.DB)
		deps.Documents = documents
		deps.Siblings = documents
	}

	switch cmd {
	case "build":
		extractor := yaml.NewExtractor(goquery.NewStripper())
		extractor.ExcerptLength = cfg.Search.ExcerptLength

		deps.Builder = &build.Builder{
			Source:      deps.Source,
			Extractor:   extractor,
			Assets:      folioslog.NewLoggingAssetStore(assets, logger),
			Documents:   deps.Documents,
			Weights:     cfg.Search.Weights,
			Concurrency: cfg.Build.Concurrency,
			Logger:      logger,
		}
		if cfg.Build.AssignIDs && !cli.Build.NoAssign {
			deps.Builder.Backfiller = deps.Backfiller
		}
		if cfg.SiteURL != "" {
			deps.Builder.Sitemap = etree.NewSitemapWriter(cfg.SiteURL)
		}

	case "search", "serve":
		var fetcher folio.AssetFetcher = assets
		if cmd == "search" && cli.Search.URL != "" {
			fetcher = foliohttp.NewAssetFetcher(cli.Search.URL, nil)
		}
		deps.Loader = search.NewLoader(folioslog.NewLoggingAssetFetcher(fetcher, logger))
		deps.Serve = func(ctx context.Context, addr string) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Serving %s on http://%s\n", cfg.OutputDir, ln.Addr())
			return foliohttp.NewServer(cfg.OutputDir, deps.Loader, cfg.SearchOptions(), logger).Serve(ctx, ln)
		}

	case "import":
		fetcher := m.importFetcher(cli.Import.Source)
		defer fetcher.Close()

		var fallback folio.Extractor = trafilatura.NewExtractor()
		if cli.Import.Fallback == "readability" {
			fallback = readability.NewExtractor()
		}

		converter := htmltomarkdown.NewConverter()
		if !isLocalSource(cli.Import.Source) {
			converter.Domain = cli.Import.Source
		}

		deps.Importer = &crawl.Importer{
			Sitemaps:    folioslog.NewLoggingSitemapService(foliohttp.NewSitemapService(nil), logger),
			Links:       goquery.LinkExtractor{},
			Fetcher:     folioslog.NewLoggingFetcher(fetcher, logger),
			Articles:    goquery.NewArticleExtractor(),
			Fallback:    fallback,
			Converter:   converter,
			Encoder:     &yaml.ArticleEncoder{NewID: uuid.NewString},
			Source:      deps.Source,
			Writer:      content,
			RateLimiter: crawl.NewHostLimiter(crawl.RateLimits{
				RPS:   cfg.Import.RateLimit,
				Burst: cfg.Import.Burst,
				Hosts: cfg.Import.HostLimits,
			}),
			Logger:      logger,
			Concurrency: cfg.Import.Concurrency,
			HeroImage:   cfg.Import.HeroImage,
		}
	}

	return kongCtx.Run(deps)
}

// importFetcher reads local directories from disk and everything else over
// HTTP.
func (m *Main) importFetcher(source string) folio.Fetcher {
	if isLocalSource(source) {
		return fs.NewFileFetcher()
	}
	return foliohttp.NewFetcher()
}

// isLocalSource reports whether source names a local directory or file URL.
func isLocalSource(source string) bool {
	if strings.HasPrefix(source, "file://") {
		return true
	}
	info, err := os.Stat(source)
	return err == nil && info.IsDir()
}
