// styleguide-search ranks UI/UX style-guide records against a free-text query.
//
// One-shot mode prints the best matches of a domain (auto-detected when not
// given) or of a technology stack, as markdown or JSON. With --serve the same
// searches are exposed over HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gcbaptista/styleguide-search/api"
	"github.com/gcbaptista/styleguide-search/config"
	"github.com/gcbaptista/styleguide-search/internal/engine"
	"github.com/gcbaptista/styleguide-search/internal/format"
	logpkg "github.com/gcbaptista/styleguide-search/internal/logger"
	"github.com/gcbaptista/styleguide-search/internal/metrics"
	"github.com/gcbaptista/styleguide-search/services"
	"github.com/gcbaptista/styleguide-search/store"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	query      string
	domain     string
	stack      string
	maxResults int
	jsonOutput bool
	configFile string
	dataDir    string
	registry   string
	serve      bool
	port       int
	env        string
	logLevel   string
	version    bool
	help       bool

	maxResultsSet bool
	portSet       bool
}

func parseFlags(args []string) (options, *pflag.FlagSet, error) {
	var opts options

	flagSet := pflag.NewFlagSet("styleguide-search", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVarP(&opts.domain, "domain", "d", "", "domain to search (auto-detected when omitted)")
	flagSet.StringVarP(&opts.stack, "stack", "s", "", "technology stack to search (takes priority over --domain)")
	flagSet.IntVarP(&opts.maxResults, "max-results", "n", config.DefaultMaxResults, "maximum number of results")
	flagSet.BoolVar(&opts.jsonOutput, "json", false, "print the result as JSON instead of markdown")
	flagSet.StringVar(&opts.configFile, "config", "", "path to a YAML configuration file")
	flagSet.StringVar(&opts.dataDir, "data-dir", "", "directory holding the collection CSV files")
	flagSet.StringVar(&opts.registry, "registry", "", "YAML registry overriding the built-in domains and stacks")
	flagSet.BoolVar(&opts.serve, "serve", false, "serve the HTTP API instead of running one query")
	flagSet.IntVar(&opts.port, "port", 0, "HTTP port for --serve (default from config, 8080)")
	flagSet.StringVar(&opts.env, "env", "", "environment: local, dev, docker or prod (default from ENV)")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flagSet.BoolVar(&opts.version, "version", false, "print version information")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			opts.help = true
			return opts, flagSet, nil
		}
		return opts, flagSet, err
	}

	opts.query = strings.Join(flagSet.Args(), " ")
	opts.maxResultsSet = flagSet.Changed("max-results")
	opts.portSet = flagSet.Changed("port")
	return opts, flagSet, nil
}

func run(args []string, stdout io.Writer) error {
	opts, flagSet, err := parseFlags(args)
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(stdout, flagSet)
		return nil
	}
	if opts.version {
		fmt.Fprintf(stdout, "styleguide-search %s\n", version)
		return nil
	}
	if !opts.serve && opts.query == "" {
		printHelp(stdout, flagSet)
		return errors.New("a search query is required")
	}

	cfg, err := config.LoadApp(opts.configFile)
	if err != nil {
		return err
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	env := opts.env
	if env == "" {
		env = config.GetEnv()
	}
	level := cfg.Logging.Level
	if level == "" && !opts.serve {
		// Keep one-shot output clean unless asked otherwise
		level = "warn"
	}
	logger, err := logpkg.NewLogger(env, level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	var provider store.Provider = store.NewCSVProvider(cfg.DataDir)
	if cfg.Search.CacheCollections || opts.serve {
		provider = store.NewCachedProvider(provider)
	}

	if opts.serve {
		return serve(cfg, env, registry, provider, logger)
	}

	eng := engine.NewEngine(registry, provider, engine.WithLogger(logger))
	maxResults := cfg.Search.DefaultMaxResults
	if opts.maxResultsSet {
		maxResults = opts.maxResults
	}

	result, err := eng.Search(services.SearchRequest{
		Query:      opts.query,
		Domain:     opts.domain,
		Stack:      opts.stack,
		MaxResults: &maxResults,
	})
	return printBundle(stdout, services.NewResultBundle(result, err), opts.jsonOutput)
}

// applyOverrides lets command-line flags take precedence over the config file.
func applyOverrides(cfg *config.AppConfig, opts options) {
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.registry != "" {
		cfg.RegistryFile = opts.registry
	}
	if opts.portSet {
		cfg.HTTP.Port = opts.port
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
}

// printBundle writes the result as markdown, or as indented JSON when asked.
func printBundle(w io.Writer, bundle services.ResultBundle, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, format.Markdown(bundle))
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(bundle)
}

func serve(cfg config.AppConfig, env string, registry *config.Registry, provider store.Provider, logger *zap.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	eng := engine.NewEngine(registry, provider, engine.WithLogger(logger), engine.WithMetrics(m))

	logger.Info("Starting styleguide-search API server",
		zap.String("version", version),
		zap.String("data_dir", cfg.DataDir),
		zap.Strings("domains", registry.DomainNames()),
		zap.Strings("stacks", registry.StackNames()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	if env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggerMiddleware(logger))
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(cfg.HTTP.MaxBodyBytes))
	router.Use(m.Middleware())

	api.SetupRoutes(router, eng, cfg.Search)
	api.SetupMetricsRoute(router, reg)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `styleguide-search - BM25 search over UI/UX style guides

Usage:
  styleguide-search [flags] <query...>
  styleguide-search --serve [flags]

Flags:
%s
Domains: %s
Stacks: %s

Examples:
  styleguide-search "glassmorphism" --domain styles
  styleguide-search "animation" --stack react
  styleguide-search "fintech dashboard palette" --json
`, flagSet.FlagUsages(), strings.Join(config.DefaultRegistry().DomainNames(), ", "),
		strings.Join(config.DefaultRegistry().StackNames(), ", "))
}
