package app

import (
	"fmt"
	"net/http"

	"github.com/merlocpr-creator/tacticxai-mvp/external/groq"
	"github.com/merlocpr-creator/tacticxai-mvp/external/statsbomb"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/config"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/chat"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/competition"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/rawdata"
	cacherepo "github.com/merlocpr-creator/tacticxai-mvp/internal/infrastructure/repository/cache"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/infrastructure/repository/memory"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/infrastructure/repository/postgres"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/interfaces/httpapi"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/interfaces/mcpapi"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/cache"
	idgen "github.com/merlocpr-creator/tacticxai-mvp/internal/platform/id"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/metrics"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/resilience"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/usecase"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sourcegraph/conc/pool"
)

// Container holds the wired services shared by the HTTP and MCP entrypoints.
type Container struct {
	Config   config.Config
	Logger   *logging.Logger
	Metrics  *metrics.Recorder
	Services httpapi.Services

	closers []func() error
}

func Build(cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var rec *metrics.Recorder
	if cfg.MetricsEnabled {
		rec = metrics.New()
	}
	onCircuitChange := func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "provider", name, "from", from, "to", to)
		rec.CircuitStateChanged(name, string(to))
	}

	c := &Container{Config: cfg, Logger: logger, Metrics: rec}

	var provider competition.Provider = statsbomb.NewClient(statsbomb.ClientConfig{
		BaseURL:    cfg.StatsBombBaseURL,
		Timeout:    cfg.StatsBombTimeout,
		MaxRetries: cfg.StatsBombMaxRetries,
		Logger:     logger,
		Breaker:    resilience.NewCircuitBreakerFromConfig(statsbomb.ProviderName, cfg.StatsBombCircuit, onCircuitChange),
		Metrics:    rec,
	})

	var eventStore *cache.Store
	if cfg.CacheEnabled {
		provider = cacherepo.NewProvider(provider, cache.NewStore(cfg.CacheTTL, cache.WithName("provider"), cache.WithObserver(rec)))
		eventStore = cache.NewStore(cfg.CacheTTL, cache.WithName("team_events"), cache.WithObserver(rec))
	}

	archiveRepo, err := c.buildArchive(cfg, logger)
	if err != nil {
		return nil, err
	}

	var completer chat.Completer
	if cfg.ChatEnabled {
		completer = groq.NewClient(groq.ClientConfig{
			BaseURL:    cfg.ChatBaseURL,
			APIKey:     cfg.ChatAPIKey,
			Timeout:    cfg.ChatTimeout,
			MaxRetries: 1,
			Logger:     logger,
			Breaker:    resilience.NewCircuitBreakerFromConfig(groq.ProviderName, cfg.ChatCircuit, onCircuitChange),
			Metrics:    rec,
		})
	}

	events := usecase.NewEventService(provider, archiveRepo, eventStore, rec, usecase.EventServiceConfig{Workers: cfg.EventWorkers}, logger)
	c.Services = httpapi.Services{
		Catalog:        usecase.NewCatalogService(provider, archiveRepo, logger),
		Events:         events,
		Analysis:       usecase.NewAnalysisService(events, logger),
		Recommendation: usecase.NewRecommendationService(nil, rec, logger),
		Export:         usecase.NewExportService(events),
		Chat: usecase.NewChatService(completer, usecase.ChatConfig{
			Enabled:     cfg.ChatEnabled,
			Model:       cfg.ChatModel,
			Temperature: cfg.ChatTemperature,
			MaxTokens:   cfg.ChatMaxTokens,
		}, logger),
	}

	return c, nil
}

func (c *Container) buildArchive(cfg config.Config, logger *logging.Logger) (rawdata.Repository, error) {
	if !cfg.ArchiveEnabled || cfg.DBURL == "" {
		logger.Info("raw payload archive uses in-memory storage")
		return memory.NewRawDataRepository(), nil
	}

	db, err := openDB(cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}
	c.closers = append(c.closers, db.Close)
	logger.Info("raw payload archive uses postgres", "db_name", dbNameFromURL(cfg.DBURL))

	return postgres.NewRawDataRepository(db), nil
}

// Close releases the database handles concurrently. Errors are joined.
func (c *Container) Close() error {
	p := pool.New().WithErrors()
	for _, closeFn := range c.closers {
		p.Go(closeFn)
	}
	c.closers = nil
	return p.Wait()
}

func NewHTTPServer(c *Container) (*http.Server, error) {
	cfg := c.Config
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	routerCfg := httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		IDGenerator:        idgen.NewUUIDGenerator(),
	}
	if c.Metrics != nil {
		routerCfg.Metrics = c.Metrics.Handler()
		routerCfg.MetricsRecorder = c.Metrics
	}

	handler := httpapi.NewHandler(c.Services, c.Logger)
	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, routerCfg, c.Logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func NewMCPServer(c *Container) *mcp.Server {
	return mcpapi.NewServer(c.Services.Recommendation, c.Services.Analysis, c.Config.ServiceVersion, c.Logger)
}

// NewMCPHTTPServer serves the MCP tools over streamable HTTP at cfg.MCPPath.
func NewMCPHTTPServer(c *Container) (*http.Server, error) {
	cfg := c.Config
	if cfg.MCPAddr == "" {
		return nil, fmt.Errorf("mcp server addr cannot be empty")
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.MCPPath, mcpapi.Handler(NewMCPServer(c)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &http.Server{
		Addr:        cfg.MCPAddr,
		Handler:     mux,
		ReadTimeout: cfg.ReadTimeout,
	}, nil
}
