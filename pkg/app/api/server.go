// Package api implements app.Runner for the savings API server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/bitsave-middleware/pkg/app/http"
	"github.com/chainsafe/bitsave-middleware/pkg/chain"
	"github.com/chainsafe/bitsave-middleware/pkg/config"
	"github.com/chainsafe/bitsave-middleware/pkg/ethereum"
	"github.com/chainsafe/bitsave-middleware/pkg/flowstore"
	"github.com/chainsafe/bitsave-middleware/pkg/orchestrator"
	flowservice "github.com/chainsafe/bitsave-middleware/pkg/orchestrator/service"
	"github.com/chainsafe/bitsave-middleware/pkg/pgutil"
	"github.com/chainsafe/bitsave-middleware/pkg/price"
	"github.com/chainsafe/bitsave-middleware/pkg/savings"
	savingsservice "github.com/chainsafe/bitsave-middleware/pkg/savings/service"
	"github.com/chainsafe/bitsave-middleware/pkg/token"
	"github.com/chainsafe/bitsave-middleware/pkg/vault"
)

const defaultRequestTimeout = 60

// Server holds cfg to init the api server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new api server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("api server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting savings API server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Int("chains", len(cfg.Chains)),
	)

	registry, err := chain.NewRegistry(cfg.Chains)
	if err != nil {
		return fmt.Errorf("build chain registry: %w", err)
	}
	catalog := token.NewCatalog(registry)

	signerKey, err := cfg.Signer.SignerKey()
	if err != nil {
		return err
	}
	client, err := ethereum.NewClient(cfg.Chains, &cfg.Orchestrator, signerKey, logger)
	if err != nil {
		return fmt.Errorf("create ethereum client: %w", err)
	}
	defer client.Close()

	locator, err := vault.NewLocator(registry, client, cfg.Locator, logger)
	if err != nil {
		return fmt.Errorf("create vault locator: %w", err)
	}
	session := locator.NewSession()
	session.Connect(client.Address())

	aggregator := savings.NewAggregator(client, locator, catalog, logger)
	oracle := price.NewHTTPOracle(cfg.PriceOracle, logger)
	orch := orchestrator.New(cfg.Orchestrator, registry, client, oracle, aggregator, locator, logger)

	store, closeDB, err := s.openFlowStore(ctx, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	flows, err := flowservice.NewService(orch, store, cfg.Orchestrator.FlowHistory, logger)
	if err != nil {
		return err
	}

	readService := savingsservice.NewService(registry, catalog, aggregator, session)

	router := s.setupRouter(
		savingsservice.NewLog(readService, logger),
		flowservice.NewLog(flows, logger),
		logger,
	)

	// Running flows are drained before the RPC clients close.
	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server, flows.Wait)
}

// openFlowStore connects the optional flow history database. Without a
// database host flows are kept in memory only.
func (s *Server) openFlowStore(ctx context.Context, logger *zap.Logger) (flowstore.Store, func(), error) {
	if !s.cfg.Database.Enabled() {
		logger.Info("Flow history persistence disabled")
		return nil, func() {}, nil
	}

	db, err := pgutil.ConnectDB(ctx, &s.cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	return flowstore.NewStore(db), func() { closeDB(db, logger) }, nil
}

func closeDB(db *bun.DB, logger *zap.Logger) {
	if err := db.Close(); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}
}

func (s *Server) setupRouter(
	readService savingsservice.Service,
	flowService flowservice.Service,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Second * defaultRequestTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	savingsservice.RegisterRoutes(r, readService, logger)
	flowservice.RegisterRoutes(r, flowService, logger)

	return r
}
