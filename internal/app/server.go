// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"time"

	"tripdesk-service/internal/config"
	"tripdesk-service/internal/db"
	campaignHandler "tripdesk-service/internal/handlers/campaign"
	clientHandler "tripdesk-service/internal/handlers/client"
	employeeHandler "tripdesk-service/internal/handlers/employee"
	opportunityHandler "tripdesk-service/internal/handlers/opportunity"
	proposalHandler "tripdesk-service/internal/handlers/proposal"
	supplierHandler "tripdesk-service/internal/handlers/supplier"
	uploadHandler "tripdesk-service/internal/handlers/upload"
	"tripdesk-service/internal/middleware"
	"tripdesk-service/internal/pkg/llm"
	"tripdesk-service/internal/pkg/ratelimit"
	"tripdesk-service/internal/pkg/storage"
	"tripdesk-service/internal/repository/postgres"
	alertsvc "tripdesk-service/internal/service/alert"
	campaignsvc "tripdesk-service/internal/service/campaign"
	clientsvc "tripdesk-service/internal/service/client"
	draftsvc "tripdesk-service/internal/service/draft"
	employeesvc "tripdesk-service/internal/service/employee"
	opportunitysvc "tripdesk-service/internal/service/opportunity"
	proposalsvc "tripdesk-service/internal/service/proposal"
	suppliersvc "tripdesk-service/internal/service/supplier"
	"tripdesk-service/internal/state"
	"tripdesk-service/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg     config.AppConfig
	engine  *gin.Engine
	logger  *zap.Logger
	scanner *alertsvc.Scanner
	cancel  context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))

	// ----- Repositories -----
	opportunityRepo := postgres.NewOpportunityRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)

	// ----- State store -----
	store := state.NewStore()
	if err := s.seedStore(ctx, store, opportunityRepo, clientRepo, employeeRepo, supplierRepo, campaignRepo); err != nil {
		return fmt.Errorf("failed to seed state store: %w", err)
	}

	// ----- WebSocket hub -----
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	// ----- Blob store -----
	var blobStore *storage.BlobStore
	if s.cfg.S3Bucket != "" {
		blobStore, err = storage.NewBlobStore(ctx, storage.Config{
			Bucket:        s.cfg.S3Bucket,
			Region:        s.cfg.S3Region,
			Endpoint:      s.cfg.S3Endpoint,
			PublicBaseURL: s.cfg.S3PublicBaseURL,
		}, logger)
		if err != nil {
			logger.Warn("blob store unavailable, uploads disabled", zap.Error(err))
			blobStore = nil
		}
	}

	// ----- LLM client & rate limiter -----
	llmClient := llm.NewClient(llm.Config{
		BaseURL: s.cfg.LLMBaseURL,
		APIKey:  s.cfg.LLMAPIKey,
		Model:   s.cfg.LLMModel,
	}, logger)
	draftLimiter := ratelimit.NewLimiter(redisClient, s.cfg.DraftRateLimit, time.Minute)

	// ----- Services -----
	opportunityService := opportunitysvc.NewService(opportunityRepo, store, logger)
	proposalService := proposalsvc.NewService(opportunityRepo, store, logger)
	draftService := draftsvc.NewService(opportunityRepo, store, llmClient, draftLimiter, logger)
	clientService := clientsvc.NewClientService(clientRepo, store, logger)
	employeeService := employeesvc.NewEmployeeService(employeeRepo, store, logger)
	supplierService := suppliersvc.NewSupplierService(supplierRepo, store, logger)
	campaignService := campaignsvc.NewCampaignService(campaignRepo, store, logger)

	// ----- Deadline scanner -----
	s.scanner = alertsvc.NewScanner(opportunityRepo, store, hub, logger)
	if err := s.scanner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start deadline scanner: %w", err)
	}

	// ----- Handlers -----
	opportunityHandlerInst := opportunityHandler.NewOpportunityHandler(opportunityService, draftService)
	proposalHandlerInst := proposalHandler.NewProposalHandler(proposalService)
	clientHandlerInst := clientHandler.NewClientHandler(clientService)
	employeeHandlerInst := employeeHandler.NewEmployeeHandler(employeeService)
	supplierHandlerInst := supplierHandler.NewSupplierHandler(supplierService)
	campaignHandlerInst := campaignHandler.NewCampaignHandler(campaignService)
	uploadHandlerInst := uploadHandler.NewUploadHandler(blobStore, logger)

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		OpportunityHandler: opportunityHandlerInst,
		ProposalHandler:    proposalHandlerInst,
		ClientHandler:      clientHandlerInst,
		EmployeeHandler:    employeeHandlerInst,
		SupplierHandler:    supplierHandlerInst,
		CampaignHandler:    campaignHandlerInst,
		UploadHandler:      uploadHandlerInst,
		Hub:                hub,
	}
	SetupRouter(s.engine, logger, handlers)

	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Stop releases background workers. Safe to call once after Start.
func (s *Server) Stop() {
	if s.scanner != nil {
		s.scanner.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.logger != nil {
		_ = s.logger.Sync()
	}
}

func (s *Server) seedStore(
	ctx context.Context,
	store *state.Store,
	opportunityRepo *postgres.OpportunityRepository,
	clientRepo *postgres.ClientRepository,
	employeeRepo *postgres.EmployeeRepository,
	supplierRepo *postgres.SupplierRepository,
	campaignRepo *postgres.CampaignRepository,
) error {
	opportunities, err := opportunityRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load opportunities: %w", err)
	}
	store.SetOpportunities(opportunities)

	clients, err := clientRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load clients: %w", err)
	}
	store.SetClients(clients)

	employees, err := employeeRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load employees: %w", err)
	}
	store.SetEmployees(employees)

	suppliers, err := supplierRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load suppliers: %w", err)
	}
	store.SetSuppliers(suppliers)

	campaigns, err := campaignRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load campaigns: %w", err)
	}
	store.SetCampaigns(campaigns)

	s.logger.Info("state store seeded",
		zap.Int("opportunities", len(opportunities)),
		zap.Int("clients", len(clients)),
	)
	return nil
}
