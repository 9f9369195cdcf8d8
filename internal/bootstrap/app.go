package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-ai-backend/internal/ai"
	"resume-ai-backend/internal/llm"
	"resume-ai-backend/internal/llm/openai"
	"resume-ai-backend/internal/payments"
	"resume-ai-backend/internal/payments/razorpay"
	"resume-ai-backend/internal/resumes"
	"resume-ai-backend/internal/shared/config"
	"resume-ai-backend/internal/shared/server"
	"resume-ai-backend/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	ResumesRepo     resumes.Repo
	LLM             llm.Client
	Gateway         payments.Gateway
	AIService       *ai.Service
	PaymentsService *payments.Service
	AIHandler       *ai.Handler
	PaymentsHandler *payments.Handler
	ResumesHandler  *resumes.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	app.DB = buildDB(ctx, cfg)

	if app.DB != nil {
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
	} else {
		app.ResumesRepo = resumes.NewMemoryRepo()
	}

	app.LLM = buildLLM(cfg)
	app.Gateway = buildGateway(cfg)

	app.AIService = &ai.Service{LLM: app.LLM, Resumes: app.ResumesRepo}
	app.PaymentsService = &payments.Service{
		Resumes:  app.ResumesRepo,
		Gateway:  app.Gateway,
		Secret:   []byte(cfg.RazorpayKeySecret),
		Currency: cfg.PaymentCurrency,
	}

	app.AIHandler = ai.NewHandler(app.AIService)
	app.PaymentsHandler = payments.NewHandler(app.PaymentsService)
	app.ResumesHandler = resumes.NewHandler(app.ResumesRepo)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AIHandler:       app.AIHandler,
		PaymentsHandler: app.PaymentsHandler,
		ResumesHandler:  app.ResumesHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	conn, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		conn.Close()
		return nil
	}
	return conn
}

func buildLLM(cfg config.Config) llm.Client {
	if cfg.OpenAIAPIKey == "" {
		log.Printf("OPENAI_API_KEY not set, AI endpoints disabled")
		return llm.PlaceholderClient{}
	}
	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	if err != nil {
		log.Printf("openai client init failed, AI endpoints disabled: %v", err)
		return llm.PlaceholderClient{}
	}
	return client
}

func buildGateway(cfg config.Config) payments.Gateway {
	client, err := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	if err != nil {
		log.Printf("razorpay client init failed, payments disabled: %v", err)
		return nil
	}
	return client
}
