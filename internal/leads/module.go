// Package leads provides the lead triage bounded context module: batch
// ingest, scoring, intent classification, and per-source reporting.
package leads

import (
	"context"

	"lead_triage_backend/internal/events"
	apphttp "lead_triage_backend/internal/http"
	"lead_triage_backend/internal/leads/classifier"
	"lead_triage_backend/internal/leads/handler"
	"lead_triage_backend/internal/leads/repository"
	"lead_triage_backend/internal/leads/service"
	"lead_triage_backend/platform/config"
	"lead_triage_backend/platform/logger"
	"lead_triage_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.BatchRepository
}

// NewModule creates and initializes the leads module. The classifier
// backend is chosen by configuration; an unconfigured or unknown provider
// runs with classification off.
func NewModule(cfg *config.Config, val *validator.Validator, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.NewInMemoryRepository()

	cls := buildClassifier(cfg, log)
	svc := service.NewService(repo, cls, bus, log, cfg.GetLeadsFilePath())
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

func buildClassifier(cfg *config.Config, log *logger.Logger) classifier.Classifier {
	switch cfg.GetClassifierProvider() {
	case config.ProviderOpenAI:
		if cfg.GetClassifierAPIURL() == "" || cfg.GetClassifierAPIKey() == "" {
			log.ClassifierFallback("classifier api not configured, classification off", nil)
			return classifier.Off{}
		}
		inner := classifier.NewOpenAIClassifier(classifier.OpenAIConfig{
			APIURL: cfg.GetClassifierAPIURL(),
			APIKey: cfg.GetClassifierAPIKey(),
			Model:  cfg.GetClassifierModel(),
		})
		return classifier.WithFallback(inner, cfg.GetClassifierTimeout(), log)
	case config.ProviderGemini:
		inner, err := classifier.NewGeminiClassifier(context.Background(), classifier.GeminiConfig{
			APIKey: cfg.GetGeminiAPIKey(),
			Model:  cfg.GetClassifierModel(),
		})
		if err != nil {
			log.ClassifierFallback("gemini client init failed, classification off", err)
			return classifier.Off{}
		}
		return classifier.WithFallback(inner, cfg.GetClassifierTimeout(), log)
	default:
		return classifier.Off{}
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/leads")
	group.POST("/ingest", ctx.IngestRateLimiter.RateLimit(), m.handler.Ingest)
	group.GET("", m.handler.List)
	group.GET("/report", m.handler.Report)
}

var _ apphttp.Module = (*Module)(nil)
