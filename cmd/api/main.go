package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"lead_triage_backend/internal/events"
	apphttp "lead_triage_backend/internal/http"
	"lead_triage_backend/internal/http/router"
	"lead_triage_backend/internal/leads"
	"lead_triage_backend/platform/config"
	"lead_triage_backend/platform/logger"
	"lead_triage_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	registerAuditLog(eventBus, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule := leads.NewModule(cfg, val, eventBus, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// registerAuditLog records every completed batch ingest.
func registerAuditLog(bus events.Bus, log *logger.Logger) {
	bus.Subscribe(events.BatchIngested{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.BatchIngested); ok {
			log.Info("batch ingested", "source", e.Source, "count", e.Count, "dropped", e.Dropped)
		}
		return nil
	}))
}
