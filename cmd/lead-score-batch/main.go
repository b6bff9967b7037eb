// Command lead-score-batch scores a lead file offline and prints the
// result as JSON. Intent classification is skipped so the run needs no
// network access.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"lead_triage_backend/internal/events"
	"lead_triage_backend/internal/leads/classifier"
	"lead_triage_backend/internal/leads/repository"
	"lead_triage_backend/internal/leads/service"
	"lead_triage_backend/platform/config"
	"lead_triage_backend/platform/logger"
)

func main() {
	var (
		filePath = flag.String("file", "", "lead file to score (.csv or .xlsx); defaults to LEADS_FILE_PATH")
		full     = flag.Bool("full", false, "print the full batch instead of the preview")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	repo := repository.NewInMemoryRepository()
	bus := events.NewInMemoryBus(log)
	svc := service.NewService(repo, classifier.Off{}, bus, log, cfg.GetLeadsFilePath())

	resp, err := svc.Ingest(context.Background(), *filePath)
	if err != nil {
		log.Error("ingest failed", "error", err)
		os.Exit(1)
	}

	out := map[string]any{
		"leads_count": resp.LeadsCount,
		"report":      resp.Report,
	}
	if *full {
		out["leads"] = repo.Current()
	} else {
		out["preview"] = resp.Preview
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Error("encode output failed", "error", err)
		os.Exit(1)
	}
}
