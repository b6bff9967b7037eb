// Package service orchestrates the lead triage pipeline: load a tabular
// batch, score and classify each row, then atomically replace the stored
// batch and its per-source report.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"lead_triage_backend/internal/events"
	"lead_triage_backend/internal/leads/classifier"
	"lead_triage_backend/internal/leads/repository"
	"lead_triage_backend/internal/leads/scoring"
	"lead_triage_backend/internal/leads/source"
	"lead_triage_backend/internal/leads/transport"
	"lead_triage_backend/platform/logger"
	"lead_triage_backend/platform/phone"
	"lead_triage_backend/platform/sanitize"
)

// PreviewSize caps the number of rows echoed back by an ingest call.
const PreviewSize = 10

// Service runs batch ingestion and serves the current batch.
type Service struct {
	repo        repository.BatchRepository
	classifier  classifier.Classifier
	bus         events.Bus
	logger      *logger.Logger
	defaultPath string
}

func NewService(repo repository.BatchRepository, cls classifier.Classifier, bus events.Bus, log *logger.Logger, defaultPath string) *Service {
	return &Service{
		repo:        repo,
		classifier:  cls,
		bus:         bus,
		logger:      log,
		defaultPath: defaultPath,
	}
}

// Ingest loads the file at path (or the configured default when path is
// blank), qualifies every row, and replaces the stored batch. A row that
// fails during its own processing is dropped and logged; it never fails
// the batch.
func (s *Service) Ingest(ctx context.Context, path string) (transport.IngestResponse, error) {
	if path == "" {
		path = s.defaultPath
	}

	rows, err := source.Load(path)
	if err != nil {
		return transport.IngestResponse{}, err
	}

	batch := make([]transport.QualifiedLead, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		qualified, err := s.processRow(ctx, row)
		if err != nil {
			dropped++
			s.logger.RowDropped(i, row.Source, err)
			continue
		}
		batch = append(batch, qualified)
	}

	report := BuildReport(batch)
	s.repo.Replace(batch, report)

	s.bus.Publish(ctx, events.BatchIngested{
		BaseEvent: events.NewBaseEvent(),
		Source:    path,
		Count:     len(batch),
		Dropped:   dropped,
	})

	preview := batch
	if len(preview) > PreviewSize {
		preview = preview[:PreviewSize]
	}

	return transport.IngestResponse{
		LeadsCount: len(batch),
		Report:     report,
		Preview:    preview,
	}, nil
}

// List returns the current batch.
func (s *Service) List() transport.LeadListResponse {
	batch := s.repo.Current()
	return transport.LeadListResponse{Items: batch, Total: len(batch)}
}

// Report returns the per-source report for the current batch.
func (s *Service) Report() transport.ReportResponse {
	return transport.ReportResponse{Report: s.repo.Report()}
}

func (s *Service) processRow(ctx context.Context, row transport.Lead) (qualified transport.QualifiedLead, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row processing error: %v", r)
		}
	}()

	lead := normalize(row)

	score, reasons := scoring.Qualify(scoring.Input{
		PropertyType: strings.ToLower(lead.PropertyType),
		Budget:       lead.Budget,
		Location:     lead.LocationPreference,
		Timeframe:    lead.TimeframeToMove,
		Email:        lead.Email,
		Phone:        lead.Phone,
		Message:      lead.Message,
	})
	tier, action := scoring.TierFor(score)

	intent, cerr := s.classifier.Classify(ctx, lead)
	if cerr != nil {
		s.logger.ClassifierFallback("classification failed", cerr)
		intent = classifier.Fallback()
	}

	return transport.QualifiedLead{
		Lead:               lead,
		PhoneE164:          phone.NormalizeE164(lead.Phone),
		QualificationScore: score,
		Tier:               tier,
		RecommendedAction:  action,
		Reasons:            reasons,
		IntentLabel:        intent.IntentLabel,
		ShortReason:        intent.ShortReason,
	}, nil
}

// normalize strips markup from the free-text fields a browser will render.
// All other fields pass through untouched so scoring sees the raw values.
func normalize(row transport.Lead) transport.Lead {
	row.Name = sanitize.Text(row.Name)
	row.Message = sanitize.StripHTML(row.Message)
	return row
}

// BuildReport aggregates the batch per source in first-seen order. A blank
// source is reported under "unknown". Percentages are rounded to one
// decimal place.
func BuildReport(batch []transport.QualifiedLead) []transport.SourceRow {
	var order []string
	totals := make(map[string]int)
	hotCounts := make(map[string]int)

	for _, lead := range batch {
		src := lead.Source
		if src == "" {
			src = "unknown"
		}
		if _, seen := totals[src]; !seen {
			order = append(order, src)
		}
		totals[src]++
		if lead.Tier == "hot" {
			hotCounts[src]++
		}
	}

	report := make([]transport.SourceRow, 0, len(order))
	for _, src := range order {
		total := totals[src]
		hot := hotCounts[src]
		report = append(report, transport.SourceRow{
			Source:   src,
			Total:    total,
			HotCount: hot,
			HotPct:   math.Round(float64(hot)/float64(total)*100*10) / 10,
		})
	}
	return report
}
