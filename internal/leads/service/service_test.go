package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lead_triage_backend/internal/events"
	"lead_triage_backend/internal/leads/repository"
	"lead_triage_backend/internal/leads/transport"
	"lead_triage_backend/platform/apperr"
	"lead_triage_backend/platform/logger"
)

type stubClassifier struct {
	intent transport.Intent
	err    error
	calls  int
}

func (s *stubClassifier) Classify(ctx context.Context, lead transport.Lead) (transport.Intent, error) {
	s.calls++
	if lead.Message == "boom" {
		panic("classifier exploded")
	}
	if s.err != nil {
		return transport.Intent{}, s.err
	}
	return s.intent, nil
}

func writeCSV(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.csv")
	header := "name,email,phone,property_type,budget,location_preference,timeframe_to_move,message,source\n"
	if err := os.WriteFile(path, []byte(header+rows), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func newTestService(cls *stubClassifier) (*Service, *repository.InMemoryRepository) {
	log := logger.New("development")
	repo := repository.NewInMemoryRepository()
	bus := events.NewInMemoryBus(log)
	return NewService(repo, cls, bus, log, ""), repo
}

func TestIngest_EndToEnd(t *testing.T) {
	path := writeCSV(t,
		"Amina,a@b.com,0501234567,buy,2500000,Dubai,now,I am pre approved with cash and urgent to buy a villa immediately for my family of five people moving to Dubai,website\n"+
			"Omar,,,rent,60000,Sharjah,3-6 months,need an apartment,facebook\n"+
			",,,,,,,test,\n")

	cls := &stubClassifier{intent: transport.Intent{IntentLabel: "serious_buyer", ShortReason: "stub"}}
	svc, repo := newTestService(cls)

	resp, err := svc.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.LeadsCount != 3 {
		t.Fatalf("expected 3 leads, got %d", resp.LeadsCount)
	}
	if cls.calls != 3 {
		t.Fatalf("expected classifier called per row, got %d", cls.calls)
	}

	batch := repo.Current()
	if batch[0].QualificationScore != 100 || batch[0].Tier != "hot" || batch[0].RecommendedAction != "call now" {
		t.Fatalf("unexpected first lead: score=%d tier=%s", batch[0].QualificationScore, batch[0].Tier)
	}
	if batch[0].IntentLabel != "serious_buyer" || batch[0].ShortReason != "stub" {
		t.Fatalf("unexpected intent: %s/%s", batch[0].IntentLabel, batch[0].ShortReason)
	}
	if batch[1].QualificationScore != 42 || batch[1].Tier != "low" {
		t.Fatalf("unexpected second lead: score=%d tier=%s", batch[1].QualificationScore, batch[1].Tier)
	}
	if batch[2].QualificationScore != 0 || batch[2].Tier != "junk" || batch[2].RecommendedAction != "ignore" {
		t.Fatalf("unexpected third lead: score=%d tier=%s", batch[2].QualificationScore, batch[2].Tier)
	}

	if len(resp.Report) != 3 {
		t.Fatalf("expected 3 sources, got %+v", resp.Report)
	}
	if resp.Report[0].Source != "website" || resp.Report[0].HotCount != 1 || resp.Report[0].HotPct != 100.0 {
		t.Fatalf("unexpected website row: %+v", resp.Report[0])
	}
	if resp.Report[1].Source != "facebook" || resp.Report[1].HotPct != 0.0 {
		t.Fatalf("unexpected facebook row: %+v", resp.Report[1])
	}
	if resp.Report[2].Source != "unknown" || resp.Report[2].Total != 1 {
		t.Fatalf("blank source must report as unknown: %+v", resp.Report[2])
	}
}

func TestIngest_MissingFile(t *testing.T) {
	svc, _ := newTestService(&stubClassifier{})
	_, err := svc.Ingest(context.Background(), "/nope/leads.csv")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestIngest_DroppedRowDoesNotFailBatch(t *testing.T) {
	path := writeCSV(t,
		"Omar,,,rent,60000,Sharjah,3-6 months,need an apartment,facebook\n"+
			"Bad,,,,,,,boom,facebook\n"+
			"Sara,s@e.com,,rent,70000,Ajman,1-3 months,looking for a studio,website\n")

	svc, repo := newTestService(&stubClassifier{intent: transport.Intent{IntentLabel: "casual_inquiry"}})

	resp, err := svc.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.LeadsCount != 2 {
		t.Fatalf("expected dropped row to shrink the batch, got %d", resp.LeadsCount)
	}
	for _, lead := range repo.Current() {
		if lead.Message == "boom" {
			t.Fatalf("dropped row leaked into the batch")
		}
	}
	for _, row := range resp.Report {
		if row.Source == "facebook" && row.Total != 1 {
			t.Fatalf("report must count survivors only, got %+v", row)
		}
	}
}

func TestIngest_ClassifierErrorFallsBack(t *testing.T) {
	path := writeCSV(t, "Omar,,,rent,60000,Sharjah,3-6 months,need an apartment,facebook\n")

	svc, repo := newTestService(&stubClassifier{err: errors.New("api down")})

	if _, err := svc.Ingest(context.Background(), path); err != nil {
		t.Fatalf("classifier failure must not fail ingest: %v", err)
	}
	lead := repo.Current()[0]
	if lead.IntentLabel != "casual_inquiry" || lead.ShortReason != "" {
		t.Fatalf("expected fallback intent, got %s/%s", lead.IntentLabel, lead.ShortReason)
	}
}

func TestIngest_ReplacesPreviousBatch(t *testing.T) {
	first := writeCSV(t, "Omar,,,rent,60000,Sharjah,3-6 months,need an apartment,facebook\n")
	second := writeCSV(t, "Sara,s@e.com,,rent,70000,Ajman,1-3 months,looking for a studio,website\n")

	svc, repo := newTestService(&stubClassifier{intent: transport.Intent{IntentLabel: "casual_inquiry"}})

	if _, err := svc.Ingest(context.Background(), first); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if _, err := svc.Ingest(context.Background(), second); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	batch := repo.Current()
	if len(batch) != 1 || batch[0].Name != "Sara" {
		t.Fatalf("expected full replacement, got %+v", batch)
	}
}

func TestIngest_Idempotent(t *testing.T) {
	path := writeCSV(t, "Omar,,,rent,60000,Sharjah,3-6 months,need an apartment,facebook\n")

	svc, repo := newTestService(&stubClassifier{intent: transport.Intent{IntentLabel: "casual_inquiry"}})

	if _, err := svc.Ingest(context.Background(), path); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	firstScore := repo.Current()[0].QualificationScore

	if _, err := svc.Ingest(context.Background(), path); err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if got := repo.Current()[0].QualificationScore; got != firstScore {
		t.Fatalf("ingest must be deterministic: %d vs %d", firstScore, got)
	}
	if len(repo.Current()) != 1 {
		t.Fatalf("re-ingest must not grow the batch")
	}
}

func TestIngest_PreviewCapped(t *testing.T) {
	rows := ""
	for i := 0; i < 12; i++ {
		rows += "Omar,,,rent,60000,Sharjah,3-6 months,need an apartment,facebook\n"
	}
	path := writeCSV(t, rows)

	svc, _ := newTestService(&stubClassifier{intent: transport.Intent{IntentLabel: "casual_inquiry"}})

	resp, err := svc.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.LeadsCount != 12 {
		t.Fatalf("expected 12 leads, got %d", resp.LeadsCount)
	}
	if len(resp.Preview) != PreviewSize {
		t.Fatalf("expected preview of %d, got %d", PreviewSize, len(resp.Preview))
	}
}

func TestIngest_SanitizesRenderedFields(t *testing.T) {
	path := writeCSV(t, "<b>Omar</b>,,,rent,60000,Sharjah,3-6 months,need an <script>x</script>apartment,facebook\n")

	svc, repo := newTestService(&stubClassifier{intent: transport.Intent{IntentLabel: "casual_inquiry"}})

	if _, err := svc.Ingest(context.Background(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lead := repo.Current()[0]
	if lead.Name != "Omar" {
		t.Fatalf("expected markup stripped from name, got %q", lead.Name)
	}
	if lead.Message != "need an xapartment" {
		t.Fatalf("expected markup stripped from message, got %q", lead.Message)
	}
}

func TestBuildReport_Rounding(t *testing.T) {
	batch := []transport.QualifiedLead{
		{Lead: transport.Lead{Source: "x"}, Tier: "hot"},
		{Lead: transport.Lead{Source: "x"}, Tier: "low"},
		{Lead: transport.Lead{Source: "x"}, Tier: "low"},
	}
	report := BuildReport(batch)
	if len(report) != 1 || report[0].HotPct != 33.3 {
		t.Fatalf("expected 33.3, got %+v", report)
	}
}

func TestBuildReport_FirstSeenOrder(t *testing.T) {
	batch := []transport.QualifiedLead{
		{Lead: transport.Lead{Source: "b"}},
		{Lead: transport.Lead{Source: "a"}},
		{Lead: transport.Lead{Source: "b"}},
	}
	report := BuildReport(batch)
	if report[0].Source != "b" || report[1].Source != "a" {
		t.Fatalf("expected first-seen order, got %+v", report)
	}
	if report[0].Total != 2 {
		t.Fatalf("expected b counted twice, got %+v", report)
	}
}

func TestListAndReport_EmptyBeforeIngest(t *testing.T) {
	svc, _ := newTestService(&stubClassifier{})
	if list := svc.List(); list.Total != 0 || len(list.Items) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
	if rep := svc.Report(); len(rep.Report) != 0 {
		t.Fatalf("expected empty report, got %+v", rep)
	}
}
