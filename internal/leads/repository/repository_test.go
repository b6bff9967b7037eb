package repository

import (
	"sync"
	"testing"

	"lead_triage_backend/internal/leads/transport"
)

func TestInMemoryRepository_EmptyAtStartup(t *testing.T) {
	repo := NewInMemoryRepository()
	if len(repo.Current()) != 0 {
		t.Fatalf("expected empty batch at startup")
	}
	if len(repo.Report()) != 0 {
		t.Fatalf("expected empty report at startup")
	}
}

func TestInMemoryRepository_ReplaceSwapsWholeBatch(t *testing.T) {
	repo := NewInMemoryRepository()

	first := []transport.QualifiedLead{{Tier: "hot"}, {Tier: "low"}}
	repo.Replace(first, []transport.SourceRow{{Source: "website", Total: 2}})

	second := []transport.QualifiedLead{{Tier: "junk"}}
	repo.Replace(second, []transport.SourceRow{{Source: "facebook", Total: 1}})

	got := repo.Current()
	if len(got) != 1 || got[0].Tier != "junk" {
		t.Fatalf("expected second batch only, got %+v", got)
	}
	report := repo.Report()
	if len(report) != 1 || report[0].Source != "facebook" {
		t.Fatalf("expected second report only, got %+v", report)
	}
}

func TestInMemoryRepository_ConcurrentReaders(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Replace([]transport.QualifiedLead{{Tier: "hot"}}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				repo.Replace([]transport.QualifiedLead{{Tier: "hot"}}, []transport.SourceRow{{Source: "s", Total: 1}})
				if batch := repo.Current(); len(batch) != 1 {
					t.Errorf("unexpected batch size %d", len(batch))
					return
				}
				_ = repo.Report()
			}
		}()
	}
	wg.Wait()
}
