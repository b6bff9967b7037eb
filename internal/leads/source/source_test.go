package source

import (
	"os"
	"path/filepath"
	"testing"

	"lead_triage_backend/platform/apperr"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/leads.csv")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", apperr.GetKind(err))
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "leads.txt", "hello")
	_, err := Load(path)
	if !apperr.Is(err, apperr.KindParse) {
		t.Fatalf("expected KindParse, got %v", err)
	}
}

func TestLoadCSV_MapsColumns(t *testing.T) {
	csv := "name,email,phone,property_type,budget,location_preference,timeframe_to_move,message,source\n" +
		"Amina,a@b.com,0501234567,buy,\"1,200,000\",Dubai,now,Looking to buy a villa,website\n" +
		"Omar,,,rent,60000,Sharjah,3-6 months,need an apartment,facebook\n"
	path := writeTemp(t, "leads.csv", csv)

	leads, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(leads))
	}
	if leads[0].Name != "Amina" || leads[0].Budget != "1,200,000" || leads[0].Source != "website" {
		t.Fatalf("unexpected first lead: %+v", leads[0])
	}
	if leads[1].Email != "" || leads[1].PropertyType != "rent" {
		t.Fatalf("unexpected second lead: %+v", leads[1])
	}
}

func TestLoadCSV_HeaderCaseInsensitive(t *testing.T) {
	path := writeTemp(t, "leads.csv", "Name,EMAIL\nSara,s@e.com\n")

	leads, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leads[0].Name != "Sara" || leads[0].Email != "s@e.com" {
		t.Fatalf("unexpected lead: %+v", leads[0])
	}
}

func TestLoadCSV_UnknownColumnsIgnored(t *testing.T) {
	path := writeTemp(t, "leads.csv", "name,favorite_color\nSara,blue\n")

	leads, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leads[0].Name != "Sara" {
		t.Fatalf("unexpected lead: %+v", leads[0])
	}
}

func TestLoadCSV_ShortRows(t *testing.T) {
	path := writeTemp(t, "leads.csv", "name,email,phone\nSara\n")

	leads, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 1 || leads[0].Name != "Sara" || leads[0].Email != "" {
		t.Fatalf("unexpected leads: %+v", leads)
	}
}

func TestLoadCSV_Empty(t *testing.T) {
	path := writeTemp(t, "leads.csv", "")
	_, err := Load(path)
	if !apperr.Is(err, apperr.KindParse) {
		t.Fatalf("expected KindParse for empty file, got %v", err)
	}
}

func TestLoadXLSX_Garbage(t *testing.T) {
	path := writeTemp(t, "leads.xlsx", "this is not a workbook")
	_, err := Load(path)
	if !apperr.Is(err, apperr.KindParse) {
		t.Fatalf("expected KindParse for invalid workbook, got %v", err)
	}
}
