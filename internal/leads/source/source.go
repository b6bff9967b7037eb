// Package source loads raw lead records from tabular files. The reader is
// selected by file extension: .csv goes through encoding/csv, .xlsx through
// excelize. Unknown columns are ignored; missing columns leave fields blank.
package source

import (
	"os"
	"path/filepath"
	"strings"

	"lead_triage_backend/internal/leads/transport"
	"lead_triage_backend/platform/apperr"
)

// Load reads all lead records from the file at path. A missing file maps to
// a FileNotFound error, an unreadable or malformed file to a ParseError.
func Load(path string) ([]transport.Lead, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "file not found: "+path, err).WithOp("source.Load")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, apperr.Parse("unsupported file type: " + filepath.Ext(path)).WithOp("source.Load")
	}
}

// columnSetters maps a header name to the field it fills. Headers are
// matched case-insensitively after trimming.
var columnSetters = map[string]func(*transport.Lead, string){
	"name":                func(l *transport.Lead, v string) { l.Name = v },
	"email":               func(l *transport.Lead, v string) { l.Email = v },
	"phone":               func(l *transport.Lead, v string) { l.Phone = v },
	"property_type":       func(l *transport.Lead, v string) { l.PropertyType = v },
	"budget":              func(l *transport.Lead, v string) { l.Budget = v },
	"location_preference": func(l *transport.Lead, v string) { l.LocationPreference = v },
	"timeframe_to_move":   func(l *transport.Lead, v string) { l.TimeframeToMove = v },
	"message":             func(l *transport.Lead, v string) { l.Message = v },
	"source":              func(l *transport.Lead, v string) { l.Source = v },
}

func leadFromRow(header []string, row []string) transport.Lead {
	var lead transport.Lead
	for i, col := range header {
		if i >= len(row) {
			break
		}
		set, ok := columnSetters[strings.ToLower(strings.TrimSpace(col))]
		if !ok {
			continue
		}
		set(&lead, row[i])
	}
	return lead
}
