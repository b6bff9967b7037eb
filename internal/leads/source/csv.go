package source

import (
	"encoding/csv"
	"os"

	"lead_triage_backend/internal/leads/transport"
	"lead_triage_backend/platform/apperr"
)

func loadCSV(path string) ([]transport.Lead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindParse, "failed to read CSV", err).WithOp("source.loadCSV")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindParse, "failed to read CSV", err).WithOp("source.loadCSV")
	}
	if len(records) == 0 {
		return nil, apperr.Parse("CSV file is empty").WithOp("source.loadCSV")
	}

	header := records[0]
	leads := make([]transport.Lead, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) == 0 {
			continue
		}
		leads = append(leads, leadFromRow(header, row))
	}
	return leads, nil
}
