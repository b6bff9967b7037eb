package source

import (
	"github.com/xuri/excelize/v2"

	"lead_triage_backend/internal/leads/transport"
	"lead_triage_backend/platform/apperr"
)

// loadXLSX reads the first sheet of a workbook. The first row is the
// header; trailing empty cells are tolerated since excelize trims them.
func loadXLSX(path string) ([]transport.Lead, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindParse, "failed to read workbook", err).WithOp("source.loadXLSX")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Parse("workbook has no sheets").WithOp("source.loadXLSX")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Wrap(apperr.KindParse, "failed to read sheet", err).WithOp("source.loadXLSX")
	}
	if len(rows) == 0 {
		return nil, apperr.Parse("workbook is empty").WithOp("source.loadXLSX")
	}

	header := rows[0]
	leads := make([]transport.Lead, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		leads = append(leads, leadFromRow(header, row))
	}
	return leads, nil
}
