package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/diillson/erp-reports/internal/domain/entity"
)

func writeCSV(w io.Writer, doc entity.Document) error {
	writer := csv.NewWriter(w)

	for i, line := range doc.Grid {
		record := make([]string, len(line))
		for j, cell := range line {
			record[j] = cellText(cell)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing CSV record %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing CSV data: %w", err)
	}
	return nil
}
