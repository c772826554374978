package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/diillson/erp-reports/internal/domain/entity"
)

func writeJSON(w io.Writer, doc entity.Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("error encoding JSON data: %w", err)
	}
	return nil
}
