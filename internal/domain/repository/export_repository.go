package repository

import (
	"context"

	"github.com/diillson/erp-reports/internal/domain/entity"
)

// ExportRepository renders a report document into a file of the requested format.
type ExportRepository interface {
	Export(ctx context.Context, format string, doc entity.Document, filename, outputDir string) (string, error)
	SupportedFormats() []string
}
