package repository

import (
	"context"

	"github.com/diillson/erp-reports/internal/domain/entity"
)

// RowRepository loads the records of a report from a file or database source.
type RowRepository interface {
	LoadRows(ctx context.Context, source string) ([]entity.ReportRow, error)
}
