package source

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/diillson/erp-reports/internal/domain/repository"
	"github.com/diillson/erp-reports/internal/shared/types"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	_ "modernc.org/sqlite"
)

const sqliteScheme = "sqlite://"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RowRepositoryImpl lê os registros de um relatório de arquivos ou de uma tabela SQLite.
type RowRepositoryImpl struct{}

// NewRowRepository cria uma nova implementação do RowRepository.
func NewRowRepository() repository.RowRepository {
	return &RowRepositoryImpl{}
}

// LoadRows dispatches on the source: sqlite://path?table=name or a .json, .yaml/.yml or .csv file.
func (r *RowRepositoryImpl) LoadRows(ctx context.Context, source string) ([]entity.ReportRow, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, types.ErrMissingSource
	}

	if strings.HasPrefix(strings.ToLower(source), sqliteScheme) {
		return r.loadSQLite(ctx, source)
	}

	ext := strings.ToLower(filepath.Ext(source))
	switch ext {
	case ".json", ".yaml", ".yml", ".csv":
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedSource, source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("error reading source file: %w", err)
	}

	switch ext {
	case ".json":
		return parseJSONRows(data)
	case ".csv":
		return parseCSVRows(data)
	default:
		return parseYAMLRows(data)
	}
}

// parseJSONRows accepts a plain array or a paginated {"data": [...]} envelope.
func parseJSONRows(data []byte) ([]entity.ReportRow, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []entity.ReportRow{}, nil
	}

	var rows []entity.ReportRow
	if trimmed[0] == '{' {
		var envelope struct {
			Data *[]entity.ReportRow `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("error parsing JSON source: %w", err)
		}
		if envelope.Data == nil {
			return nil, fmt.Errorf("%w: JSON object without a \"data\" array", types.ErrUnsupportedSource)
		}
		rows = *envelope.Data
	} else if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, fmt.Errorf("error parsing JSON source: %w", err)
	}

	return dropNilRows(rows), nil
}

func parseYAMLRows(data []byte) ([]entity.ReportRow, error) {
	var raw []map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing YAML source: %w", err)
	}

	rows := make([]entity.ReportRow, 0, len(raw))
	for _, m := range raw {
		if m == nil {
			continue
		}
		rows = append(rows, entity.ReportRow(normalizeYAML(m).(map[string]interface{})))
	}
	return rows, nil
}

// normalizeYAML converte mapas aninhados com chaves não-string (map[interface{}]interface{})
// para map[string]interface{}, formato esperado pelo Lookup com caminhos pontuados.
func normalizeYAML(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[cast.ToString(k)] = normalizeYAML(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}

// parseCSVRows uses the first record as header; empty cells become nil and render as the placeholder.
func parseCSVRows(data []byte) ([]entity.ReportRow, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []entity.ReportRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := []entity.ReportRow{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV record: %w", err)
		}

		row := make(entity.ReportRow, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(record) && record[i] != "" {
				row[name] = record[i]
			} else {
				row[name] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *RowRepositoryImpl) loadSQLite(ctx context.Context, source string) ([]entity.ReportRow, error) {
	path, table, err := parseSQLiteSource(source)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("error accessing SQLite database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening SQLite database: %w", err)
	}
	defer db.Close()

	rs, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s"`, table))
	if err != nil {
		return nil, fmt.Errorf("error querying table %s: %w", table, err)
	}
	defer rs.Close()

	columns, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("error reading columns of %s: %w", table, err)
	}

	rows := []entity.ReportRow{}
	for rs.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("error scanning row of %s: %w", table, err)
		}

		row := make(entity.ReportRow, len(columns))
		for i, c := range columns {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", table, err)
	}

	return rows, nil
}

func parseSQLiteSource(source string) (string, string, error) {
	rest := source[len(sqliteScheme):]
	path, query, _ := strings.Cut(rest, "?")
	if path == "" {
		return "", "", fmt.Errorf("%w: missing database path in %s", types.ErrUnsupportedSource, source)
	}

	params, err := url.ParseQuery(query)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", types.ErrUnsupportedSource, err)
	}
	table := params.Get("table")
	if !tableNamePattern.MatchString(table) {
		return "", "", fmt.Errorf("%w: invalid table name %q", types.ErrUnsupportedSource, table)
	}
	return path, table, nil
}

func dropNilRows(rows []entity.ReportRow) []entity.ReportRow {
	out := make([]entity.ReportRow, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
