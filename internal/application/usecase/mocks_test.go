package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/diillson/erp-reports/internal/shared/types"
	"github.com/stretchr/testify/mock"
)

type mockRowRepository struct{ mock.Mock }

func (m *mockRowRepository) LoadRows(ctx context.Context, source string) ([]entity.ReportRow, error) {
	args := m.Called(ctx, source)
	rows, _ := args.Get(0).([]entity.ReportRow)
	return rows, args.Error(1)
}

type mockExportRepository struct{ mock.Mock }

func (m *mockExportRepository) Export(ctx context.Context, format string, doc entity.Document, filename, outputDir string) (string, error) {
	args := m.Called(ctx, format, doc, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepository) SupportedFormats() []string {
	return []string{"xlsx", "csv", "json", "pdf", "html"}
}

type mockConfigRepository struct{ mock.Mock }

func (m *mockConfigRepository) LoadConfigFile(path string) (*types.Config, error) {
	args := m.Called(path)
	cfg, _ := args.Get(0).(*types.Config)
	return cfg, args.Error(1)
}

func (m *mockConfigRepository) LoadEnv() (*types.EnvConfig, error) {
	args := m.Called()
	cfg, _ := args.Get(0).(*types.EnvConfig)
	return cfg, args.Error(1)
}

type mockStorageRepository struct{ mock.Mock }

func (m *mockStorageRepository) Upload(ctx context.Context, localPath string) (string, error) {
	args := m.Called(ctx, localPath)
	return args.String(0), args.Error(1)
}

// recordingConsole guarda as mensagens para as asserções.
type recordingConsole struct {
	out      strings.Builder
	infos    []string
	warnings []string
	errors   []string
	success  []string
	tables   []*recordingTable
}

func (c *recordingConsole) Print(a ...interface{})                 { fmt.Fprint(&c.out, a...) }
func (c *recordingConsole) Printf(format string, a ...interface{}) { fmt.Fprintf(&c.out, format, a...) }
func (c *recordingConsole) Println(a ...interface{})               { fmt.Fprintln(&c.out, a...) }

func (c *recordingConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {
	c.success = append(c.success, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) Status(string) types.StatusHandle           { return noopHandle{} }
func (c *recordingConsole) ProgressWithTotal(int) types.ProgressHandle { return noopHandle{} }

func (c *recordingConsole) CreateTable() types.TableInterface {
	t := &recordingTable{}
	c.tables = append(c.tables, t)
	return t
}

type noopHandle struct{}

func (noopHandle) Update(string) {}
func (noopHandle) Increment()    {}
func (noopHandle) Stop()         {}

type recordingTable struct {
	columns []string
	rows    [][]interface{}
}

func (t *recordingTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }
func (t *recordingTable) AddRow(cells ...interface{})             { t.rows = append(t.rows, cells) }
func (t *recordingTable) Render() string                          { return strings.Join(t.columns, "|") + "\n" }
