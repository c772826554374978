package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/erp-reports/internal/adapter/driven/config"
	"github.com/diillson/erp-reports/internal/adapter/driven/export"
	"github.com/diillson/erp-reports/internal/adapter/driven/source"
	"github.com/diillson/erp-reports/internal/adapter/driven/storage"
	"github.com/diillson/erp-reports/internal/application/usecase"
	"github.com/diillson/erp-reports/internal/domain/repository"
	"github.com/diillson/erp-reports/internal/shared/types"
	"github.com/diillson/erp-reports/pkg/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *CLIApp {
	t.Helper()
	app := NewCLIApp("0.0.0-dev")
	app.showBanner = false
	app.SetExportUseCase(usecase.NewExportUseCase(
		source.NewRowRepository(),
		export.NewExportRepository(nil),
		config.NewConfigRepository(filepath.Join(t.TempDir(), "absent.env")),
		func(cfg types.StorageConfig) repository.StorageRepository { return storage.NewS3Repository(cfg) },
		console.NewConsole(),
	))
	return app
}

func TestParseArgs(t *testing.T) {
	app := newTestApp(t)
	cmd, _, err := app.rootCmd.Find([]string{"export"})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags([]string{
		"-r", "requisiciones",
		"-s", "req.json",
		"-f", "sucursal=Centro, Norte",
		"-f", "estatus=AUTORIZADA",
		"-y", "xlsx,pdf",
		"-d", "out",
		"--bucket", "erp",
		"--upload",
	}))

	args, err := app.parseArgs(cmd)
	require.NoError(t, err)

	assert.Equal(t, "requisiciones", args.Report)
	assert.Equal(t, []string{"sucursal=Centro, Norte", "estatus=AUTORIZADA"}, args.Filters)
	assert.Equal(t, []string{"xlsx", "pdf"}, args.ReportType)
	assert.True(t, filepath.IsAbs(args.Dir))
	assert.True(t, args.Upload)
	assert.Equal(t, "erp", args.Storage.Bucket)
}

func TestExportCommandWritesFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "areas.json")
	require.NoError(t, os.WriteFile(src, []byte(`[{"id": 1, "nombre": "Compras", "activo": true}]`), 0o644))

	app := newTestApp(t)
	app.SetArgs([]string{"export", "-r", "areas", "-s", src, "-y", "csv,json", "-d", dir, "-n", "areas"})
	require.NoError(t, app.Execute())

	csvFiles, err := filepath.Glob(filepath.Join(dir, "areas_*.csv"))
	require.NoError(t, err)
	assert.Len(t, csvFiles, 1)

	jsonFiles, err := filepath.Glob(filepath.Join(dir, "areas_*.json"))
	require.NoError(t, err)
	assert.Len(t, jsonFiles, 1)
}

func TestExportCommandUnknownReport(t *testing.T) {
	app := newTestApp(t)
	app.SetArgs([]string{"export", "-r", "nomina", "-s", "x.json"})
	assert.ErrorIs(t, app.Execute(), types.ErrUnknownReport)
}

func TestExportCommandRejectsLargePreview(t *testing.T) {
	app := newTestApp(t)
	app.SetArgs([]string{"export", "-r", "areas", "-s", "areas.json", "-p", "900"})
	assert.ErrorContains(t, app.Execute(), "invalid arguments")
}
