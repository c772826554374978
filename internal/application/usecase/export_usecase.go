package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/diillson/erp-reports/internal/domain/report"
	"github.com/diillson/erp-reports/internal/domain/report/variants"
	"github.com/diillson/erp-reports/internal/domain/repository"
	"github.com/diillson/erp-reports/internal/shared/types"
	"github.com/go-playground/validator/v10"
)

// DefaultReportType é usado quando nem flags nem arquivo de configuração pedem formatos.
const DefaultReportType = "xlsx"

// StorageFactory cria o StorageRepository a partir da configuração já mesclada.
type StorageFactory func(types.StorageConfig) repository.StorageRepository

// ExportUseCase handles report export: load rows, build the grid, render and upload.
type ExportUseCase struct {
	rowRepo    repository.RowRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	newStorage StorageFactory
	console    types.ConsoleInterface
	validate   *validator.Validate
	now        func() time.Time
}

// NewExportUseCase creates a new export use case.
func NewExportUseCase(
	rowRepo repository.RowRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	newStorage StorageFactory,
	console types.ConsoleInterface,
) *ExportUseCase {
	return &ExportUseCase{
		rowRepo:    rowRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		newStorage: newStorage,
		console:    console,
		validate:   validator.New(),
		now:        time.Now,
	}
}

// RunExport exporta um relatório em todos os formatos pedidos.
// Falhas de um formato são registradas e não interrompem os demais.
func (uc *ExportUseCase) RunExport(ctx context.Context, args *types.CLIArgs) error {
	resolved, configFilters, err := uc.ResolveArgs(args)
	if err != nil {
		return err
	}

	descriptor, ok := variants.Lookup(resolved.Report)
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrUnknownReport, resolved.Report)
	}

	if strings.TrimSpace(resolved.Source) == "" {
		return types.ErrMissingSource
	}

	filters, err := ParseFilters(configFilters, resolved.Filters)
	if err != nil {
		return err
	}

	status := uc.console.Status(fmt.Sprintf("Loading rows from %s...", resolved.Source))
	rows, err := uc.rowRepo.LoadRows(ctx, resolved.Source)
	status.Stop()
	if err != nil {
		return fmt.Errorf("failed to load rows for report %s: %w", descriptor.Key, err)
	}
	uc.console.LogInfo("Loaded %d rows for report %s", len(rows), descriptor.Key)

	doc := report.Build(descriptor, rows, filters, entity.ReportMetadata{
		Title:       resolved.Title,
		Subtitle:    resolved.Subtitle,
		GeneratedAt: uc.now(),
		GeneratedBy: resolved.Author,
	})

	if resolved.Preview > 0 {
		uc.displayPreview(doc, resolved.Preview)
	}

	reportName := resolved.ReportName
	if strings.TrimSpace(reportName) == "" {
		reportName = descriptor.Key
	}

	exported := uc.exportAll(ctx, doc, resolved.ReportType, reportName, resolved.Dir)
	if len(exported) == 0 {
		return types.ErrExportFailed
	}

	if resolved.Upload {
		return uc.uploadAll(ctx, resolved.Storage, exported)
	}
	return nil
}

// ResolveArgs mescla flags, ambiente e arquivo de configuração: flags vencem o ambiente,
// que vence o arquivo. Os filtros do arquivo são devolvidos à parte.
func (uc *ExportUseCase) ResolveArgs(args *types.CLIArgs) (*types.CLIArgs, []entity.Filter, error) {
	resolved := *args
	resolved.Filters = append([]string(nil), args.Filters...)
	resolved.ReportType = append([]string(nil), args.ReportType...)

	env, err := uc.configRepo.LoadEnv()
	if err != nil {
		return nil, nil, err
	}
	resolved.Author = firstNonEmpty(resolved.Author, env.Author)
	resolved.Dir = firstNonEmpty(resolved.Dir, env.Dir)
	mergeStorage(&resolved.Storage, env.Storage)

	var configFilters []entity.Filter
	if args.ConfigFile != "" {
		cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, nil, err
		}
		resolved.Report = firstNonEmpty(resolved.Report, cfg.Report)
		resolved.Source = firstNonEmpty(resolved.Source, cfg.Source)
		resolved.Title = firstNonEmpty(resolved.Title, cfg.Title)
		resolved.Subtitle = firstNonEmpty(resolved.Subtitle, cfg.Subtitle)
		resolved.Author = firstNonEmpty(resolved.Author, cfg.Author)
		resolved.ReportName = firstNonEmpty(resolved.ReportName, cfg.ReportName)
		resolved.Dir = firstNonEmpty(resolved.Dir, cfg.Dir)
		if len(resolved.ReportType) == 0 {
			resolved.ReportType = append([]string(nil), cfg.ReportType...)
		}
		if resolved.Preview == 0 {
			resolved.Preview = cfg.Preview
		}
		resolved.Upload = resolved.Upload || cfg.Upload
		mergeStorage(&resolved.Storage, cfg.Storage)
		configFilters = cfg.Filters
	}

	if len(resolved.ReportType) == 0 {
		resolved.ReportType = []string{DefaultReportType}
	}

	if err := uc.validate.Struct(&resolved); err != nil {
		return nil, nil, fmt.Errorf("invalid arguments: %w", err)
	}

	return &resolved, configFilters, nil
}

// ParseFilters builds the ordered filter set: config file filters first, then the
// "label=value" flags. A flag reusing a label replaces that value in place; ";" splits lists.
func ParseFilters(base []entity.Filter, flags []string) (entity.FilterSet, error) {
	filters := make(entity.FilterSet, 0, len(base)+len(flags))
	index := map[string]int{}

	put := func(label string, value interface{}) {
		if i, ok := index[label]; ok {
			filters[i].Value = value
			return
		}
		index[label] = len(filters)
		filters = filters.Add(label, value)
	}

	for _, f := range base {
		label := strings.TrimSpace(f.Label)
		if label == "" {
			return nil, fmt.Errorf("%w: filter without label in config file", types.ErrInvalidFilter)
		}
		put(label, f.Value)
	}

	for _, raw := range flags {
		label, value, ok := strings.Cut(raw, "=")
		label = strings.TrimSpace(label)
		if !ok || label == "" {
			return nil, fmt.Errorf("%w: %q", types.ErrInvalidFilter, raw)
		}
		if strings.Contains(value, ";") {
			put(label, strings.Split(value, ";"))
			continue
		}
		put(label, value)
	}

	return filters, nil
}

// ListReports prints the registered report variants.
func (uc *ExportUseCase) ListReports() {
	table := uc.console.CreateTable()
	table.AddColumn("Report")
	table.AddColumn("Title")
	table.AddColumn("Columns")

	for _, d := range variants.All() {
		table.AddRow(d.Key, d.Title, strings.Join(d.Columns.Headings(), ", "))
	}

	uc.console.Print(table.Render())
	uc.console.LogInfo("Formats: %s", strings.Join(uc.exportRepo.SupportedFormats(), ", "))
}

func (uc *ExportUseCase) exportAll(ctx context.Context, doc entity.Document, formats []string, reportName, dir string) []string {
	progress := uc.console.ProgressWithTotal(len(formats))
	defer progress.Stop()

	var exported []string
	for _, format := range formats {
		path, err := uc.exportRepo.Export(ctx, format, doc, reportName, dir)
		progress.Increment()
		if err != nil {
			uc.console.LogError("Failed to export to %s: %s", strings.ToUpper(format), err)
			continue
		}
		uc.console.LogSuccess("Successfully exported to %s: %s", strings.ToUpper(format), path)
		exported = append(exported, path)
	}
	return exported
}

func (uc *ExportUseCase) uploadAll(ctx context.Context, storageCfg types.StorageConfig, paths []string) error {
	if strings.TrimSpace(storageCfg.Bucket) == "" {
		return types.ErrStorageNotConfigured
	}

	storage := uc.newStorage(storageCfg)
	var lastErr error
	uploaded := 0
	for _, p := range paths {
		uri, err := storage.Upload(ctx, p)
		if err != nil {
			uc.console.LogError("Failed to upload %s: %s", p, err)
			lastErr = err
			continue
		}
		uploaded++
		uc.console.LogSuccess("Uploaded %s", uri)
	}

	if uploaded == 0 && lastErr != nil {
		return fmt.Errorf("no report file could be uploaded: %w", lastErr)
	}
	return nil
}

// displayPreview mostra as primeiras linhas da grade como tabela.
func (uc *ExportUseCase) displayPreview(doc entity.Document, limit int) {
	table := uc.console.CreateTable()
	if h := doc.Layout.HeaderRowIndex - 1; h >= 0 && h < len(doc.Grid) {
		for _, heading := range doc.Grid[h] {
			table.AddColumn(fmt.Sprint(heading))
		}
	}

	var data []entity.Line
	if first := doc.Layout.FirstDataRowIndex - 1; first >= 0 && first < len(doc.Grid) {
		data = doc.Grid[first:]
	}
	for i, line := range data {
		if i >= limit {
			break
		}
		table.AddRow(line...)
	}

	uc.console.Printf("\n%s - %s\n", doc.Metadata.Title, doc.Metadata.GeneratedAt.Format(report.GeneratedAtLayout))
	uc.console.Print(table.Render())
	if len(data) > limit {
		uc.console.LogInfo("... %d more rows", len(data)-limit)
	}
}

func mergeStorage(dst *types.StorageConfig, src types.StorageConfig) {
	dst.Bucket = firstNonEmpty(dst.Bucket, src.Bucket)
	dst.Region = firstNonEmpty(dst.Region, src.Region)
	dst.Profile = firstNonEmpty(dst.Profile, src.Profile)
	dst.Endpoint = firstNonEmpty(dst.Endpoint, src.Endpoint)
	dst.Prefix = firstNonEmpty(dst.Prefix, src.Prefix)
	dst.AccessKeyID = firstNonEmpty(dst.AccessKeyID, src.AccessKeyID)
	dst.SecretAccessKey = firstNonEmpty(dst.SecretAccessKey, src.SecretAccessKey)
	dst.UsePathStyle = dst.UsePathStyle || src.UsePathStyle
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
