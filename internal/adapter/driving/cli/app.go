package cli

import (
	"context"
	"path/filepath"

	"github.com/diillson/erp-reports/pkg/version"

	"github.com/diillson/erp-reports/internal/application/usecase"
	"github.com/diillson/erp-reports/internal/shared/types"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	exportUseCase *usecase.ExportUseCase
	version       string
	showBanner    bool
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		showBanner: true,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "erp-reports",
		Short:         "Export ERP reports to XLSX, CSV, JSON, PDF and HTML",
		Version:       formattedVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "erp-reports version: %s\n" .Version}}`)
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Do not print the welcome banner")

	exportCmd := &cobra.Command{
		Use:     "export",
		Short:   "Build a report from a row source and export it",
		Example: "  erp-reports export -r requisiciones -s data/requisiciones.json -f estatus=AUTORIZADA -y xlsx,pdf",
		Args:    cobra.NoArgs,
		RunE:    app.runExport,
	}
	flags := exportCmd.Flags()
	flags.StringP("report", "r", "", "Report to export (see 'erp-reports reports')")
	flags.StringP("source", "s", "", "Row source: .json, .yaml, .csv file or sqlite://path?table=name")
	flags.StringP("title", "t", "", "Report title (default: the report's own title)")
	flags.String("subtitle", "", "Report subtitle")
	flags.StringP("author", "a", "", "Name shown as the report author")
	flags.StringArrayP("filter", "f", nil, "Active filter as label=value; separate list values with ';' (repeatable)")
	flags.StringP("report-name", "n", "", "Base name for the report files, without extension (default: report key)")
	flags.StringSliceP("report-type", "y", nil, "Report types: xlsx, csv, json, pdf, html, html-pdf (default: xlsx)")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.IntP("preview", "p", 0, "Print the first N rows of the report before exporting")
	flags.Bool("upload", false, "Upload the exported files to the configured S3 bucket")
	flags.String("bucket", "", "S3 bucket for --upload")
	flags.String("prefix", "", "Object key prefix for --upload (default: reports)")

	reportsCmd := &cobra.Command{
		Use:   "reports",
		Short: "List the available reports and their columns",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.exportUseCase.ListReports()
		},
	}

	rootCmd.AddCommand(exportCmd, reportsCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs replaces os.Args, used by tests.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
// Flags not given stay empty so the config file and environment can fill them.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	report, _ := flags.GetString("report")
	source, _ := flags.GetString("source")
	title, _ := flags.GetString("title")
	subtitle, _ := flags.GetString("subtitle")
	author, _ := flags.GetString("author")
	filters, _ := flags.GetStringArray("filter")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	preview, _ := flags.GetInt("preview")
	upload, _ := flags.GetBool("upload")
	bucket, _ := flags.GetString("bucket")
	prefix, _ := flags.GetString("prefix")

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		Report:     report,
		Source:     source,
		Title:      title,
		Subtitle:   subtitle,
		Author:     author,
		Filters:    filters,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		Preview:    preview,
		Upload:     upload,
		Storage: types.StorageConfig{
			Bucket: bucket,
			Prefix: prefix,
		},
	}

	return args, nil
}

// runExport é o ponto de entrada do comando export.
func (app *CLIApp) runExport(cmd *cobra.Command, _ []string) error {
	if noBanner, _ := cmd.Flags().GetBool("no-banner"); app.showBanner && !noBanner {
		displayWelcomeBanner(app.version)

		// Verifica a versão mais recente disponível
		go version.CheckLatestVersion(app.version)
	}

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.exportUseCase.RunExport(ctx, cliArgs)
}

// SetExportUseCase sets the export use case for the CLI app.
func (app *CLIApp) SetExportUseCase(useCase *usecase.ExportUseCase) {
	app.exportUseCase = useCase
}
