package main

import (
	"fmt"
	"os"
	"time"

	"github.com/diillson/erp-reports/internal/adapter/driven/config"
	"github.com/diillson/erp-reports/internal/adapter/driven/export"
	"github.com/diillson/erp-reports/internal/adapter/driven/source"
	"github.com/diillson/erp-reports/internal/adapter/driven/storage"
	"github.com/diillson/erp-reports/internal/adapter/driving/cli"
	"github.com/diillson/erp-reports/internal/application/usecase"
	"github.com/diillson/erp-reports/internal/domain/repository"
	"github.com/diillson/erp-reports/internal/shared/types"
	"github.com/diillson/erp-reports/pkg/console"
	"github.com/diillson/erp-reports/pkg/version"
)

const htmlPDFTimeout = 60 * time.Second

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	rowRepo := source.NewRowRepository()
	exportRepo := export.NewExportRepository(export.NewChromePrinter(htmlPDFTimeout))
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	exportUseCase := usecase.NewExportUseCase(
		rowRepo,
		exportRepo,
		configRepo,
		func(cfg types.StorageConfig) repository.StorageRepository {
			return storage.NewS3Repository(cfg)
		},
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetExportUseCase(exportUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
