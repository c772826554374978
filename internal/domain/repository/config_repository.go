package repository

import (
	"github.com/diillson/erp-reports/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	LoadEnv() (*types.EnvConfig, error)
}
