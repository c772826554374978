package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/diillson/erp-reports/internal/domain/repository"
	"github.com/diillson/erp-reports/internal/shared/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	envFiles []string
	validate *validator.Validate
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
// envFiles são carregados antes das variáveis ERP_REPORTS_*; arquivos ausentes são ignorados.
func NewConfigRepository(envFiles ...string) repository.ConfigRepository {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	return &ConfigRepositoryImpl{
		envFiles: envFiles,
		validate: validator.New(),
	}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	if err := r.validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}

	return &config, nil
}

// LoadEnv lê os arquivos .env e as variáveis ERP_REPORTS_*.
func (r *ConfigRepositoryImpl) LoadEnv() (*types.EnvConfig, error) {
	for _, f := range r.envFiles {
		// godotenv não sobrescreve variáveis já definidas no ambiente
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading env file %s: %w", f, err)
		}
	}

	var cfg types.EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	if err := r.validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	return &cfg, nil
}
