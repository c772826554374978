package types

import "github.com/diillson/erp-reports/internal/domain/entity"

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Report     string          `json:"report" yaml:"report" toml:"report"`
	Source     string          `json:"source" yaml:"source" toml:"source"`
	Title      string          `json:"title" yaml:"title" toml:"title"`
	Subtitle   string          `json:"subtitle" yaml:"subtitle" toml:"subtitle"`
	Author     string          `json:"author" yaml:"author" toml:"author"`
	Filters    []entity.Filter `json:"filters" yaml:"filters" toml:"filters"`
	ReportName string          `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string        `json:"report_type" yaml:"report_type" toml:"report_type" validate:"omitempty,dive,oneof=xlsx csv json pdf html html-pdf"`
	Dir        string          `json:"dir" yaml:"dir" toml:"dir"`
	Preview    int             `json:"preview" yaml:"preview" toml:"preview" validate:"gte=0,lte=500"`
	Upload     bool            `json:"upload" yaml:"upload" toml:"upload"`
	Storage    StorageConfig   `json:"storage" yaml:"storage" toml:"storage"`
}

// StorageConfig configures the S3-compatible bucket that receives exported files.
type StorageConfig struct {
	Bucket          string `json:"bucket" yaml:"bucket" toml:"bucket" env:"ERP_REPORTS_S3_BUCKET"`
	Region          string `json:"region" yaml:"region" toml:"region" env:"ERP_REPORTS_S3_REGION"`
	Profile         string `json:"profile" yaml:"profile" toml:"profile" env:"ERP_REPORTS_S3_PROFILE"`
	Endpoint        string `json:"endpoint" yaml:"endpoint" toml:"endpoint" env:"ERP_REPORTS_S3_ENDPOINT" validate:"omitempty,url"`
	Prefix          string `json:"prefix" yaml:"prefix" toml:"prefix" env:"ERP_REPORTS_S3_PREFIX"`
	AccessKeyID     string `json:"-" yaml:"-" toml:"-" env:"ERP_REPORTS_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `json:"-" yaml:"-" toml:"-" env:"ERP_REPORTS_S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `json:"use_path_style" yaml:"use_path_style" toml:"use_path_style" env:"ERP_REPORTS_S3_PATH_STYLE"`
}

// EnvConfig holds the ERP_REPORTS_* environment overrides.
type EnvConfig struct {
	Author  string `env:"ERP_REPORTS_AUTHOR"`
	Dir     string `env:"ERP_REPORTS_DIR"`
	Storage StorageConfig
}
