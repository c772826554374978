package types

// CLIArgs represents the command-line arguments. Preview is checked after flags,
// environment and config file are merged.
type CLIArgs struct {
	ConfigFile string
	Report     string
	Source     string
	Title      string
	Subtitle   string
	Author     string
	Filters    []string
	ReportName string
	ReportType []string
	Dir        string
	Preview    int `validate:"gte=0,lte=500"`
	Upload     bool
	Storage    StorageConfig
}
