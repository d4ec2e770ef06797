package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFile represents the structure of a pocsift.yaml config file.
type ConfigFile struct {
	// Source and destination directories
	Source string `yaml:"source"`
	Output string `yaml:"output"`

	// Severity labels whose templates are dropped
	ExcludeSeverity []string `yaml:"exclude_severity"`

	// Worker pool size
	Workers int `yaml:"workers"`

	// Failed-file collection
	CollectErrors bool   `yaml:"collect_errors"`
	ErrorDir      string `yaml:"error_dir"`

	// Reporting: fold no-signature skips into the failure count
	FoldSkips *bool `yaml:"fold_skips"`

	// Keyword policy overrides (if empty, uses built-in defaults)
	Keywords KeywordConfig `yaml:"keywords"`
}

// KeywordConfig defines the static-asset keyword policy in the config
// file.
type KeywordConfig struct {
	Primary   []string `yaml:"primary"`
	Secondary []string `yaml:"secondary"`
}

// LoadConfigFile loads configuration from a yaml file. A missing file
// returns the default config.
func LoadConfigFile(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var configFile ConfigFile
	if err := yaml.Unmarshal(data, &configFile); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	return configFile.ToConfig(), nil
}

// ToConfig converts a ConfigFile to a Config, starting from defaults
// and overriding only the fields the file sets.
func (cf *ConfigFile) ToConfig() Config {
	config := DefaultConfig()

	if cf.Source != "" {
		config.SourceDir = cf.Source
	}
	if cf.Output != "" {
		config.DestDir = cf.Output
	}
	if len(cf.ExcludeSeverity) > 0 {
		config.ExcludedSeverities = cf.ExcludeSeverity
	}
	if cf.Workers > 0 {
		config.Workers = cf.Workers
	}
	config.CollectErrors = cf.CollectErrors
	if cf.ErrorDir != "" {
		config.ErrorDir = cf.ErrorDir
	}
	if cf.FoldSkips != nil {
		config.FoldSkips = *cf.FoldSkips
	}
	if len(cf.Keywords.Primary) > 0 {
		config.Keywords.Primary = cf.Keywords.Primary
	}
	if len(cf.Keywords.Secondary) > 0 {
		config.Keywords.Secondary = cf.Keywords.Secondary
	}

	return config
}

// SaveConfigFile saves a Config to a yaml file.
func SaveConfigFile(path string, config Config) error {
	foldSkips := config.FoldSkips
	configFile := ConfigFile{
		Source:          config.SourceDir,
		Output:          config.DestDir,
		ExcludeSeverity: config.ExcludedSeverities,
		Workers:         config.Workers,
		CollectErrors:   config.CollectErrors,
		ErrorDir:        config.ErrorDir,
		FoldSkips:       &foldSkips,
		Keywords: KeywordConfig{
			Primary:   config.Keywords.Primary,
			Secondary: config.Keywords.Secondary,
		},
	}

	data, err := yaml.Marshal(&configFile)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ExampleConfigFile returns an example configuration file content.
func ExampleConfigFile() string {
	return `# pocsift configuration

# Source tree to scan for .yaml/.yml templates
source: ./nuclei-templates

# Destination for kept templates
output: ./curated

# Severity labels whose templates are dropped
exclude_severity:
  - info

# Worker pool size for file evaluation
workers: 4

# Copy files whose evaluation failed into error_dir
collect_errors: false
error_dir: error_files

# Report no-signature skips and read failures as one bucket
fold_skips: true

# Static-asset keyword policy: a template is dropped when any single
# line contains at least one primary and one secondary keyword
keywords:
  primary:
    - HTTP
    - GET
    - POST
    - PUT
    - BaseURL
  secondary:
    - /readme.txt
    - /style.css
`
}
