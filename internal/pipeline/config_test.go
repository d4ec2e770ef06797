package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if len(cfg.ExcludedSeverities) != 1 || cfg.ExcludedSeverities[0] != "info" {
		t.Errorf("ExcludedSeverities = %v, want [info]", cfg.ExcludedSeverities)
	}
	if !cfg.FoldSkips {
		t.Error("FoldSkips should default to true")
	}
	if cfg.CollectErrors {
		t.Error("CollectErrors should default to false")
	}
	if len(cfg.Keywords.Primary) == 0 || len(cfg.Keywords.Secondary) == 0 {
		t.Error("default keyword policy should be populated")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.SourceDir = "/src"
	valid.DestDir = "/dst"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing source",
			mutate:  func(c *Config) { c.SourceDir = "" },
			wantErr: true,
		},
		{
			name:    "missing destination",
			mutate:  func(c *Config) { c.DestDir = "" },
			wantErr: true,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Workers = 0 },
			wantErr: true,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workers = -1 },
			wantErr: true,
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Workers = 1000 },
			wantErr: true,
		},
		{
			name: "collect errors without error dir",
			mutate: func(c *Config) {
				c.CollectErrors = true
				c.ErrorDir = ""
			},
			wantErr: true,
		},
		{
			name:    "empty keyword policy",
			mutate:  func(c *Config) { c.Keywords.Primary = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExcludesSeverity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExcludedSeverities = []string{"info", "low"}

	if !cfg.ExcludesSeverity("info") || !cfg.ExcludesSeverity("low") {
		t.Error("configured labels should be excluded")
	}
	if cfg.ExcludesSeverity("high") || cfg.ExcludesSeverity("unknown") {
		t.Error("unconfigured labels should not be excluded")
	}
}

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name:    "no environment variables uses defaults",
			envVars: map[string]string{},
			check: func(t *testing.T, cfg Config) {
				defaults := DefaultConfig()
				if cfg.Workers != defaults.Workers {
					t.Errorf("Workers = %v, want %v", cfg.Workers, defaults.Workers)
				}
				if cfg.FoldSkips != defaults.FoldSkips {
					t.Errorf("FoldSkips = %v, want %v", cfg.FoldSkips, defaults.FoldSkips)
				}
			},
		},
		{
			name: "valid custom configuration",
			envVars: map[string]string{
				"POCSIFT_SOURCE":           "/poc",
				"POCSIFT_OUTPUT":           "/out",
				"POCSIFT_EXCLUDE_SEVERITY": "info, low",
				"POCSIFT_WORKERS":          "8",
				"POCSIFT_COLLECT_ERRORS":   "true",
				"POCSIFT_ERROR_DIR":        "/errs",
				"POCSIFT_FOLD_SKIPS":       "false",
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.SourceDir != "/poc" {
					t.Errorf("SourceDir = %q, want /poc", cfg.SourceDir)
				}
				if cfg.DestDir != "/out" {
					t.Errorf("DestDir = %q, want /out", cfg.DestDir)
				}
				if len(cfg.ExcludedSeverities) != 2 || cfg.ExcludedSeverities[1] != "low" {
					t.Errorf("ExcludedSeverities = %v, want [info low]", cfg.ExcludedSeverities)
				}
				if cfg.Workers != 8 {
					t.Errorf("Workers = %d, want 8", cfg.Workers)
				}
				if !cfg.CollectErrors {
					t.Error("CollectErrors = false, want true")
				}
				if cfg.ErrorDir != "/errs" {
					t.Errorf("ErrorDir = %q, want /errs", cfg.ErrorDir)
				}
				if cfg.FoldSkips {
					t.Error("FoldSkips = true, want false")
				}
			},
		},
		{
			name: "invalid int value",
			envVars: map[string]string{
				"POCSIFT_WORKERS": "not-a-number",
			},
			wantErr: true,
		},
		{
			name: "invalid bool value",
			envVars: map[string]string{
				"POCSIFT_COLLECT_ERRORS": "maybe",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			cfg, err := ConfigFromEnv()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConfigFromEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pocsift.yaml")
	content := `source: ./poc
output: ./out
exclude_severity:
  - info
  - low
workers: 16
collect_errors: true
error_dir: failed
fold_skips: false
keywords:
  primary:
    - CURL
  secondary:
    - /robots.txt
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}

	if cfg.SourceDir != "./poc" || cfg.DestDir != "./out" {
		t.Errorf("dirs = %q/%q, want ./poc/./out", cfg.SourceDir, cfg.DestDir)
	}
	if cfg.Workers != 16 {
		t.Errorf("Workers = %d, want 16", cfg.Workers)
	}
	if !cfg.CollectErrors || cfg.ErrorDir != "failed" {
		t.Errorf("error collection = %v/%q, want true/failed", cfg.CollectErrors, cfg.ErrorDir)
	}
	if cfg.FoldSkips {
		t.Error("FoldSkips = true, want false")
	}
	if len(cfg.Keywords.Primary) != 1 || cfg.Keywords.Primary[0] != "CURL" {
		t.Errorf("Keywords.Primary = %v, want [CURL]", cfg.Keywords.Primary)
	}
}

func TestLoadConfigFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg.Workers != DefaultConfig().Workers {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfigFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pocsift.yaml")
	if err := os.WriteFile(path, []byte("workers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if len(cfg.ExcludedSeverities) != 1 || cfg.ExcludedSeverities[0] != "info" {
		t.Errorf("unset fields should keep defaults, got %v", cfg.ExcludedSeverities)
	}
	if len(cfg.Keywords.Primary) == 0 {
		t.Error("unset keyword policy should keep defaults")
	}
}

func TestSaveConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pocsift.yaml")

	want := DefaultConfig()
	want.SourceDir = "/poc"
	want.DestDir = "/out"
	want.Workers = 12
	want.FoldSkips = false

	if err := SaveConfigFile(path, want); err != nil {
		t.Fatalf("SaveConfigFile() error = %v", err)
	}
	got, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}

	if got.SourceDir != want.SourceDir || got.DestDir != want.DestDir ||
		got.Workers != want.Workers || got.FoldSkips != want.FoldSkips {
		t.Errorf("round trip mismatch: got %s, want %s", got, want)
	}
}

func TestExampleConfigFileParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pocsift.yaml")
	if err := os.WriteFile(path, []byte(ExampleConfigFile()), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("example config should parse, got %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("example config should validate, got %v", err)
	}
}
