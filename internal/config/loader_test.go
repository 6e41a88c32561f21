package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test-config.yaml")
	writeFile(t, configPath, `version: "1.0"
data:
  path: "points.csv"
  watch: true
hotspots:
  threshold: 55
  min_cluster_size: 4
output:
  default_format: "json"
  verbose: true
`)

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Data.Path != "points.csv" || !cfg.Data.Watch {
		t.Errorf("Unexpected data section: %+v", cfg.Data)
	}
	if cfg.Hotspots.Threshold != 55 || cfg.Hotspots.MinClusterSize != 4 {
		t.Errorf("Unexpected hotspot section: %+v", cfg.Hotspots)
	}
	if cfg.Output.DefaultFormat != "json" || !cfg.Output.Verbose {
		t.Errorf("Unexpected output section: %+v", cfg.Output)
	}

	// Keys missing from the file keep their defaults
	if cfg.Hotspots.ThresholdMax != 80 || cfg.Plot.Size != 600 || cfg.Data.DimensionPrefix != "d" {
		t.Errorf("Defaults were lost: %+v %+v", cfg.Hotspots, cfg.Plot)
	}
}

func TestLoadConfigLayering(t *testing.T) {
	dir := t.TempDir()
	system := filepath.Join(dir, "system.yaml")
	user := filepath.Join(dir, "user.yaml")
	project := filepath.Join(dir, "project.yaml")

	writeFile(t, system, "hotspots:\n  threshold: 30\n  min_cluster_size: 3\n")
	writeFile(t, user, "hotspots:\n  threshold: 35\n")
	writeFile(t, project, "server:\n  address: \":9090\"\n")

	var warnings []string
	loader := &Loader{
		configPaths: []string{project, user, system, filepath.Join(dir, "missing.yaml")},
		warn: func(format string, args ...interface{}) {
			warnings = append(warnings, format)
		},
	}

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Hotspots.Threshold != 35 {
		t.Errorf("Expected user threshold 35 to beat system 30, got %v", cfg.Hotspots.Threshold)
	}
	if cfg.Hotspots.MinClusterSize != 3 {
		t.Errorf("Expected system min cluster size 3, got %d", cfg.Hotspots.MinClusterSize)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("Expected project address :9090, got %s", cfg.Server.Address)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", warnings)
	}
}

func TestLoadConfigBrokenLayerIsSkipped(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, good, "hotspots:\n  threshold: 50\n")
	writeFile(t, bad, "hotspots:\n  threshold: [oops\n")

	var warnings int
	loader := &Loader{
		configPaths: []string{bad, good},
		warn:        func(string, ...interface{}) { warnings++ },
	}

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if warnings != 1 {
		t.Errorf("Expected 1 warning, got %d", warnings)
	}
	if cfg.Hotspots.Threshold != 50 {
		t.Errorf("Broken file should not clobber earlier layers, got %v", cfg.Hotspots.Threshold)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid-config.yaml")
	writeFile(t, configPath, `output:
  default_format: "json
  verbose: true
`)

	if _, err := NewLoader().LoadConfig(configPath); err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, configPath, "hotspots:\n  threshold: 5\n")

	_, err := NewLoader().LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("Expected validation failure, got %v", err)
	}
}

func TestLoadConfigPathValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"path traversal", "../../etc/config.yaml"},
		{"wrong extension", "config.json"},
		{"proc filesystem", "/proc/self/config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLoader().LoadConfig(tt.path); err == nil {
				t.Errorf("Expected error for %s", tt.path)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("EMBEDSCOPE_DATA_PATH", "/data/points.csv")
	t.Setenv("EMBEDSCOPE_DATA_WATCH", "true")
	t.Setenv("EMBEDSCOPE_HOTSPOTS_THRESHOLD", "60")
	t.Setenv("EMBEDSCOPE_HOTSPOTS_MIN_CLUSTER_SIZE", "5")
	t.Setenv("EMBEDSCOPE_UI_THEME", "minimal")
	t.Setenv("EMBEDSCOPE_OUTPUT_VERBOSE", "true")

	cfg := DefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Data.Path != "/data/points.csv" || !cfg.Data.Watch {
		t.Errorf("Unexpected data section: %+v", cfg.Data)
	}
	if cfg.Hotspots.Threshold != 60 || cfg.Hotspots.MinClusterSize != 5 {
		t.Errorf("Unexpected hotspot section: %+v", cfg.Hotspots)
	}
	if cfg.UI.Theme != "minimal" || !cfg.Output.Verbose {
		t.Errorf("Unexpected ui/output: %+v %+v", cfg.UI, cfg.Output)
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "EMBEDSCOPE_HOTSPOTS_MIN_CLUSTER_SIZE", "not-a-number"},
		{"invalid float", "EMBEDSCOPE_HOTSPOTS_THRESHOLD", "wide"},
		{"invalid bool", "EMBEDSCOPE_OUTPUT_VERBOSE", "not-a-bool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			if err := applyEnvOverrides(DefaultConfig()); err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestSampleConfigsParse(t *testing.T) {
	for name, content := range map[string]string{
		"full":    SampleConfig(),
		"minimal": MinimalSampleConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
				t.Fatalf("Sample config does not parse: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Sample config does not validate: %v", err)
			}
		})
	}
}

func TestFullSampleMatchesDefaults(t *testing.T) {
	var parsed Config
	if err := yaml.Unmarshal([]byte(SampleConfig()), &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed != *DefaultConfig() {
		t.Errorf("Sample config drifted from defaults:\n%+v\n%+v", parsed, *DefaultConfig())
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/x.yaml"); got != filepath.Join(home, "x.yaml") {
		t.Errorf("expandPath() = %s", got)
	}
	if got := expandPath("/abs/x.yaml"); got != "/abs/x.yaml" {
		t.Errorf("expandPath() = %s", got)
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := GetConfigPaths()
	if len(paths) != len(ConfigPaths) {
		t.Fatalf("Expected %d paths, got %d", len(ConfigPaths), len(paths))
	}
	for _, p := range paths {
		if strings.HasPrefix(p, "~") {
			t.Errorf("Path %s was not expanded", p)
		}
	}
}
