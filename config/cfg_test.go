package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"csstweak/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Reader.FontSize != 11 {
		t.Errorf("Reader.FontSize = %v, want 11", cfg.Reader.FontSize)
	}
	if cfg.Reader.LineHeight != 1.2 {
		t.Errorf("Reader.LineHeight = %v, want 1.2", cfg.Reader.LineHeight)
	}
	if cfg.Reader.TextAlign != common.TextAlignJustify {
		t.Errorf("Reader.TextAlign = %v, want justify", cfg.Reader.TextAlign)
	}
	if cfg.Units.FontSize != "pt" || cfg.Units.LineHeight != "em" {
		t.Errorf("Units = %+v, want pt/em", cfg.Units)
	}
	if cfg.Selection.ClassPolicy != common.ClassPolicyFirst {
		t.Errorf("ClassPolicy = %v, want first", cfg.Selection.ClassPolicy)
	}
	if cfg.Store.Backend != common.StoreBackendFile {
		t.Errorf("Store.Backend = %v, want file", cfg.Store.Backend)
	}
	if len(cfg.Store.Directory) == 0 {
		t.Error("Store.Directory should have default value")
	}
}

func TestLoadConfiguration_DefaultStyles(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	want := []string{"Main paragraph", "Opening paragraph", "Force preferences"}
	if len(cfg.Styles) != len(want) {
		t.Fatalf("Styles length = %d, want %d", len(cfg.Styles), len(want))
	}
	for i, name := range want {
		if cfg.Styles[i].Name != name {
			t.Errorf("Styles[%d].Name = %q, want %q", i, cfg.Styles[i].Name, name)
		}
		if !strings.Contains(cfg.Styles[i].CSS, "%fontsize%") {
			t.Errorf("Styles[%d].CSS = %q, expected live font size token", i, cfg.Styles[i].CSS)
		}
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeConfig(t, `version: 1
reader:
  font_size: 14.5
  line_height: 1.5
  text_align: left
units:
  font_size: px
selection:
  class_policy: all
styles:
  - name: indent
    css: "text-indent:1.5em;margin:0;padding:0;"
  - name: left-align
    css: "text-align:left;"
store:
  backend: database
  database: `+filepath.Join(tmpDir, "db", "tweaks.db")+`
logging:
  console:
    level: debug
  file:
    level: none
reporting:
  destination: `+filepath.Join(tmpDir, "report.zip")+`
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Reader.FontSize != 14.5 {
		t.Errorf("FontSize = %v, want 14.5", cfg.Reader.FontSize)
	}
	if cfg.Reader.TextAlign != common.TextAlignLeft {
		t.Errorf("TextAlign = %v, want left", cfg.Reader.TextAlign)
	}
	if cfg.Units.FontSize != "px" {
		t.Errorf("Units.FontSize = %q, want px", cfg.Units.FontSize)
	}
	if cfg.Units.LineHeight != "em" {
		t.Errorf("Units.LineHeight = %q, default em expected", cfg.Units.LineHeight)
	}
	if cfg.Selection.ClassPolicy != common.ClassPolicyAll {
		t.Errorf("ClassPolicy = %v, want all", cfg.Selection.ClassPolicy)
	}
	if cfg.Store.Backend != common.StoreBackendDatabase {
		t.Errorf("Backend = %v, want database", cfg.Store.Backend)
	}

	// styles from file replace default catalog
	if len(cfg.Styles) != 2 {
		t.Fatalf("Styles length = %d, want 2", len(cfg.Styles))
	}
	if cfg.Styles[0].Name != "indent" || cfg.Styles[1].CSS != "text-align:left;" {
		t.Errorf("unexpected styles: %+v", cfg.Styles)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `version: 1
reader:
  font_size: 12
  invalid indent
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	path := writeConfig(t, `version: 1
unknown_field: value
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid version", "version: 2\n"},
		{"zero font size", "version: 1\nreader:\n  font_size: 0\n"},
		{"negative line height", "version: 1\nreader:\n  line_height: -1\n"},
		{"bad text align", "version: 1\nreader:\n  text_align: sideways\n"},
		{"bad unit", "version: 1\nunits:\n  font_size: furlong\n"},
		{"bad class policy", "version: 1\nselection:\n  class_policy: some\n"},
		{"style without name", "version: 1\nstyles:\n  - css: \"margin:0;\"\n"},
		{"duplicate style names", "version: 1\nstyles:\n  - name: a\n    css: \"margin:0;\"\n  - name: a\n    css: \"padding:0;\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfiguration(path); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}

	cfg := &Config{}
	if _, err = unmarshalConfig(data, cfg, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}

	// declarations must survive template expansion untouched
	if !strings.Contains(string(data), "text-align:%textalign%;") {
		t.Error("Prepared config lost style declarations")
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{"version: 1", "text_align: justify", "class_policy: first", "backend: file", "name: Main paragraph"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() output missing %q:\n%s", want, out)
		}
	}

	// what was dumped must load back
	path := writeConfig(t, out)
	back, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration(dumped) error = %v", err)
	}
	if len(back.Styles) != len(cfg.Styles) {
		t.Errorf("Styles after reload = %d, want %d", len(back.Styles), len(cfg.Styles))
	}
}
