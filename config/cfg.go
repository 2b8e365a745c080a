package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"csstweak/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// ReaderConfig holds static (default) values of reader settings which
	// style declarations may refer to with upper case tokens.
	ReaderConfig struct {
		FontSize   float64          `yaml:"font_size" validate:"gt=0"`
		LineHeight float64          `yaml:"line_height" validate:"gt=0"`
		TextAlign  common.TextAlign `yaml:"text_align"`
	}

	// UnitsConfig is the unit table used when numeric settings are rendered
	// into CSS.
	UnitsConfig struct {
		FontSize   string `yaml:"font_size" validate:"oneof=pt px em rem"`
		LineHeight string `yaml:"line_height" validate:"oneof=em rem pt px %"`
	}

	SelectionConfig struct {
		ClassPolicy common.ClassPolicy `yaml:"class_policy"`
	}

	StyleConfig struct {
		Name string `yaml:"name" validate:"required"`
		CSS  string `yaml:"css"`
	}

	StoreConfig struct {
		Backend   common.StoreBackend `yaml:"backend"`
		Directory string              `yaml:"directory" sanitize:"path_clean" validate:"required_if=Backend 0"`
		Database  string              `yaml:"database" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required_if=Backend 1"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Reader    ReaderConfig    `yaml:"reader"`
		Units     UnitsConfig     `yaml:"units"`
		Selection SelectionConfig `yaml:"selection"`
		Styles    []StyleConfig   `yaml:"styles" validate:"unique=Name,dive"`
		Store     StoreConfig     `yaml:"store"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

// NOTE: must match yaml field name above, style declarations are raw CSS
// text and should never go through template expansion.
const StyleCSSFieldName = "css"

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(StyleCSSFieldName),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
//
// When the file defines styles they replace default catalog completely, the
// list is never merged entry by entry.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
