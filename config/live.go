package config

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rupor-github/gencfg"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"csstweak/common"
)

// LiveSettings are reader settings which could change while document is open.
// Values absent from the file keep their defaults.
type LiveSettings struct {
	FontSize   *float64          `yaml:"font_size,omitempty" validate:"omitnil,gt=0"`
	LineHeight *float64          `yaml:"line_height,omitempty" validate:"omitnil,gt=0"`
	TextAlign  *common.TextAlign `yaml:"text_align,omitempty"`
}

// Over returns reader settings with live values superimposed on defaults.
func (l *LiveSettings) Over(defaults ReaderConfig) ReaderConfig {
	if l == nil {
		return defaults
	}
	res := defaults
	if l.FontSize != nil {
		res.FontSize = *l.FontSize
	}
	if l.LineHeight != nil {
		res.LineHeight = *l.LineHeight
	}
	if l.TextAlign != nil {
		res.TextAlign = *l.TextAlign
	}
	return res
}

// LoadLiveSettings reads live settings file. Empty file is valid and means
// all settings are at their defaults.
func LoadLiveSettings(path string) (*LiveSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read live settings: %w", err)
	}
	live := &LiveSettings{}
	if len(bytes.TrimSpace(data)) == 0 {
		return live, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(live); err != nil {
		return nil, fmt.Errorf("failed to decode live settings: %w", err)
	}
	if err := gencfg.Validate(live); err != nil {
		return nil, fmt.Errorf("invalid live settings: %w", err)
	}
	return live, nil
}

// WatchLiveSettings calls fn with freshly loaded settings every time the file
// is written or replaced, until ctx is done. Directory is watched rather than
// the file itself since editors often save by renaming. Unreadable versions
// of the file are logged and skipped.
func WatchLiveSettings(ctx context.Context, path string, log *zap.Logger, fn func(*LiveSettings)) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("live")

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("unable to resolve live settings path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("unable to watch %s: %w", filepath.Dir(abs), err)
	}
	log.Debug("Watching live settings", zap.String("file", abs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			live, err := LoadLiveSettings(abs)
			if err != nil {
				log.Warn("Ignoring live settings change", zap.Error(err))
				continue
			}
			fn(live)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("fsnotify watcher error", zap.Error(err))
		}
	}
}
