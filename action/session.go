// Package action implements program commands.
package action

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"csstweak/common"
	"csstweak/config"
	"csstweak/dom"
	"csstweak/state"
	"csstweak/tweak"
	"csstweak/tweak/selector"
	"csstweak/tweak/store"
)

// document returns absolute path of the document from the first argument.
func document(cmd *cli.Command) (string, error) {
	doc := cmd.Args().Get(0)
	if len(doc) == 0 {
		return "", errors.New("no document has been specified")
	}
	return filepath.Abs(doc)
}

// openSession opens tweak session for the document. Corrupted stored ledger
// is reported and replaced with empty one.
func openSession(ctx context.Context, doc string) (*tweak.Session, error) {
	env := state.EnvFromContext(ctx)

	engine, err := env.Engine()
	if err != nil {
		return nil, err
	}
	id, err := store.IdentifyFile(doc)
	if err != nil {
		return nil, err
	}
	s, err := engine.Open(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrCorruptStore) {
			return nil, err
		}
		env.Log.Warn("Stored tweaks are unreadable and will be ignored, next change keeps a copy aside and replaces them", zap.String("location", s.Location()), zap.Error(err))
	}
	if err := env.Rpt.StoreCopy("tweaks/"+id.String()+".yaml", s.Location()); err != nil {
		env.Log.Debug("Unable to store tweaks in the report", zap.Error(err))
	}
	env.Log.Debug("Document", zap.String("path", doc), zap.Stringer("id", id), zap.Int("tweaks", s.Ledger().Len()))
	return s, nil
}

// selection locates element given with --chapter and --path flags and
// proposes targets for it. Text of the element is returned for display.
func selection(ctx context.Context, cmd *cli.Command, s *tweak.Session, doc string) (selector.Proposal, string, error) {
	env := state.EnvFromContext(ctx)

	path := cmd.String("path")
	if len(path) == 0 {
		return selector.Proposal{}, "", errors.New("element path has not been specified")
	}
	ch, err := dom.Open(doc, cmd.String("chapter"), env.Log)
	if err != nil {
		return selector.Proposal{}, "", err
	}
	sc, text, err := ch.Context(path)
	if err != nil {
		return selector.Proposal{}, "", err
	}
	p, err := s.Propose(sc)
	return p, text, err
}

func printCandidates(cmd *cli.Command, p selector.Proposal) {
	out := cmd.Root().Writer
	for i, c := range p.Candidates {
		fmt.Fprintf(out, "[%d] %s\n", i, c)
	}
}

// liveSettings collects live settings from --live file and individual flags,
// flags win.
func liveSettings(cmd *cli.Command) (*config.LiveSettings, error) {
	live := &config.LiveSettings{}
	if name := cmd.String("live"); len(name) > 0 {
		var err error
		if live, err = config.LoadLiveSettings(name); err != nil {
			return nil, err
		}
	}
	if cmd.IsSet("font-size") {
		v := cmd.Float("font-size")
		if v <= 0 {
			return nil, fmt.Errorf("font size must be positive: %v", v)
		}
		live.FontSize = &v
	}
	if cmd.IsSet("line-height") {
		v := cmd.Float("line-height")
		if v <= 0 {
			return nil, fmt.Errorf("line height must be positive: %v", v)
		}
		live.LineHeight = &v
	}
	if cmd.IsSet("text-align") {
		v, err := common.ParseTextAlign(strings.ToLower(cmd.String("text-align")))
		if err != nil {
			return nil, err
		}
		live.TextAlign = &v
	}
	return live, nil
}

// writeOutput writes data to the named file, or to standard output when name
// is empty.
func writeOutput(cmd *cli.Command, name string, data []byte) error {
	if len(name) == 0 {
		_, err := cmd.Root().Writer.Write(data)
		return err
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write %s: %w", name, err)
	}
	return nil
}
