package action

import (
	"context"
	"errors"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"csstweak/config"
	"csstweak/state"
	"csstweak/tweak"
)

// Build writes stylesheet for the document.
func Build(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	doc, err := document(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	live, err := liveSettings(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(ctx, doc)
	if err != nil {
		return err
	}
	return output(ctx, cmd, s, live)
}

func output(ctx context.Context, cmd *cli.Command, s *tweak.Session, live *config.LiveSettings) error {
	env := state.EnvFromContext(ctx)

	text := s.Build(live)
	if len(text) > 0 {
		text += "\n"
	}
	env.Rpt.StoreData("tweaks.css", []byte(text))

	dst := cmd.Args().Get(1)
	if err := writeOutput(cmd, dst, []byte(text)); err != nil {
		return err
	}
	env.Log.Debug("Stylesheet ready", zap.String("destination", dst), zap.Int("tweaks", s.Ledger().Len()))
	return nil
}

// Watch rebuilds stylesheet every time live settings file changes. Ledger is
// never modified.
func Watch(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	doc, err := document(cmd)
	if err != nil {
		return err
	}
	name := cmd.String("live")
	if len(name) == 0 {
		return errors.New("live settings file has not been specified")
	}
	live, err := config.LoadLiveSettings(name)
	if err != nil {
		return err
	}
	s, err := openSession(ctx, doc)
	if err != nil {
		return err
	}
	if err := output(ctx, cmd, s, live); err != nil {
		return err
	}

	env.Log.Info("Watching live settings, interrupt to stop", zap.String("file", name))
	return config.WatchLiveSettings(ctx, name, env.Log, func(live *config.LiveSettings) {
		if err := output(ctx, cmd, s, live); err != nil {
			env.Log.Error("Unable to rebuild stylesheet", zap.Error(err))
		}
	})
}
