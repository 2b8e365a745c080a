package action

import (
	"bytes"
	"context"

	cli "github.com/urfave/cli/v3"

	"csstweak/state"
	"csstweak/tweak"
)

// Inspect shows everything known about document tweaks.
func Inspect(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	doc, err := document(cmd)
	if err != nil {
		return err
	}
	live, err := liveSettings(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(ctx, doc)
	if err != nil {
		return err
	}

	opts := tweak.InspectOptions{Filter: cmd.String("selector"), Live: live}
	if len(cmd.String("path")) > 0 {
		p, text, err := selection(ctx, cmd, s, doc)
		if err != nil {
			return err
		}
		opts.Selection = &tweak.SelectionReport{Path: cmd.String("path"), Text: text, Candidates: p.Candidates, Ambiguous: p.Ambiguous}
	}

	rpt, err := s.Inspect(doc, opts)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := rpt.Render(&buf); err != nil {
		return err
	}
	env.Rpt.StoreData("inspect.txt", buf.Bytes())
	env.Rpt.StoreData("session.txt", []byte(s.String()))
	return writeOutput(cmd, cmd.Args().Get(1), buf.Bytes())
}
