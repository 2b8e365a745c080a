package action

import (
	"context"
	"errors"
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"csstweak/dom"
	"csstweak/state"
	"csstweak/tweak/ledger"
	"csstweak/tweak/selector"
)

// Styles lists style catalog.
func Styles(ctx context.Context, cmd *cli.Command) error {
	engine, err := state.EnvFromContext(ctx).Engine()
	if err != nil {
		return err
	}
	out := cmd.Root().Writer
	for _, s := range engine.Catalog.Styles() {
		fmt.Fprintf(out, "%s (%s)\n    %s\n", s.Name, s.Slug(), s.CSS)
	}
	return nil
}

// Chapters lists chapters of the document.
func Chapters(ctx context.Context, cmd *cli.Command) error {
	doc, err := document(cmd)
	if err != nil {
		return err
	}
	names, err := dom.Chapters(doc)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

// Propose shows targets for the selected element.
func Propose(ctx context.Context, cmd *cli.Command) error {
	doc, err := document(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(ctx, doc)
	if err != nil {
		return err
	}
	p, text, err := selection(ctx, cmd, s, doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "Text: %q\n", text)
	if p.Ambiguous {
		state.EnvFromContext(ctx).Log.Info("Selection is ambiguous, use --choice to pick target")
	}
	printCandidates(cmd, p)
	return nil
}

// Apply applies style to the selected element, or to the class given with
// --class.
func Apply(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	doc, err := document(cmd)
	if err != nil {
		return err
	}
	style := cmd.String("style")
	if len(style) == 0 {
		return errors.New("style has not been specified")
	}
	s, err := openSession(ctx, doc)
	if err != nil {
		return err
	}

	var msg string
	if class := cmd.String("class"); len(class) > 0 {
		// ".para" and "para" mean the same class
		class = strings.TrimPrefix(class, ".")
		msg, err = s.ApplyTo(ctx, selector.Selector{Kind: selector.ClassSelector, ClassName: class}, style)
	} else {
		var p selector.Proposal
		if p, _, err = selection(ctx, cmd, s, doc); err != nil {
			return err
		}
		if p.Ambiguous && !cmd.IsSet("choice") {
			env.Log.Warn("Selection is ambiguous, nothing applied, use --choice to pick target")
			printCandidates(cmd, p)
			return nil
		}
		msg, err = s.Apply(ctx, p, int(cmd.Int("choice")), style)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, msg)
	return nil
}

// Undo removes the last tweak, or all of them with --all.
func Undo(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	doc, err := document(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(ctx, doc)
	if err != nil {
		return err
	}

	if cmd.Bool("all") {
		n, err := s.UndoAll(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.Root().Writer, "%d tweaks removed\n", n)
		return nil
	}

	rec, err := s.UndoLast(ctx)
	if errors.Is(err, ledger.ErrEmptyLedger) {
		env.Log.Warn("Nothing to undo", zap.String("document", doc))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "%s { %s } removed\n", rec.Selector, rec.Declarations)
	return nil
}
