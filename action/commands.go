package action

import (
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"

	"csstweak/common"
)

const documentHelp = `
DOCUMENT:
    path to either a standalone XHTML file or an EPUB archive, tweaks are
    kept per document content, renamed copies share them
`

func selectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "chapter", Aliases: []string{"ch"}, Usage: "`NAME` of the chapter inside archive, unique suffix is enough"},
		&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "selected element, either `PATH` (etree syntax) or #id"},
	}
}

func liveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "live", Usage: "read live reader settings from `FILE` (YAML)"},
		&cli.FloatFlag{Name: "font-size", Aliases: []string{"fs"}, Usage: "live font size"},
		&cli.FloatFlag{Name: "line-height", Aliases: []string{"lh"}, Usage: "live line height"},
		&cli.StringFlag{Name: "text-align", Aliases: []string{"ta"},
			Usage: "live text `ALIGNMENT` (supported: " + strings.Join(common.TextAlignNames(), ", ") + ")"},
	}
}

// Commands returns all document commands.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "styles",
			Usage:  "Lists available styles",
			Action: Styles,
		},
		{
			Name:               "chapters",
			Usage:              "Lists chapters of the document",
			Action:             Chapters,
			ArgsUsage:          "DOCUMENT",
			CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp,
		},
		{
			Name:               "propose",
			Usage:              "Shows possible targets for selected element",
			Action:             Propose,
			Flags:              selectionFlags(),
			ArgsUsage:          "DOCUMENT",
			CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp,
		},
		{
			Name:   "apply",
			Usage:  "Applies style to selected element",
			Action: Apply,
			Flags: append(selectionFlags(),
				&cli.StringFlag{Name: "style", Aliases: []string{"s"}, Usage: "style `NAME` (or its slug)"},
				&cli.IntFlag{Name: "choice", Usage: "target `INDEX` when selection is ambiguous"},
				&cli.StringFlag{Name: "class", Usage: "apply to class `NAME` directly, without selection"},
			),
			ArgsUsage:          "DOCUMENT",
			CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp,
		},
		{
			Name:   "undo",
			Usage:  "Removes the most recent tweak",
			Action: Undo,
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "all", Usage: "remove all tweaks"},
			},
			ArgsUsage:          "DOCUMENT",
			CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp,
		},
		{
			Name:      "build",
			Usage:     "Produces stylesheet with all tweaks",
			Action:    Build,
			Flags:     liveFlags(),
			ArgsUsage: "DOCUMENT [DESTINATION]",
			CustomHelpTemplate: fmt.Sprintf(`%s%s
DESTINATION:
    file name to write stylesheet to, if absent - STDOUT
`, cli.CommandHelpTemplate, documentHelp),
		},
		{
			Name:   "watch",
			Usage:  "Rebuilds stylesheet every time live settings change",
			Action: Watch,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "live", Usage: "watch live reader settings in `FILE` (YAML)"},
			},
			ArgsUsage: "DOCUMENT [DESTINATION]",
			CustomHelpTemplate: fmt.Sprintf(`%s%s
DESTINATION:
    file name to write stylesheet to, if absent - STDOUT
`, cli.CommandHelpTemplate, documentHelp),
		},
		{
			Name:   "inspect",
			Usage:  "Reports tweaks of the document",
			Action: Inspect,
			Flags: append(append(selectionFlags(), liveFlags()...),
				&cli.StringFlag{Name: "selector", Usage: "show only selectors matching `GLOB`"},
			),
			ArgsUsage: "DOCUMENT [DESTINATION]",
			CustomHelpTemplate: fmt.Sprintf(`%s%s
DESTINATION:
    file name to write report to, if absent - STDOUT
`, cli.CommandHelpTemplate, documentHelp),
		},
	}
}
