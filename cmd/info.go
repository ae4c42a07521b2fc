package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kennyg/folio/internal/extension"
	"github.com/kennyg/folio/internal/ui"
)

var studyCmd = &cobra.Command{
	Use:     "study <command>",
	Aliases: []string{"examine", "info"},
	Short:   "Study a command in detail",
	Long: `Examine one command of the extension.

Shows the source file, description, and the prompt that the hosting
runtime receives when the command is invoked.`,
	Args: cobra.ExactArgs(1),
	Run:  runStudy,
}

var studyFull bool

// studyPreviewLines caps the prompt preview without --full.
const studyPreviewLines = 12

func init() {
	studyCmd.Flags().BoolVar(&studyFull, "full", false, "Show the entire prompt")
}

func runStudy(cmd *cobra.Command, args []string) {
	name := args[0]

	root, err := resolveRoot()
	if err != nil {
		exitWithError(err.Error())
	}

	ext, err := extension.Load(root)
	if err != nil {
		exitWithError(err.Error())
	}

	def, ok := ext.Commands.Get(name)
	if !ok {
		exitWithError(fmt.Sprintf("command '%s' not found - run 'folio leaf' to see what's here", name))
	}

	fmt.Println(ui.Title.Render(def.Name))
	fmt.Println()
	fmt.Printf("%s %s\n", ui.CmdBadge(), ui.Muted.Render(relTo(root, def.File)))
	fmt.Println()

	if def.Description != "" {
		for _, line := range ui.WrapText(def.Description, ui.DescriptionWidth()) {
			fmt.Println(line)
		}
		fmt.Println()
	}

	lines := strings.Split(strings.TrimRight(def.Prompt, "\n"), "\n")

	fmt.Println(ui.Subtitle.Render("Prompt"))
	fmt.Println(ui.Divider(40))

	shown := lines
	if !studyFull && len(lines) > studyPreviewLines {
		shown = lines[:studyPreviewLines]
	}
	for _, line := range shown {
		fmt.Printf("  %s\n", ui.Dim.Render(line))
	}
	if len(shown) < len(lines) {
		fmt.Println()
		fmt.Println(ui.Muted.Render(fmt.Sprintf("  (%d more line(s) - use --full to see everything)", len(lines)-len(shown))))
	}
}
