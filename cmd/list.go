package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kennyg/folio/internal/extension"
	"github.com/kennyg/folio/internal/template"
	"github.com/kennyg/folio/internal/ui"
)

var leafCmd = &cobra.Command{
	Use:     "leaf",
	Aliases: []string{"list", "ls", "contents"},
	Short:   "Leaf through the extension's contents",
	Long:    `Display the commands, template assets, and context file of the extension.`,
	Run:     runLeaf,
}

var (
	leafCommands  bool
	leafTemplates bool
	leafShort     bool
)

func init() {
	leafCmd.Flags().BoolVar(&leafCommands, "commands", false, "Show only commands")
	leafCmd.Flags().BoolVar(&leafTemplates, "templates", false, "Show only template assets")
	leafCmd.Flags().BoolVar(&leafShort, "short", false, "Truncate descriptions to one line")
}

func runLeaf(cmd *cobra.Command, args []string) {
	root, err := resolveRoot()
	if err != nil {
		exitWithError(err.Error())
	}

	ext, err := extension.Load(root)
	if err != nil {
		exitWithError(err.Error())
	}

	assets, err := template.Assets(ext.TemplatesDir())
	if err != nil {
		exitWithError(err.Error())
	}

	if ext.Commands.Len() == 0 && len(assets) == 0 {
		fmt.Print(ui.EmptyShelf())
		return
	}

	showAll := !leafCommands && !leafTemplates

	// Header
	fmt.Println()
	fmt.Println(ui.SectionHeader("Your Folio"))
	fmt.Println()
	fmt.Println(ui.Info.Render(fmt.Sprintf("  %s v%s", ext.Manifest.Name, ext.Manifest.Version)))
	fmt.Println()

	countStyle := lipgloss.NewStyle().Foreground(ui.Slate)
	nameStyle := lipgloss.NewStyle().Foreground(ui.White).Bold(true)

	// Commands
	if (showAll || leafCommands) && ext.Commands.Len() > 0 {
		fmt.Printf("  %s %s\n", ui.CmdBadge(), countStyle.Render(fmt.Sprintf("(%d)", ext.Commands.Len())))
		fmt.Println()

		descWidth := ui.DescriptionWidth()
		for _, def := range ext.Commands.All() {
			fmt.Printf("    %s %s\n", nameStyle.Render(def.Name), ui.Dim.Render(relTo(root, def.File)))

			if def.Description == "" {
				fmt.Printf("    %s\n", ui.Dim.Render("(no description)"))
			} else if leafShort {
				fmt.Printf("    %s\n", ui.Muted.Render(ui.Truncate(def.Description, descWidth)))
			} else {
				for _, line := range ui.WrapText(def.Description, descWidth) {
					fmt.Printf("    %s\n", ui.Muted.Render(line))
				}
			}
			fmt.Println()
		}
	}

	// Template assets
	if (showAll || leafTemplates) && len(assets) > 0 {
		fmt.Printf("  %s %s\n", ui.TemplateBadge(), countStyle.Render(fmt.Sprintf("(%d)", len(assets))))
		fmt.Println()

		for _, a := range assets {
			fmt.Printf("    %s\n", nameStyle.Render(a.Path))
			if len(a.Tokens) > 0 {
				var tokens []string
				for _, p := range a.Tokens {
					tokens = append(tokens, "["+p.Token+"]")
				}
				fmt.Printf("    %s\n", ui.Dim.Render("tokens: "+strings.Join(tokens, " ")))
			}
			fmt.Println()
		}
	}

	// Context file
	if showAll {
		fmt.Printf("  %s %s\n", ui.ContextBadge(), ext.Manifest.ContextFileName)
		fmt.Println()
	}

	footer := fmt.Sprintf("  %d command(s), %d template asset(s)", ext.Commands.Len(), len(assets))
	fmt.Println(countStyle.Render(footer))
	fmt.Println(ui.PageFooter())
}
