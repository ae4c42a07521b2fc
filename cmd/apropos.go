package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kennyg/folio/internal/apropos"
	"github.com/kennyg/folio/internal/extension"
	"github.com/kennyg/folio/internal/ui"
)

var (
	aproposJSON bool
)

var aproposCmd = &cobra.Command{
	Use:     "apropos <query>",
	Aliases: []string{"whatis"},
	Short:   "Find commands by keyword",
	Long: `Search the extension's commands by keyword or description.

Like Unix apropos, this helps you discover which command fits a task.
Searches command names, descriptions, and keywords extracted from the
prompts.

Examples:
  folio apropos review          # Find review-related commands
  folio apropos "git branch"    # Find commands touching git branches
  folio apropos --json status   # Output as JSON (for AI agents)`,
	Args: cobra.MinimumNArgs(1),
	Run:  runApropos,
}

var aproposRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the command index",
	Long:  `Force rebuild the apropos index, rescanning every command file.`,
	Run:   runAproposRebuild,
}

var aproposListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all indexed commands",
	Long:  `Show every command in the apropos index.`,
	Run:   runAproposList,
}

func init() {
	aproposCmd.Flags().BoolVar(&aproposJSON, "json", false, "Output as JSON (for AI agents)")
	aproposCmd.AddCommand(aproposRebuildCmd)
	aproposCmd.AddCommand(aproposListCmd)
	rootCmd.AddCommand(aproposCmd)
}

// JSONResult is the structured output for AI agents
type JSONResult struct {
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Results []JSONCommand `json:"results"`
}

// JSONCommand is one command in JSON output
type JSONCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Score       int    `json:"score"`
	Invoke      string `json:"invoke"`
}

func runApropos(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	ext, err := loadForApropos()
	if err != nil {
		if aproposJSON {
			outputJSONError(err.Error())
			return
		}
		exitWithError(err.Error())
	}

	index, err := getOrBuildIndexQuiet(ext.CommandsDir(), false, aproposJSON)
	if err != nil {
		if aproposJSON {
			outputJSONError(err.Error())
			return
		}
		exitWithError("Failed to load index: " + err.Error())
	}

	results := apropos.Search(index, query)

	// JSON output
	if aproposJSON {
		outputJSON(query, ext.Manifest.Name, results)
		return
	}

	// Human-readable output
	fmt.Println()
	fmt.Println(ui.SectionHeader("Apropos: " + query))
	fmt.Println()

	if index == nil || len(index.Commands) == 0 {
		fmt.Println(ui.WarningLine("No commands indexed"))
		fmt.Println()
		hint := lipgloss.NewStyle().Foreground(ui.Aquamarine).Render("commands/<name>.toml")
		fmt.Printf("  Add commands as %s first.\n", hint)
		fmt.Println(ui.PageFooter())
		return
	}

	if len(results) == 0 {
		fmt.Print(ui.NoResults(query))
		fmt.Println(ui.PageFooter())
		return
	}

	fmt.Println(ui.SuccessLine(fmt.Sprintf("Found %d matching command(s)", len(results))))
	fmt.Println()

	for _, result := range results {
		printCommandResult(result.Entry, ext.Manifest.Name)
	}

	fmt.Println(ui.PageFooter())
}

func outputJSON(query, prefix string, results []apropos.SearchResult) {
	out := JSONResult{
		Query:   query,
		Count:   len(results),
		Results: make([]JSONCommand, len(results)),
	}

	for i, r := range results {
		out.Results[i] = JSONCommand{
			Name:        r.Entry.Name,
			Description: r.Entry.Description,
			Score:       r.Score,
			Invoke:      fmt.Sprintf("/%s:%s", prefix, r.Entry.Name),
		}
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(data))
}

func outputJSONError(msg string) {
	out := map[string]string{"error": msg}
	data, _ := json.Marshal(out)
	fmt.Println(string(data))
}

func runAproposRebuild(cmd *cobra.Command, args []string) {
	fmt.Println()
	fmt.Println(ui.SectionHeader("Rebuilding Index"))
	fmt.Println()

	ext, err := loadForApropos()
	if err != nil {
		exitWithError(err.Error())
	}

	index, err := getOrBuildIndex(ext.CommandsDir(), true)
	if err != nil {
		exitWithError("Failed to rebuild index: " + err.Error())
	}

	fmt.Println(ui.SuccessLine(fmt.Sprintf("Indexed %d command(s)", len(index.Commands))))
	fmt.Println(ui.PageFooter())
}

func runAproposList(cmd *cobra.Command, args []string) {
	fmt.Println()
	fmt.Println(ui.SectionHeader("Indexed Commands"))
	fmt.Println()

	ext, err := loadForApropos()
	if err != nil {
		exitWithError(err.Error())
	}

	index, err := getOrBuildIndex(ext.CommandsDir(), false)
	if err != nil {
		exitWithError("Failed to load index: " + err.Error())
	}

	if index == nil || len(index.Commands) == 0 {
		fmt.Println(ui.WarningLine("No commands indexed"))
		fmt.Println(ui.PageFooter())
		return
	}

	fmt.Println(ui.InfoLine(fmt.Sprintf("%d command(s) indexed", len(index.Commands))))
	fmt.Println()

	for _, entry := range index.Commands {
		printCommandResult(entry, ext.Manifest.Name)
	}

	fmt.Println(ui.PageFooter())
}

func loadForApropos() (*extension.Extension, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, err
	}
	return extension.Load(root)
}

func getOrBuildIndex(commandsDir string, forceRebuild bool) (*apropos.Index, error) {
	return getOrBuildIndexQuiet(commandsDir, forceRebuild, false)
}

func getOrBuildIndexQuiet(commandsDir string, forceRebuild, quiet bool) (*apropos.Index, error) {
	if !forceRebuild {
		index, err := apropos.LoadIndex(commandsDir)
		if err != nil {
			return nil, err
		}

		if index != nil {
			stale, err := apropos.IsStale(commandsDir, index)
			if err == nil && !stale {
				return index, nil
			}
			if !quiet {
				fmt.Println(ui.InfoLine("Index stale, rebuilding..."))
			}
		} else {
			if !quiet {
				fmt.Println(ui.InfoLine("Building index..."))
			}
		}
	} else {
		if !quiet {
			fmt.Println(ui.InfoLine("Force rebuilding index..."))
		}
	}

	index, err := apropos.BuildIndex(commandsDir)
	if err != nil {
		return nil, err
	}

	if err := apropos.SaveIndex(commandsDir, index); err != nil {
		// Non-fatal, just warn
		if !quiet {
			fmt.Println(ui.WarningLine("Could not save index: " + err.Error()))
		}
	}

	return index, nil
}

func printCommandResult(entry apropos.Entry, prefix string) {
	name := lipgloss.NewStyle().Foreground(ui.White).Bold(true).Render(entry.Name)
	fmt.Printf("  %s  %s\n", ui.CmdBadge(), name)

	desc := entry.Description
	if desc == "" {
		desc = "(no description)"
	}
	descStyled := lipgloss.NewStyle().Foreground(ui.Gray).Render(ui.Truncate(desc, ui.DescriptionWidth()))
	fmt.Printf("       %s\n", descStyled)

	invoke := ui.Code.Render(fmt.Sprintf("/%s:%s", prefix, entry.Name))
	fmt.Printf("       %s\n", invoke)
	fmt.Println()
}
