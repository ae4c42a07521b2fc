package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kennyg/folio/internal/manifest"
	"github.com/kennyg/folio/internal/scaffold"
	"github.com/kennyg/folio/internal/ui"
)

var draftCmd = &cobra.Command{
	Use:     "draft",
	Aliases: []string{"init", "create", "new"},
	Short:   "Draft a new extension workspace",
	Long: `Initialize a new extension workspace in the current directory.

Creates folio.json and the standard layout:
  folio.json   Extension manifest (name, version, context file)
  CONTEXT.md   Ambient context loaded by the hosting runtime
  commands/    Command definitions, one .toml file each
  templates/   Template assets imprinted into consumer projects

Examples:
  folio draft
  folio draft --name review-kit
  folio init --name review-kit --version 0.2.0`,
	Run: runDraft,
}

var (
	draftName    string
	draftVersion string
)

func init() {
	draftCmd.Flags().StringVarP(&draftName, "name", "n", "", "Extension name (defaults to directory name)")
	draftCmd.Flags().StringVar(&draftVersion, "version", "1.0.0", "Initial version")
}

func runDraft(cmd *cobra.Command, args []string) {
	dest := rootDir
	if dest == "" {
		dest = "."
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Drafting New Extension"))
	fmt.Println()

	// Refuse to clobber an existing workspace
	if _, err := os.Stat(filepath.Join(dest, manifest.Filename)); err == nil {
		exitWithError(manifest.Filename + " already exists in this directory")
	}

	name := draftName
	if name == "" {
		abs, err := filepath.Abs(dest)
		if err != nil {
			exitWithError(fmt.Sprintf("failed to resolve directory: %v", err))
		}
		name = filepath.Base(abs)
	}

	subs := map[string]string{
		"EXTENSION_NAME":    name,
		"EXTENSION_VERSION": draftVersion,
		"CONTEXT_FILE":      scaffold.ContextFileName,
	}

	created, err := scaffold.Write(dest, subs)
	if err != nil {
		exitWithError(fmt.Sprintf("failed to write scaffold: %v", err))
	}

	for _, path := range created {
		fmt.Println(ui.Muted.Render("  Created " + path))
	}

	fmt.Println()
	fmt.Println(ui.SuccessLine(fmt.Sprintf("Extension '%s' drafted", name)))
	fmt.Println()
	fmt.Println(ui.Muted.Render("  Next steps:"))
	fmt.Println(ui.Muted.Render("    1. Describe your extension in " + scaffold.ContextFileName))
	fmt.Println(ui.Muted.Render("    2. Add commands to commands/*.toml"))
	fmt.Println(ui.Muted.Render("    3. Add template assets to templates/"))
	fmt.Println(ui.Muted.Render("    4. Run 'folio proof' to validate"))
	fmt.Println(ui.PageFooter())
}
