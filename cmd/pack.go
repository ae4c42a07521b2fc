package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kennyg/folio/internal/archive"
	"github.com/kennyg/folio/internal/manifest"
	"github.com/kennyg/folio/internal/ui"
)

var pressCmd = &cobra.Command{
	Use:     "press [root]",
	Aliases: []string{"pack", "package", "archive"},
	Short:   "Press the extension into a release archive",
	Long: `Package the extension tree into a compressed tar archive.

Every regular file under the root goes in with its relative path and
permissions preserved, except paths under an excluded prefix. The
defaults exclude .git, .github, and dist; --exclude adds more, and
--exclude-glob filters by pattern. The archive never swallows itself.

Examples:
  folio press
  folio press -o build/review-kit.tar.gz
  folio press --exclude docs --exclude-glob '**/*.bak'
  folio press --listing dist/contents.json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPress,
}

var (
	pressOutput  string
	pressExclude []string
	pressGlobs   []string
	pressListing string
)

// pressDefaultExcludes are always left out of the artifact.
var pressDefaultExcludes = []string{".git", ".github", "dist"}

func init() {
	pressCmd.Flags().StringVarP(&pressOutput, "output", "o", "", "Archive path (default dist/<name>-<version>.tar.gz)")
	pressCmd.Flags().StringArrayVar(&pressExclude, "exclude", nil, "Path prefix to leave out, relative to the root (repeatable)")
	pressCmd.Flags().StringArrayVar(&pressGlobs, "exclude-glob", nil, "Glob pattern to leave out, e.g. '**/*.bak' (repeatable)")
	pressCmd.Flags().StringVar(&pressListing, "listing", "", "Also write a JSON listing of the archive contents")
}

func runPress(cmd *cobra.Command, args []string) {
	var root string
	var err error
	if len(args) == 1 {
		root = args[0]
		if info, statErr := os.Stat(root); statErr != nil || !info.IsDir() {
			exitWithError(fmt.Sprintf("%s is not a directory", root))
		}
	} else {
		root, err = resolveRoot()
		if err != nil {
			exitWithError(err.Error())
		}
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Pressing Extension"))
	fmt.Println()

	// The artifact is named from the manifest; a tree without a readable
	// manifest still presses under its directory name.
	output := pressOutput
	if output == "" {
		if m, mErr := manifest.Load(root); mErr == nil {
			output = filepath.Join(root, "dist", fmt.Sprintf("%s-%s.tar.gz", m.Name, m.Version))
		} else {
			abs, absErr := filepath.Abs(root)
			if absErr != nil {
				exitWithError(absErr.Error())
			}
			fmt.Println(ui.WarningLine("No readable manifest - naming the archive after the directory"))
			fmt.Println()
			output = filepath.Join(root, "dist", filepath.Base(abs)+".tar.gz")
		}
	}

	excludes := append(append([]string{}, pressDefaultExcludes...), pressExclude...)

	entries, err := archive.Write(archive.Options{
		Root:            root,
		Output:          output,
		ExcludePrefixes: excludes,
		ExcludeGlobs:    pressGlobs,
	})
	if err != nil {
		exitWithError(err.Error())
	}

	var total int64
	for _, e := range entries {
		fmt.Printf("  %s %s %s\n", ui.Success.Render("✓"), e.Path, ui.Dim.Render(formatSize(e.Size)))
		total += e.Size
	}

	if len(entries) == 0 {
		fmt.Println(ui.WarningLine("Nothing matched - the archive is empty"))
	}
	fmt.Println()

	sum, err := archive.HashFile(output)
	if err != nil {
		exitWithError((&archive.WriteError{Output: output, Err: err}).Error())
	}

	if pressListing != "" {
		listing := archive.NewListing(output, entries, sum)
		if err := listing.WriteFile(pressListing); err != nil {
			exitWithError(err.Error())
		}
		fmt.Println(ui.Muted.Render("  Listing written to " + pressListing))
		fmt.Println()
	}

	info, err := os.Stat(output)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println(ui.Info.Render("  Archive: " + output))
	fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d file(s), %s pressed down to %s", len(entries), formatSize(total), formatSize(info.Size()))))
	fmt.Println(ui.Dim.Render("  " + sum))
	fmt.Println()
	fmt.Println(ui.SuccessLine("Extension pressed successfully"))
	fmt.Println(ui.PageFooter())
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
