package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kennyg/folio/internal/extension"
	"github.com/kennyg/folio/internal/template"
	"github.com/kennyg/folio/internal/ui"
)

var imprintCmd = &cobra.Command{
	Use:     "imprint [dest]",
	Aliases: []string{"apply", "stamp", "setup"},
	Short:   "Imprint template assets into a project",
	Long: `Copy the extension's template assets into a consumer project,
substituting bracketed placeholder tokens along the way.

Substitutions come from three places, lowest to highest precedence:
  built-ins           [PROJECT_NAME], [EXTENSION_NAME], [EXTENSION_VERSION]
  --values file.yaml  flat YAML mapping of TOKEN: value
  --set KEY=VALUE     explicit pairs, repeatable

What happens to files that already exist is always explicit:
  --existing skip       keep them and note each one (default)
  --existing overwrite  replace them with freshly rendered content

A token with no substitution aborts the imprint before anything is
written.

Examples:
  folio imprint ../my-project
  folio imprint ../my-project --set TEAM_NAME="Night Shift"
  folio imprint . --values client.yaml --existing overwrite`,
	Args: cobra.MaximumNArgs(1),
	Run:  runImprint,
}

var (
	imprintValues   string
	imprintSets     []string
	imprintExisting string
	imprintDry      bool
)

func init() {
	imprintCmd.Flags().StringVar(&imprintValues, "values", "", "YAML file of token substitutions")
	imprintCmd.Flags().StringArrayVar(&imprintSets, "set", nil, "Token substitution KEY=VALUE (repeatable)")
	imprintCmd.Flags().StringVar(&imprintExisting, "existing", string(template.PolicySkip), "Policy for existing files: skip or overwrite")
	imprintCmd.Flags().BoolVar(&imprintDry, "dry-run", false, "Show what would be written without writing")
}

func runImprint(cmd *cobra.Command, args []string) {
	dest := "."
	if len(args) == 1 {
		dest = args[0]
	}

	policy, err := template.ParsePolicy(imprintExisting)
	if err != nil {
		exitWithError(err.Error())
	}

	root, err := resolveRoot()
	if err != nil {
		exitWithError(err.Error())
	}

	ext, err := extension.Load(root)
	if err != nil {
		exitWithError(err.Error())
	}

	destAbs, err := filepath.Abs(dest)
	if err != nil {
		exitWithError(fmt.Sprintf("failed to resolve destination: %v", err))
	}

	builtins := extension.BuiltinTokens(ext.Manifest, filepath.Base(destAbs))
	subs, err := assembleSubstitutions(builtins, imprintValues, imprintSets)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.Title.Render(fmt.Sprintf("  Imprinting %s into %s...", ext.Manifest.Name, dest)))
	fmt.Println()

	report, err := template.Distribute(template.Options{
		Source:        ext.TemplatesDir(),
		Dest:          destAbs,
		Substitutions: subs,
		Policy:        policy,
		DryRun:        imprintDry,
	})
	if report == nil {
		exitWithError(err.Error())
	}

	for _, f := range report.Written {
		status := ui.Success.Render("✓ written")
		if imprintDry {
			status = ui.Info.Render("→ would write")
		}
		fmt.Printf("  %s %s %s\n", ui.TemplateBadge(), ui.Highlight.Render(f), status)
	}
	for _, f := range report.Skipped {
		fmt.Printf("  %s %s %s\n", ui.TemplateBadge(), ui.Highlight.Render(f), ui.Muted.Render("↷ exists, kept"))
	}

	if err != nil {
		for _, f := range report.Unwritten {
			fmt.Printf("  %s %s %s\n", ui.TemplateBadge(), ui.Highlight.Render(f), ui.Warning.Render("⚠ not written"))
		}
		fmt.Println()
		exitWithError(err.Error())
	}

	// Summary
	fmt.Println()
	fmt.Println(ui.Divider(50))
	fmt.Println()

	if imprintDry {
		fmt.Println(ui.Info.Render("  Dry run complete."))
	} else if len(report.Written) > 0 {
		fmt.Println(ui.Success.Render(fmt.Sprintf("  Imprinted %d file(s).", len(report.Written))))
	} else {
		fmt.Println(ui.Success.Render("  Nothing to imprint."))
	}

	if len(report.Skipped) > 0 {
		fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d file(s) already existed and were kept.", len(report.Skipped))))
	}
	fmt.Println()
}

// assembleSubstitutions merges the substitution sources, lowest to
// highest precedence: built-ins, the values file, then --set pairs.
func assembleSubstitutions(builtins map[string]string, valuesPath string, sets []string) (map[string]string, error) {
	subs := make(map[string]string, len(builtins))
	for k, v := range builtins {
		subs[k] = v
	}

	if valuesPath != "" {
		data, err := os.ReadFile(valuesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read values file: %w", err)
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse values file %s: %w", valuesPath, err)
		}
		for k, v := range raw {
			switch v.(type) {
			case nil:
				subs[k] = ""
			case string, int, int64, uint64, float64, bool:
				subs[k] = fmt.Sprint(v)
			default:
				return nil, fmt.Errorf("value for %s in %s is not a scalar", k, valuesPath)
			}
		}
	}

	for _, pair := range sets {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q (expected KEY=VALUE)", pair)
		}
		subs[key] = value
	}

	return subs, nil
}
