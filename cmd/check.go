package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kennyg/folio/internal/command"
	"github.com/kennyg/folio/internal/extension"
	"github.com/kennyg/folio/internal/manifest"
	"github.com/kennyg/folio/internal/template"
	"github.com/kennyg/folio/internal/ui"
)

var proofCmd = &cobra.Command{
	Use:     "proof",
	Aliases: []string{"check", "validate", "lint"},
	Short:   "Proof the extension for errors",
	Long: `Scan and validate the whole extension.

Checks:
  - folio.json parses and its context file exists
  - every command file parses and carries a non-empty prompt
  - no two command files derive the same name
  - template assets scan cleanly; with --values/--set the given
    substitutions are preflighted against every placeholder token

Examples:
  folio proof
  folio proof --json
  folio check --values press/values.yaml --set TEAM_NAME=docs`,
	Run: runProof,
}

var (
	proofJSON   bool
	proofValues string
	proofSets   []string
)

func init() {
	proofCmd.Flags().BoolVar(&proofJSON, "json", false, "Output as JSON")
	proofCmd.Flags().StringVar(&proofValues, "values", "", "YAML file of substitutions to preflight")
	proofCmd.Flags().StringArrayVar(&proofSets, "set", nil, "Substitution KEY=VALUE to preflight (repeatable)")
}

type proofReport struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Commands  int      `json:"commands"`
	Templates int      `json:"templates"`
	Warnings  []string `json:"warnings"`
	Errors    []string `json:"errors"`
}

func runProof(cmd *cobra.Command, args []string) {
	if !proofJSON {
		fmt.Println()
		fmt.Println(ui.SectionHeader("Proofing Extension"))
		fmt.Println()
	}

	root, err := resolveRoot()
	if err != nil {
		exitWithError(manifest.Filename + " not found - run 'folio draft' first")
	}

	// Load the manifest by hand rather than through manifest.Load: a
	// missing context file should be reported alongside the other
	// findings, not abort the proof.
	manifestPath := filepath.Join(root, manifest.Filename)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			exitWithError(manifest.Filename + " not found - run 'folio draft' first")
		}
		exitWithError(fmt.Sprintf("failed to read %s: %v", manifest.Filename, err))
	}

	m, err := manifest.Parse(data)
	if err != nil {
		var malformed *manifest.MalformedError
		if errors.As(err, &malformed) {
			malformed.Path = manifestPath
		}
		exitWithError(err.Error())
	}

	if !proofJSON {
		fmt.Println(ui.Info.Render(fmt.Sprintf("  Extension: %s v%s", m.Name, m.Version)))
		fmt.Println()
	}

	warnings := []string{}
	errs := []string{}

	// Context file
	ctxPath := filepath.Join(root, filepath.FromSlash(m.ContextFileName))
	if info, err := os.Stat(ctxPath); err != nil || info.IsDir() {
		errs = append(errs, (&manifest.MissingContextError{Manifest: manifestPath, ContextFile: m.ContextFileName}).Error())
	}

	// Commands: unlike the registry loader, keep going past the first bad
	// file so one proof run reports everything.
	type proofedCommand struct {
		name string
		ok   bool
	}
	var cmds []proofedCommand

	files, err := command.Files(filepath.Join(root, extension.CommandsDirName))
	if err != nil {
		errs = append(errs, fmt.Sprintf("failed to scan commands: %v", err))
	}

	seen := make(map[string]string)
	for _, f := range files {
		if existing, ok := seen[f.Name]; ok {
			errs = append(errs, (&command.DuplicateError{Name: f.Name, File: f.Path, Existing: existing}).Error())
			continue
		}
		seen[f.Name] = f.Path

		content, err := os.ReadFile(f.Path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("cannot read %s: %v", f.Path, err))
			continue
		}

		def, err := command.Parse(content, f.Name, f.Path)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}

		healthy := true
		if def.Description == "" {
			warnings = append(warnings, fmt.Sprintf("%s: missing description", relTo(root, f.Path)))
			healthy = false
		} else if strings.Contains(def.Description, "\n") {
			warnings = append(warnings, fmt.Sprintf("%s: description spans multiple lines", relTo(root, f.Path)))
			healthy = false
		}
		cmds = append(cmds, proofedCommand{name: f.Name, ok: healthy})
	}

	// Templates
	assets, err := template.Assets(filepath.Join(root, extension.TemplatesDirName))
	if err != nil {
		errs = append(errs, fmt.Sprintf("failed to scan templates: %v", err))
	}

	builtins := extension.BuiltinTokens(m, "preview")
	preflight := proofValues != "" || len(proofSets) > 0
	var subs map[string]string
	if preflight {
		subs, err = assembleSubstitutions(builtins, proofValues, proofSets)
		if err != nil {
			exitWithError(err.Error())
		}
	}

	for _, a := range assets {
		for _, p := range a.Tokens {
			if preflight {
				if _, ok := subs[p.Token]; !ok {
					errs = append(errs, (&template.UnresolvedError{Token: p.Token, File: p.File, Line: p.Line}).Error())
				}
				continue
			}
			if _, ok := builtins[p.Token]; !ok {
				warnings = append(warnings, fmt.Sprintf("%s: [%s] needs a value at imprint time", p.File, p.Token))
			}
		}
	}

	// Output
	if proofJSON {
		report := proofReport{
			Name:      m.Name,
			Version:   m.Version,
			Commands:  len(cmds),
			Templates: len(assets),
			Warnings:  warnings,
			Errors:    errs,
		}
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			exitWithError(fmt.Sprintf("failed to encode report: %v", err))
		}
		fmt.Println(string(out))
		if len(errs) > 0 {
			os.Exit(1)
		}
		return
	}

	// Display results
	if len(cmds) == 0 && len(assets) == 0 {
		fmt.Println(ui.WarningLine("Nothing to proof - no commands or templates found"))
	} else {
		fmt.Println(ui.Muted.Render("  Contents:"))
		if len(cmds) > 0 {
			fmt.Println(ui.Muted.Render(fmt.Sprintf("    %s %d command(s)", ui.CmdBadge(), len(cmds))))
		}
		if len(assets) > 0 {
			fmt.Println(ui.Muted.Render(fmt.Sprintf("    %s %d template(s)", ui.TemplateBadge(), len(assets))))
		}
		fmt.Println()

		for _, c := range cmds {
			status := ui.Success.Render("✓")
			if !c.ok {
				status = ui.Warning.Render("!")
			}
			fmt.Printf("  %s %s %s\n", status, ui.CmdBadge(), c.name)
		}
		for _, a := range assets {
			line := fmt.Sprintf("  %s %s %s", ui.Success.Render("✓"), ui.TemplateBadge(), a.Path)
			if len(a.Tokens) > 0 {
				var tokens []string
				for _, p := range a.Tokens {
					tokens = append(tokens, p.Token)
				}
				line += "  " + ui.Dim.Render("["+strings.Join(tokens, "] [")+"]")
			}
			fmt.Println(line)
		}
	}

	// Warnings
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Println(ui.WarningLine(fmt.Sprintf("%d warning(s)", len(warnings))))
		for _, w := range warnings {
			fmt.Println(ui.Muted.Render("    " + w))
		}
	}

	// Errors
	if len(errs) > 0 {
		fmt.Println()
		fmt.Println(ui.ErrorLine(fmt.Sprintf("%d error(s)", len(errs))))
		for _, e := range errs {
			fmt.Println(ui.Muted.Render("    " + e))
		}
	}

	// Summary
	fmt.Println()
	if len(errs) > 0 {
		fmt.Println(ui.ErrorLine("Proof failed"))
	} else if len(warnings) > 0 {
		fmt.Println(ui.SuccessLine(fmt.Sprintf("Proofed with %d warning(s)", len(warnings))))
	} else {
		fmt.Println(ui.SuccessLine("Extension proofed successfully"))
	}

	fmt.Println(ui.PageFooter())

	if len(errs) > 0 {
		os.Exit(1)
	}
}

func relTo(root, p string) string {
	if rel, err := filepath.Rel(root, p); err == nil {
		return filepath.ToSlash(rel)
	}
	return p
}
