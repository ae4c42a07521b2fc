package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kennyg/folio/internal/extension"
	"github.com/kennyg/folio/internal/logging"
	"github.com/kennyg/folio/internal/ui"
)

var (
	// Version is set at build time
	Version = "dev"
)

var (
	rootVerbose bool
	rootDir     string
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "AI Agent Extension Workshop",
	Long: ui.Logo() + `

  Your printshop for AI agent extensions.
  Draft, proof, imprint, and press prompt-command extensions.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.ParseLevel(os.Getenv("FOLIO_LOG"))
		if rootVerbose {
			level = logging.ParseLevel("debug")
		}
		logging.Init(logging.Config{Level: level, Pretty: ui.IsTTY})
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", "", "Extension root (default: walk up from the working directory)")

	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(proofCmd)
	rootCmd.AddCommand(leafCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(imprintCmd)
	rootCmd.AddCommand(pressCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("folio %s\n", Version)
	},
}

// exitWithError prints an error and exits
func exitWithError(msg string) {
	fmt.Fprintln(os.Stderr, ui.Error.Render("Error: "+msg))
	os.Exit(1)
}

// resolveRoot returns the extension root: the --root flag when given,
// otherwise the nearest ancestor of the working directory that holds a
// manifest.
func resolveRoot() (string, error) {
	if rootDir != "" {
		return rootDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return extension.FindRoot(cwd)
}
