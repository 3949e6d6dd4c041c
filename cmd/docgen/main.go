// docgen generates legal documents by resolving placeholder variables
// in .docx templates against a client database, a response-bank
// workbook, and interactive operator prompts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisgosselin92/docgenautomation/internal/config"
	"github.com/chrisgosselin92/docgenautomation/internal/logging"
	"github.com/chrisgosselin92/docgenautomation/internal/store"
)

var (
	configPath string
	debugLogs  bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "docgen",
	Short: "Legal document generation from .docx templates",
	Long: `docgen fills .docx templates for a law practice.

Templates carry six placeholder families, each with its own delimiter
syntax and resolution source: stored client variables, dynamic
response-bank selections, opposing-counsel fields, per-document
prompts, grammar agreement words, and system/bracket variables.
Generation runs one (client, template) pair at a time, prompting the
operator for anything the database cannot answer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logging.Configure(logging.Options{
			Enabled: cfg.Logging.DebugMode || debugLogs,
			Dir:     cfg.Logging.Dir,
			Level:   cfg.Logging.Level,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// openStore opens the configured database. Callers own the Close.
func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.Paths.Database)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Paths.Database, err)
	}
	return st, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "docgen.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "enable debug file logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(attorneysCmd)
	rootCmd.AddCommand(variablesCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
