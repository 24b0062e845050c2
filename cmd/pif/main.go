// Command pif is the CLI entry point: it wires config, logging, the
// symbol table and saturation engine together and hands control to the
// REPL, following the same cobra root-command/PersistentFlags wiring
// style as codenerd's cmd/nerd/main.go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AloisRautureau/pif/internal/config"
	"github.com/AloisRautureau/pif/internal/obslog"
	"github.com/AloisRautureau/pif/internal/repl"
	"github.com/AloisRautureau/pif/internal/saturate"
	"github.com/AloisRautureau/pif/internal/symtab"
	"github.com/AloisRautureau/pif/internal/term"
)

var (
	configPath string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "pif [file]",
	Short: "Backward-driven saturation engine for first-order Horn clauses",
	Long: `pif decides whether a ground atomic query is derivable from a set of
definite clauses, in the style of ProVerif/Horn-clause crypto-protocol
analysis: clauses describe attacker capabilities and protocol steps, and
queries ask things like "can the attacker know secret?"

Run with an optional .pif file to load it before entering the REPL.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runREPL,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML tuning file (max_clauses, max_iterations, quiet)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress saturation progress logging")
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if quiet {
		cfg.Quiet = true
	}

	logger, err := obslog.New(cfg.Quiet)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	table := symtab.New()
	term.SetSymbolNamer(table.Namer())
	engine := saturate.New(table, logger, cfg)
	session := repl.New(engine, logger, os.Stdin, os.Stdout)

	if len(args) == 1 {
		if err := session.LoadFile(args[0], readFile); err != nil {
			return err
		}
	}

	return session.Run(readFile)
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
