// Package main is the CLI entry point for dvaudit.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dvmontools/dvaudit/internal/config"
	"github.com/dvmontools/dvaudit/internal/orchestrator"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dvaudit",
		Short: "DeltaV workstation audit and compliance report generator",
		Long: `dvaudit collects local host inventory (hardware, disks, network,
installed software, hotfixes, services) and runs a fixed set of
compliance checks, then writes everything into one flat text report
in the working directory. One binary, one run, no agent.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringP("config", "c", "dvaudit.toml", "path to config file (optional)")
	rootCmd.Flags().StringP("output-dir", "o", "", "directory for the report file (default: configured dir)")
	rootCmd.Flags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	verbose, _ := cmd.Flags().GetBool("verbose")

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	orch := orchestrator.New(cfg, orchestrator.Options{
		OutputDir: outputDir,
		Version:   fmt.Sprintf("%s (%s)", version, commit),
	}, log)

	return orch.Run()
}
