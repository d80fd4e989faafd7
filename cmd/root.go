package cmd

import (
	"os"
	"time"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "pointproofs",
	Short: "CLI for pointproofs vector commitments and their verifier circuit",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogger(); err != nil {
			return err
		}
		return loadConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var (
	OutputDir  string
	ConfigFile string
	LogLevel   string
)

func init() {
	RootCmd.PersistentFlags().StringVar(&OutputDir, "out", "artifacts", "Output directory for storing artifacts")
	RootCmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "YAML file with seed, ciphersuite, n and workers")
	RootCmd.PersistentFlags().StringVar(&LogLevel, "log-level", "info", "debug, info, warn or error")

	RootCmd.CompletionOptions.DisableDefaultCmd = true
}

func setupLogger() error {
	level, err := zerolog.ParseLevel(LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	log.Logger = l
	logger.Set(l)
	return nil
}
