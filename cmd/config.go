package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the parameter settings shared by the vc subcommands. Values set
// on the command line win over the YAML file.
type Config struct {
	Seed        string `yaml:"seed"`
	Ciphersuite uint8  `yaml:"ciphersuite"`
	N           int    `yaml:"n"`
	Workers     int    `yaml:"workers"`
}

var Conf = Config{
	Seed:        "",
	Ciphersuite: 0,
	N:           16,
	Workers:     0,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&Conf.Seed, "seed", Conf.Seed, "seed for parameter generation (at least 32 bytes)")
	RootCmd.PersistentFlags().Uint8Var(&Conf.Ciphersuite, "ciphersuite", Conf.Ciphersuite, "ciphersuite ID")
	RootCmd.PersistentFlags().IntVarP(&Conf.N, "n", "n", Conf.N, "vector capacity")
	RootCmd.PersistentFlags().IntVar(&Conf.Workers, "workers", Conf.Workers, "worker goroutines, 0 for one per CPU")
}

func loadConfig(cmd *cobra.Command) error {
	if ConfigFile == "" {
		return nil
	}
	raw, err := os.ReadFile(ConfigFile)
	if err != nil {
		return fmt.Errorf("os.ReadFile::%w", err)
	}
	var fileConf Config
	if err := yaml.Unmarshal(raw, &fileConf); err != nil {
		return fmt.Errorf("yaml.Unmarshal::%w", err)
	}
	flags := cmd.Flags()
	if !flags.Changed("seed") {
		Conf.Seed = fileConf.Seed
	}
	if !flags.Changed("ciphersuite") {
		Conf.Ciphersuite = fileConf.Ciphersuite
	}
	if !flags.Changed("n") && fileConf.N != 0 {
		Conf.N = fileConf.N
	}
	if !flags.Changed("workers") {
		Conf.Workers = fileConf.Workers
	}
	return nil
}
