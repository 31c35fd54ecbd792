// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the autocvlac CLI: list and classify
// a researcher's ImpactU products, extract submission-ready article records,
// and push the missing ones through the CvLAC registry forms.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/restrepo/autocvlac/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the autocvlac CLI.
var rootCmd = &cobra.Command{
	Use:   "autocvlac",
	Short: "Automated CvLAC article submission from ImpactU records",
	Long: `autocvlac fetches a researcher's publication records from the ImpactU
API, classifies which journal articles are missing from their CvLAC profile,
and submits each one through the CvLAC web forms with a guided browser.

Each pipeline stage is a subcommand: products lists and classifies records,
extract writes submission-ready article files, login verifies registry
credentials, and publish runs the full submission batch.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./autocvlac.yaml or ~/.config/autocvlac/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("autocvlac")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "autocvlac"))
		}
	}

	viper.SetEnvPrefix("AUTOCVLAC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
