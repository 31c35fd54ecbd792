package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/restrepo/autocvlac/internal/eligible"
	"github.com/restrepo/autocvlac/internal/report"
	"github.com/restrepo/autocvlac/internal/secrets"
	"github.com/restrepo/autocvlac/internal/source"
	"github.com/restrepo/autocvlac/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "autocvlac/0.1"
)

var productsCmd = &cobra.Command{
	Use:   "products <cod-rh>",
	Short: "List a researcher's ImpactU products with eligibility verdicts",
	Long: `Products fetches every research product registered for a CvLAC
researcher code (cod_rh) from the ImpactU API and classifies each one:
eligible journal articles versus records skipped with a reason (already in
CvLAC, not a journal article, outside the five-year window, no journal
identifier).`,
	Args: cobra.ExactArgs(1),
	RunE: runProducts,
}

func init() {
	productsCmd.Flags().Int("year", 0, "anchor year for the five-year window (default: current year)")
	productsCmd.Flags().Bool("json", false, "output verdicts as JSON")
	productsCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(productsCmd)
}

// sourceConfig assembles the ImpactU client settings from flags, config
// file, and secrets.
func sourceConfig(cmd *cobra.Command) types.SourceConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return types.SourceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		BaseURL:  viper.GetString("source.base_url"),
		PageSize: viper.GetInt("source.page_size"),
		Email:    secrets.Get(loadedSecrets, secrets.KeySourceEmail, viper.GetString("source.email")),
	}
}

func sourceClient(cmd *cobra.Command) *source.Client {
	return source.New(sourceConfig(cmd))
}

// referenceYear resolves the anchor year from the --year flag or config.
func referenceYear(cmd *cobra.Command) int {
	year, _ := cmd.Flags().GetInt("year")
	if year == 0 {
		year = viper.GetInt("reference_year")
	}
	if year == 0 {
		year = time.Now().Year()
	}
	return year
}

func runProducts(cmd *cobra.Command, args []string) error {
	products, err := sourceClient(cmd).AllProducts(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching products for %s: %w", args[0], err)
	}

	verdicts := eligible.ClassifyAll(products, referenceYear(cmd))

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return report.FormatJSON(verdicts, os.Stdout)
	}
	report.FormatTable(verdicts, os.Stdout)
	return nil
}
