package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/restrepo/autocvlac/internal/eligible"
	"github.com/restrepo/autocvlac/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <cod-rh>",
	Short: "Write submission-ready article records for eligible products",
	Long: `Extract fetches and classifies a researcher's products, then maps each
eligible journal article onto the CvLAC form fields (type, title, language,
year, month, medium, website, DOI, journal identifier) and writes one YAML
file per article. The files are a reviewable snapshot of exactly what
publish would type into the registry.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Int("year", 0, "anchor year for the five-year window (default: current year)")
	extractCmd.Flags().String("out", "articles", "output directory for article YAML files")
	extractCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	client := sourceClient(cmd)
	products, err := client.AllProducts(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching products for %s: %w", args[0], err)
	}

	outDir, _ := cmd.Flags().GetString("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	written := 0
	for _, product := range eligible.Filter(products, referenceYear(cmd)) {
		art, ok := extract.Article(product)
		if !ok {
			continue
		}

		data, err := yaml.Marshal(art)
		if err != nil {
			return fmt.Errorf("marshaling article %s: %w", product.ID, err)
		}
		path := filepath.Join(outDir, product.ID+".yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("wrote %s (%s)\n", path, art.Title)
		written++
	}

	fmt.Printf("%d article(s) written to %s\n", written, outDir)
	return nil
}
