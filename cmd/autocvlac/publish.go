package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/restrepo/autocvlac/internal/ledger"
	"github.com/restrepo/autocvlac/internal/pipeline"
	"github.com/restrepo/autocvlac/internal/session"
	"github.com/restrepo/autocvlac/pkg/types"
)

var publishCmd = &cobra.Command{
	Use:   "publish <cod-rh>",
	Short: "Submit every missing journal article to CvLAC",
	Long: `Publish runs the full pipeline: fetch the researcher's products from
ImpactU, keep the eligible journal articles, authenticate a browser session
against CvLAC, and fill the article form once per missing record. Articles
already submitted in a previous run are skipped via the local ledger.

Submission is sequential with a pause between articles. Articles whose
journal could not be linked are committed anyway and reported for manual
follow-up.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	addCredentialFlags(publishCmd)
	addBrowserFlags(publishCmd)
	publishCmd.Flags().Int("year", 0, "anchor year for the five-year window (default: current year)")
	publishCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	publishCmd.Flags().Duration("delay", 0, "pause between consecutive submissions (default 1s)")
	publishCmd.Flags().String("data-dir", "", "directory for the submission ledger (default .autocvlac)")
	publishCmd.Flags().Bool("verbose", false, "log per-stage progress")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viper.GetDuration("submit_delay")
	}
	cfg := types.PipelineConfig{
		Source:        sourceConfig(cmd),
		Registry:      registryConfig(cmd),
		ReferenceYear: referenceYear(cmd),
		SubmitDelay:   delay,
	}

	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("ledger.data_dir")
	}
	led, err := ledger.Open(dataDir)
	if err != nil {
		return fmt.Errorf("opening submission ledger: %w", err)
	}
	defer led.Close()

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(logrus.InfoLevel)
	}

	factory, cleanup, err := browserFactory(cmd, &cfg.Registry)
	if err != nil {
		return err
	}
	defer cleanup()

	sess, res := session.Authenticate(cmd.Context(), factory, credentialsFrom(cmd), cfg.Registry)
	if !res.OK() {
		return fmt.Errorf("login failed: %s", res.Message)
	}
	defer sess.Close()
	fmt.Fprintln(os.Stderr, "Authenticated; starting submission batch")

	start := time.Now()
	result, err := pipeline.New(cfg, led, log).Run(cmd.Context(), sess, args[0], os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d article(s) failed submission", result.Failed)
	}
	fmt.Fprintf(os.Stderr, "Done in %s\n", time.Since(start).Round(time.Second))
	return nil
}
