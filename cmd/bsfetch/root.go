package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/bsfetch/internal/iobatch"
	"github.com/gnames/bsfetch/internal/ioconfig"
	"github.com/gnames/bsfetch/internal/ioeutils"
	"github.com/gnames/bsfetch/internal/iologger"
	"github.com/gnames/bsfetch/internal/iotsv"
	"github.com/gnames/bsfetch/pkg/config"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// previewLines is how many lines of the output table are echoed back
// after a successful run.
const previewLines = 3

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bsfetch <input_file> <output_file>",
		Short: "bsfetch retrieves BioSample metadata for NCBI accessions",
		Long: `bsfetch resolves NCBI accession numbers (assembly or nucleotide) to
their linked BioSample records via the Entrez E-utilities and writes the
sample attributes as a tab-delimited table.

The input file lists one accession per line; blank lines are ignored.
Each accession is resolved with esearch, cross-referenced to BioSample
with elink and retrieved with efetch. Transport failures are retried
with a fixed backoff; accessions without remote data are reported and
skipped. Output columns are the sorted union of all attribute names
that passed the allow-list.

Configuration precedence (highest to lowest):
  1. CLI flags (--db, --email, etc.)
  2. Environment variables (BSFETCH_*)
  3. Config file (bsfetch.yaml)
  4. Built-in defaults

Examples:
  bsfetch accessions.txt metadata.tsv
  bsfetch accessions.txt metadata.tsv --db nucleotide
  bsfetch accessions.txt metadata.tsv --email me@example.org --delay 1`,
		Version:           Version,
		Args:              cobra.ExactArgs(2),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./bsfetch.yaml or ~/.config/bsfetch/bsfetch.yaml)")

	rootCmd.Flags().String("db", "",
		"source database for accessions: assembly or nucleotide")
	rootCmd.Flags().String("email", "",
		"contact email sent to NCBI (required by NCBI policy)")
	rootCmd.Flags().String("api-key", "",
		"NCBI API key (raises the allowed request rate)")
	rootCmd.Flags().Float64("delay", 0,
		"delay between requests in seconds")
	rootCmd.Flags().Int("max-retries", 0,
		"attempts per accession on transport failures")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for bsfetch")

	return rootCmd
}

// bootstrap generates the default config on first run, loads
// configuration and initializes logging.
func bootstrap(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		exists, err := ioconfig.ConfigFileExists()
		if err == nil && !exists {
			path, err := ioconfig.GenerateDefaultConfig()
			if err != nil {
				// only warn, defaults still work
				gn.Warn("Could not generate config file: %v", err)
			} else {
				gn.Info("Generated default config at <em>%s</em>", path)
			}
		}
	}

	var err error
	cfg, err = ioconfig.Load(cfgFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// CLI flags take precedence over config file and env values.
	cfg.Update(flagOptions(cmd))

	if err = initLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return nil
}

// flagOptions converts explicitly set CLI flags to config options.
func flagOptions(cmd *cobra.Command) []config.Option {
	var opts []config.Option
	fl := cmd.Flags()

	if fl.Changed("db") {
		s, _ := fl.GetString("db")
		opts = append(opts, config.OptBatchDatabase(s))
	}
	if fl.Changed("email") {
		s, _ := fl.GetString("email")
		opts = append(opts, config.OptEntrezEmail(s))
	}
	if fl.Changed("api-key") {
		s, _ := fl.GetString("api-key")
		opts = append(opts, config.OptEntrezAPIKey(s))
	}
	if fl.Changed("delay") {
		f, _ := fl.GetFloat64("delay")
		opts = append(opts, config.OptBatchDelay(f))
	}
	if fl.Changed("max-retries") {
		i, _ := fl.GetInt("max-retries")
		opts = append(opts, config.OptBatchMaxRetries(i))
	}

	return opts
}

func initLogging(cfg *config.Config) error {
	logDir := ""
	if cfg.Log.Destination == "file" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		logDir = config.LogDir(homeDir)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, args []string) error {
	inputFile, outputFile := args[0], args[1]

	gn.Info("Fetching BioSample metadata from <em>%s</em> accessions",
		cfg.Batch.Database)
	gn.Info("Input file: <em>%s</em>", inputFile)
	gn.Info("Output file: <em>%s</em>", outputFile)
	gn.Info("Email: <em>%s</em>", cfg.Entrez.Email)

	accessions, err := readAccessions(inputFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Total accessions to process: <em>%s</em>",
		humanize.Comma(int64(len(accessions))))

	start := time.Now()
	client := ioeutils.New(cfg.Entrez)
	driver := iobatch.New(cfg, client)
	res := driver.Run(cmd.Context(), accessions)

	gn.Info("Total processed: <em>%s</em>",
		humanize.Comma(int64(res.Succeeded+res.Failed)))
	gn.Info("Successful: <em>%s</em>", humanize.Comma(int64(res.Succeeded)))
	gn.Info("Failed: <em>%s</em>", humanize.Comma(int64(res.Failed)))
	gn.Info("Elapsed: <em>%s</em>",
		gnfmt.TimeString(time.Since(start).Seconds()))

	if len(res.Samples) == 0 {
		gn.Info("No data retrieved. Output file not created.")
		return nil
	}

	rows, cols, err := iotsv.Write(res.Samples, outputFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Wrote <em>%d</em> samples with <em>%d</em> columns to <em>%s</em>",
		rows, cols, outputFile)

	lines, err := iotsv.Preview(outputFile, previewLines)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	fmt.Println("\nPreview of output:")
	for _, line := range lines {
		fmt.Println(line)
	}

	return nil
}
