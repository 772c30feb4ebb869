package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/meetup/ecr-insights/internal/version"
	"github.com/meetup/ecr-insights/pkg/aws"
	"github.com/meetup/ecr-insights/pkg/formatter"
	"github.com/meetup/ecr-insights/pkg/logger"
	"github.com/meetup/ecr-insights/pkg/pricing"
	"github.com/meetup/ecr-insights/pkg/report"
	"github.com/meetup/ecr-insights/pkg/utils"
)

// options holds the parsed command line flags
type options struct {
	format        string
	cap           int
	region        string
	concurrency   int
	livePricing   bool
	humanReadable bool
	noHeaders     bool
	debug         bool
	showVersion   bool
}

// validate checks flag values before any network call is made
func (o options) validate() (formatter.Format, error) {
	format, err := formatter.ParseFormat(o.format)
	if err != nil {
		return "", err
	}
	if o.cap < 1 {
		return "", fmt.Errorf("--cap must be a positive integer, got %d", o.cap)
	}
	if o.concurrency < 1 {
		return "", fmt.Errorf("--concurrency must be a positive integer, got %d", o.concurrency)
	}
	return format, nil
}

// startScanSpinner creates and starts a spinner on stderr when it is a terminal
func startScanSpinner(stderr io.Writer, region string) *spinner.Spinner {
	f, ok := stderr.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil
	}

	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriterFile(f))
	s.Suffix = fmt.Sprintf(" Analyzing ECR repositories in %s ...", region)
	s.Start()
	return s
}

// spinnerProgress updates the spinner suffix from collector workers
func spinnerProgress(s *spinner.Spinner) report.ProgressFunc {
	return func(done, total int, repository string) {
		s.Lock()
		s.Suffix = fmt.Sprintf(" Analyzing ECR repositories ... %d/%d (%s)", done, total, repository)
		s.Unlock()
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "ecr-insights",
		Short: "Estimate the monthly storage cost of ECR repositories",
		Long: `ecr-insights lists every ECR repository in the current account and region,
estimates what its images cost to store each month and prints the result
as a table, largest latest image first.

Images pushed during the current calendar month are left out of the estimate.
The capped cost forecasts the bill if only the --cap most recent images were kept.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintln(stdout, version.Get())
				return nil
			}

			l := logger.GetLogger()
			l.ConfigureFromEnv()
			if opts.debug {
				l.SetLevel(log.DebugLevel)
			}

			return run(cmd.Context(), opts, stdout, stderr)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	flags.StringVarP(&opts.format, "format", "f", string(formatter.FormatTSV), "Output format (tsv, csv)")
	flags.IntVarP(&opts.cap, "cap", "c", report.DefaultCap, "Number of most recent images used for the capped cost")
	flags.StringVarP(&opts.region, "region", "r", "",
		fmt.Sprintf("AWS region to scan (default: SDK configuration, instance metadata, then %s)", utils.GetDefaultRegion()))
	flags.IntVar(&opts.concurrency, "concurrency", report.DefaultConcurrency, "Number of repositories scanned in parallel")
	flags.BoolVar(&opts.livePricing, "live-pricing", false, "Look up the storage price with the AWS Pricing API")
	flags.BoolVarP(&opts.humanReadable, "human-readable", "H", false, "Print sizes in IEC units")
	flags.BoolVar(&opts.noHeaders, "no-headers", false, "Do not print the header line")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return rootCmd
}

// run loads AWS clients for the selected region and prints the report
func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	format, err := opts.validate()
	if err != nil {
		return err
	}

	if opts.region != "" && !utils.IsValidRegion(opts.region) {
		logger.Warn("Region is not in the known region list, continuing anyway", "region", opts.region)
	}

	cfg, err := aws.LoadConfig(ctx, opts.region)
	if err != nil {
		return err
	}

	if logger.GetLogger().GetLevel() <= log.InfoLevel {
		if account, err := aws.AccountID(ctx, aws.NewSTSClient(cfg)); err != nil {
			logger.Warn("Could not determine AWS account", "error", err)
		} else {
			logger.Info("Scanning ECR", "account", account, "region", cfg.Region)
		}
	}

	model := pricing.DefaultModel()
	if opts.livePricing {
		price, source := pricing.GetECRStoragePriceWithSource(ctx, cfg.Region)
		model = pricing.NewModel(price, source)
	}

	registry := aws.NewECRClient(cfg)
	if err := generate(ctx, opts, format, registry, model, stdout, stderr); err != nil {
		return err
	}

	if opts.livePricing && opts.debug {
		return formatter.PrintPricingAPIStats(stderr)
	}
	return nil
}

// generate collects summaries from registry and writes the report. Nothing
// reaches stdout unless every repository was summarized.
func generate(ctx context.Context, opts options, format formatter.Format, registry report.Registry, model pricing.Model, stdout, stderr io.Writer) error {
	scanStartTime := time.Now()

	var s *spinner.Spinner
	if !opts.debug {
		s = startScanSpinner(stderr, regionOf(registry))
	}

	collector := report.NewCollector(registry)
	collector.Cap = opts.cap
	collector.Concurrency = opts.concurrency
	if s != nil {
		collector.Progress = spinnerProgress(s)
	}

	summaries, err := collector.Collect(ctx)
	if err != nil {
		if s != nil {
			s.FinalMSG = ""
			s.Stop()
		}
		return err
	}

	r := report.Build(summaries, model)

	if s != nil {
		var totalBytes int64
		for _, summary := range summaries {
			totalBytes += summary.AggregateImageSize
		}
		s.FinalMSG = formatter.ScanCompletedMessage(len(summaries), totalBytes, time.Since(scanStartTime))
		s.Stop()
	}
	logger.Debug("Report built", "repositories", len(r.Rows), "pricing", r.PricingSource, "price", model.PricePerGBMonth)

	return formatter.WriteReport(stdout, r, formatter.Options{
		Format:        format,
		HumanReadable: opts.humanReadable,
		NoHeaders:     opts.noHeaders,
	})
}

// regionOf returns the region of registry when it exposes one
func regionOf(registry report.Registry) string {
	if r, ok := registry.(interface{ Region() string }); ok {
		return r.Region()
	}
	return "the current region"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		logger.Error("ecr-insights failed", "error", err)
		stop()
		os.Exit(1)
	}
}
