package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spboyer/comborank/internal/cache"
	"github.com/spboyer/comborank/internal/dataset"
	"github.com/spboyer/comborank/internal/export"
	"github.com/spboyer/comborank/internal/models"
	"github.com/spboyer/comborank/internal/orchestration"
	"github.com/spboyer/comborank/internal/projectconfig"
	"github.com/spboyer/comborank/internal/reporting"
	"github.com/spboyer/comborank/internal/spinner"
	"github.com/spboyer/comborank/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// newUploader builds the blob uploader used by --upload. Tests replace it.
var newUploader = func(accountURL, container string) (export.Uploader, error) {
	return export.NewBlobUploader(accountURL, container)
}

type rankOptions struct {
	variantsPath string
	roundsPath   string
	k            int
	totalNumbers int
	outputCount  int
	weights      map[string]string
	workers      int
	outputPath   string
	format       string
	interpret    bool
	interactive  bool
	upload       bool
	enableCache  bool
	disableCache bool
	cacheDir     string
}

func newRankCommand() *cobra.Command {
	opts := &rankOptions{}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Score and rank variants against past rounds",
		Long: `Score every variant against the winning rounds and keep the best ones.

Variants are read one per line as "ID, n1 n2 n3 ...". Rounds are read one per
line as comma-separated numbers. Files ending in .gz or .zst are
decompressed transparently and "-" reads stdin.

The ranked variants are written to stdout (or --output) in the same
"ID, n1 n2 ..." format by default. A short results summary is printed to
stderr.

Settings come from built-in defaults, then .comborank.yaml, then the
interactive form (--interactive), then command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rankCommandE(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.variantsPath, "variants", "", "Variants file (ID, n1 n2 ...)")
	cmd.Flags().StringVar(&opts.roundsPath, "rounds", "", "Winning rounds file (n1 n2 ...)")
	cmd.Flags().IntVarP(&opts.k, "numbers-per-combo", "k", models.DefaultNumbersPerCombo, "Numbers per variant")
	cmd.Flags().IntVar(&opts.totalNumbers, "total-numbers", models.DefaultTotalNumbers, "Size of the number pool")
	cmd.Flags().IntVarP(&opts.outputCount, "count", "n", models.DefaultOutputCount, "Number of top variants to keep")
	cmd.Flags().StringToStringVar(&opts.weights, "weights", nil,
		"Score weights in percent, e.g. frequency=45,match_complete=33,match_partial=12,distribution=10")
	cmd.Flags().IntVar(&opts.workers, "workers", projectconfig.DefaultWorkers, "Number of concurrent scoring workers")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Write ranked variants to a file instead of stdout (.gz/.zst compress)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", projectconfig.DefaultOutputFormat, "Output format: text, json, yaml, markdown, html")
	cmd.Flags().BoolVar(&opts.interpret, "interpret", false, "Print a plain-language interpretation of the results")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Edit the run settings in an interactive form")
	cmd.Flags().BoolVar(&opts.upload, "upload", false, "Upload the results to the Azure Blob container configured in .comborank.yaml")
	cmd.Flags().BoolVar(&opts.enableCache, "cache", false, "Enable result caching")
	cmd.Flags().BoolVar(&opts.disableCache, "no-cache", false, "Disable result caching")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", projectconfig.DefaultCacheDir, "Cache directory for storing results")

	return cmd
}

func rankCommandE(cmd *cobra.Command, opts *rankOptions) error {
	pc, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}

	cfg := pc.RunConfig()
	if opts.interactive {
		cfg, err = wizard.RunConfigWizard(cmd.InOrStdin(), cmd.ErrOrStderr(), cfg)
		if err != nil {
			return fmt.Errorf("wizard failed: %w", err)
		}
	}
	if cfg, err = applyRankFlags(cmd, opts, cfg); err != nil {
		return err
	}

	format, err := resolveFormat(cmd, opts, pc)
	if err != nil {
		return err
	}

	var in orchestration.Input
	in.Config = cfg
	if opts.variantsPath != "" {
		if in.Variants, err = dataset.LoadVariants(opts.variantsPath); err != nil {
			return err
		}
	}
	if opts.roundsPath != "" {
		if in.Rounds, err = dataset.LoadRounds(opts.roundsPath); err != nil {
			return err
		}
	}

	var runnerOpts []orchestration.RunnerOption
	if c := resolveCache(cmd, opts, pc); c != nil {
		runnerOpts = append(runnerOpts, orchestration.WithCache(c))
	}
	runner := orchestration.NewRunner(runnerOpts...)

	if isTerminal(cmd.ErrOrStderr()) {
		spin := spinner.Start(cmd.ErrOrStderr(), "Scoring variants...")
		defer spin.Stop()
		runner.OnProgress(func(ev orchestration.ProgressEvent) {
			switch ev.EventType {
			case orchestration.EventRankProgress:
				spin.Update(fmt.Sprintf("Scoring variants... %d/%d", ev.Scored, ev.Total))
			case orchestration.EventRankComplete, orchestration.EventRankCached:
				spin.Stop()
			}
		})
	}

	outcome, err := runner.Run(cmd.Context(), in)
	if err != nil {
		return err
	}

	outputPath := opts.outputPath
	if !cmd.Flags().Changed("output") && pc.Output.Path != "" {
		outputPath = pc.Output.Path
	}
	if err := writeOutcome(cmd.OutOrStdout(), outputPath, outcome, format); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	reporting.WriteSummary(stderr, outcome)
	if opts.interpret || (!cmd.Flags().Changed("interpret") && pc.Output.Interpret != nil && *pc.Output.Interpret) {
		fmt.Fprint(stderr, reporting.FormatSummaryReport(outcome)) //nolint:errcheck
	}

	if opts.upload {
		return uploadOutcome(cmd, pc.Upload, outcome)
	}
	return nil
}

// applyRankFlags overlays explicitly set flags on cfg and validates it.
func applyRankFlags(cmd *cobra.Command, opts *rankOptions, cfg models.RunConfig) (models.RunConfig, error) {
	flags := cmd.Flags()
	if flags.Changed("numbers-per-combo") {
		cfg.NumbersPerCombo = opts.k
	}
	if flags.Changed("total-numbers") {
		cfg.TotalNumbers = opts.totalNumbers
	}
	if flags.Changed("count") {
		cfg.OutputCount = opts.outputCount
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("weights") {
		w, err := models.DecodeWeights(opts.weights)
		if err != nil {
			return cfg, &InputError{Err: err}
		}
		cfg.Weights = w
	}
	return cfg, nil
}

func resolveFormat(cmd *cobra.Command, opts *rankOptions, pc *projectconfig.ProjectConfig) (reporting.Format, error) {
	name := opts.format
	if !cmd.Flags().Changed("format") && pc.Output.Format != "" {
		name = pc.Output.Format
	}
	f, err := reporting.ParseFormat(name)
	if err != nil {
		return "", &InputError{Err: err}
	}
	return f, nil
}

// resolveCache returns the result cache when caching is on, or nil.
// --no-cache wins over --cache and over the config file.
func resolveCache(cmd *cobra.Command, opts *rankOptions, pc *projectconfig.ProjectConfig) *cache.Cache {
	enabled := pc.Cache.Enabled != nil && *pc.Cache.Enabled
	if opts.enableCache {
		enabled = true
	}
	if opts.disableCache || !enabled {
		return nil
	}

	dir := opts.cacheDir
	if !cmd.Flags().Changed("cache-dir") && pc.Cache.Dir != "" {
		dir = pc.Cache.Dir
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	slog.Debug("result cache enabled", "dir", dir)
	return cache.New(dir)
}

// writeOutcome renders outcome to path, or to stdout when path is empty or
// "-".
func writeOutcome(stdout io.Writer, path string, outcome *models.RankOutcome, f reporting.Format) error {
	if path == "" || path == dataset.StdioPath {
		return reporting.Render(stdout, outcome, f)
	}

	w, err := dataset.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := reporting.Render(w, outcome, f); err != nil {
		w.Close() //nolint:errcheck
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	slog.Debug("wrote results", "path", path, "format", f)
	return nil
}

func uploadOutcome(cmd *cobra.Command, cfg projectconfig.UploadConfig, outcome *models.RankOutcome) error {
	if !cfg.Enabled() {
		return &InputError{Err: errors.New("--upload requires upload.account_url and upload.container in " + projectconfig.FileName)}
	}

	formats := make([]reporting.Format, 0, len(cfg.Formats))
	for _, name := range cfg.Formats {
		f, err := reporting.ParseFormat(name)
		if err != nil {
			return &InputError{Err: fmt.Errorf("upload.formats: %w", err)}
		}
		formats = append(formats, f)
	}

	uploader, err := newUploader(cfg.AccountURL, cfg.Container)
	if err != nil {
		return fmt.Errorf("creating uploader: %w", err)
	}

	names, err := export.Publish(cmd.Context(), uploader, outcome, formats, cfg.Prefix)
	for _, name := range names {
		fmt.Fprintf(cmd.ErrOrStderr(), "Uploaded %s\n", name) //nolint:errcheck
	}
	return err
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
