package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"osv-diff/core/config"
	"osv-diff/core/httpclient"
	"osv-diff/core/logger"
	"osv-diff/core/storage"
	"osv-diff/feature/compare"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// compareCmd runs the server comparison for one mode and fetch type.
var compareCmd = &cobra.Command{
	Use:   "compare <mode> <fetchtype>",
	Short: "Compare old and new server answers for a list of keys",
	Long: `Reads {list-dir}/{mode}/{fetchtype}.txt and requests every key from the old and
the new server. Differences are logged as warnings; a connection failure or an
unreadable answer stops the run with exit status 1.

  mode:      id | package
  fetchtype: all | crates.io | DWF | Go | Linux | OSS-Fuzz | PyPI

Examples:
  # Compare Go advisories by id
  osv-diff compare id Go

  # Compare every package with debug output
  osv-diff compare package all --debug`,
	Args: validateCompareArgs,
	RunE: runCompare,
}

func init() {
	flags := compareCmd.Flags()
	flags.Bool("debug", false, "print debug message")
	flags.String("old", "", "base URL of the old server")
	flags.String("new", "", "base URL of the new server")
	flags.String("list-dir", "", "directory holding {mode}/{fetchtype}.txt lists")
	flags.String("list-bucket", "", "read lists from this object storage bucket instead")
	flags.Int("workers", 0, "number of concurrent comparisons (0 = host default)")

	RootCmd.AddCommand(compareCmd)
}

func validateCompareArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}
	if _, err := compare.ParseMode(args[0]); err != nil {
		return err
	}
	_, err := compare.ParseCategory(args[1])
	return err
}

func runCompare(cmd *cobra.Command, args []string) error {
	opts := compare.Options{Mode: compare.Mode(args[0]), Category: args[1]}
	opts.Debug, _ = cmd.Flags().GetBool("debug")

	v, err := config.NewViper(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	err = bindFlags(v, cmd, map[string]string{
		"old":         "endpoints.old",
		"new":         "endpoints.new",
		"list-dir":    "list.dir",
		"list-bucket": "list.bucket",
		"workers":     "worker.count",
	})
	if err != nil {
		return err
	}
	cfg, err := config.Unmarshal(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logg.Sync() }()
	logg = logg.With(zap.String("run_id", uuid.NewString()))

	source, err := newListSource(cfg)
	if err != nil {
		return err
	}

	fetcher := compare.NewHTTPFetcher(
		cfg.Endpoints,
		httpclient.New(cfg.HTTP, logg.With(zap.String("endpoint", "old"))),
		httpclient.New(cfg.HTTP, logg.With(zap.String("endpoint", "new"))),
	)
	runner := compare.NewRunner(opts, source, fetcher, compare.NewReporter(logg), cfg.Worker.Size())

	logg.Debug("Comparison configured",
		zap.String("old", cfg.Endpoints.Old),
		zap.String("new", cfg.Endpoints.New),
		zap.Int("workers", cfg.Worker.Size()),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runner.Run(ctx)
}

// newListSource picks the bucket when one is configured, the directory otherwise.
func newListSource(cfg *config.Config) (compare.ListSource, error) {
	if cfg.List.Bucket == "" {
		return compare.FileSource{Dir: cfg.List.Dir}, nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return compare.ObjectSource{Client: client, Bucket: cfg.List.Bucket}, nil
}
