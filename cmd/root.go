package cmd

import (
	"errors"
	"fmt"
	"os"

	"osv-diff/core/logger"
	"osv-diff/feature/compare"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "osv-diff",
	Short: "Compare two OSV servers",
	Long: `osv-diff queries an old and a new OSV server with the same ids or package
names and reports every structural difference between their JSON answers.
It is used to validate a new storage backend against the current one.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// The comparison logs its own failures; anything else is logged here.
		var abort *compare.AbortError
		if !errors.As(err, &abort) {
			reportCommandError(err)
		}
		os.Exit(1)
	}
}

func reportCommandError(err error) {
	cfg := &logger.Config{
		Level:  "info",
		Format: logger.FormatConsole,
	}

	l, logErr := logger.New(cfg)
	if logErr == nil {
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}

// bindFlags binds command flags onto configuration keys.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}
