// Package cmd holds the command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insightdelivered/upi-statement-parser/internal/category"
	"github.com/insightdelivered/upi-statement-parser/internal/logger"
)

// Version is reported by --version and /api/health.
const Version = "1.2.0"

var logLevel string

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "upi-statement-parser",
		Short: "Extract UPI transactions from PhonePe PDF statements",
		Long: `Extracts transactions from PhonePe UPI statement PDFs, categorises each
payment by merchant and exports them as CSV, XLSX or JSON, or serves the
same parser over HTTP.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from LOG_LEVEL)")

	root.AddCommand(newConvertCmd(), newServeCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func newLogger(fallback string) (*zap.Logger, error) {
	level := logLevel
	if level == "" {
		level = fallback
	}
	return logger.New(level)
}

func loadClassifier(path string) (*category.Classifier, error) {
	t, err := category.LoadTaxonomy(path)
	if err != nil {
		return nil, err
	}
	return category.NewClassifier(t), nil
}
