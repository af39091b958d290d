package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insightdelivered/upi-statement-parser/internal/category"
	"github.com/insightdelivered/upi-statement-parser/internal/extractor"
	"github.com/insightdelivered/upi-statement-parser/internal/models"
	"github.com/insightdelivered/upi-statement-parser/internal/parser"
	"github.com/insightdelivered/upi-statement-parser/internal/writer"
)

type convertOptions struct {
	output   string
	format   string
	taxonomy string
	source   string
	debug    bool
	header   bool
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert [flags] <input.pdf> [input2.pdf ...]",
		Short: "Convert PhonePe statement PDFs to CSV, XLSX or JSON",
		Example: `  # CSV next to the input
  upi-statement-parser convert statement.pdf

  # Excel workbook with a summary sheet
  upi-statement-parser convert --format xlsx --output feb.xlsx statement.pdf

  # Custom taxonomy, per-line diagnostics in JSON
  upi-statement-parser convert --taxonomy taxonomy.yaml --format json --debug statement.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file path (defaults to the input name with the format's extension)")
	f.StringVarP(&opts.format, "format", "f", "csv", "output format: csv, xlsx or json")
	f.StringVar(&opts.taxonomy, "taxonomy", os.Getenv("TAXONOMY_FILE"), "category taxonomy YAML (defaults to the embedded taxonomy)")
	f.StringVar(&opts.source, "source", "phonepe", "statement source")
	f.BoolVar(&opts.debug, "debug", false, "record per-line parse diagnostics (json format only)")
	f.BoolVar(&opts.header, "header", true, "include metadata rows in CSV output")
	return cmd
}

func runConvert(cmd *cobra.Command, opts *convertOptions, inputs []string) error {
	format := strings.ToLower(opts.format)
	switch format {
	case "csv", "xlsx", "json":
	default:
		return fmt.Errorf("unknown format %q; supported: csv, xlsx, json", opts.format)
	}
	if opts.output != "" && len(inputs) > 1 {
		return fmt.Errorf("--output can only be used with a single input file")
	}

	source, err := parser.ParseSource(opts.source)
	if err != nil {
		return err
	}

	zl, err := newLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return err
	}
	defer zl.Sync()
	log := zl.Sugar()

	classifier, err := loadClassifier(opts.taxonomy)
	if err != nil {
		return err
	}

	for _, input := range inputs {
		outPath := opts.output
		if outPath == "" {
			outPath = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
		}
		res, err := convertFile(input, outPath, format, source, classifier, opts, log)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		printSummary(cmd, input, outPath, res)
	}
	return nil
}

func convertFile(input, outPath, format string, source models.SourceType, c *category.Classifier, opts *convertOptions, log *zap.SugaredLogger) (*models.ParseResult, error) {
	if !strings.EqualFold(filepath.Ext(input), ".pdf") {
		return nil, fmt.Errorf("expected .pdf file, got %q", filepath.Ext(input))
	}

	pages, err := extractor.ExtractFile(input)
	if err != nil {
		return nil, fmt.Errorf("PDF extraction failed: %w", err)
	}
	log.Debugw("extracted text", "file", input, "pages", len(pages))

	if _, err := parser.AutoDetect(pages); err != nil {
		log.Warnw("statement does not look like a PhonePe export, parsing anyway", "file", input)
	}

	var popts []parser.Option
	if opts.debug {
		popts = append(popts, parser.WithDebug())
	}
	p, err := parser.New(source, c, popts...)
	if err != nil {
		return nil, err
	}

	res, err := p.ParsePages(pages)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	if len(res.Transactions) == 0 {
		log.Warnw("no transactions found", "file", input, "lines", res.LineCount)
	}

	if err := writeResult(outPath, format, res, opts.header); err != nil {
		return nil, err
	}
	return res, nil
}

func writeResult(path, format string, res *models.ParseResult, header bool) error {
	switch format {
	case "xlsx":
		return (&writer.XLSXWriter{}).WriteToFile(path, res)
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return os.WriteFile(path, data, 0o644)
	default:
		return (&writer.CSVWriter{IncludeHeader: header}).WriteToFile(path, res)
	}
}

func printSummary(cmd *cobra.Command, input, outPath string, res *models.ParseResult) {
	out := cmd.OutOrStdout()
	s := models.Summarize(res.Transactions)

	fmt.Fprintf(out, "Processed: %s\n", input)
	fmt.Fprintf(out, "  Lines scanned: %d\n", res.LineCount)
	fmt.Fprintf(out, "  Transactions:  %d\n", res.MatchedCount)
	fmt.Fprintf(out, "  Total debit:   %s\n", writer.FormatINR(s.TotalDebit))
	fmt.Fprintf(out, "  Total credit:  %s\n", writer.FormatINR(s.TotalCredit))
	for _, ct := range s.ByCategory {
		fmt.Fprintf(out, "    %-14s %s (%d)\n", ct.Category, writer.FormatINR(ct.Total), ct.Count)
	}
	fmt.Fprintf(out, "  Output: %s\n", outPath)
}
