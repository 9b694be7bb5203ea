package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/geoirb/go-certgen/internal/docx"
	"github.com/geoirb/go-certgen/internal/generator"
	"github.com/geoirb/go-certgen/internal/generator/mq"
	"github.com/geoirb/go-certgen/internal/kafka"
	"github.com/geoirb/go-certgen/internal/parser"
	"github.com/geoirb/go-certgen/internal/path"
	"github.com/geoirb/go-certgen/internal/pdf"
	"github.com/geoirb/go-certgen/internal/placeholder"
	"github.com/geoirb/go-certgen/internal/qrcode"
	"github.com/geoirb/go-certgen/internal/raster"
	"github.com/geoirb/go-certgen/internal/response"
	"github.com/geoirb/go-certgen/internal/samples"
	"github.com/geoirb/go-certgen/internal/xlsx"
)

var errNotDocx = errors.New("template must be a .docx file")

func newGenerateCmd(cfg *configuration, logger log.Logger) *cobra.Command {
	var dataFile, templateFile string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one certificate per spreadsheet row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return generate(cmd.Context(), *cfg, dataFile, templateFile, cmd.OutOrStdout(), logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&dataFile, "data", "d", "", "spreadsheet with a header row (.xlsx or .xls)")
	flags.StringVarP(&templateFile, "template", "t", "", "docx template with {{field}} placeholders")
	flags.StringVarP(&cfg.Mode, "mode", "m", cfg.Mode, "output format: docx, pdf or both")
	flags.StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "output directory")
	flags.StringVar(&cfg.OnError, "on-error", cfg.OnError, "failed record policy: abort or skip")
	flags.DurationVar(&cfg.RecordTimeout, "timeout", cfg.RecordTimeout, "time limit of one record, 0 is unlimited")
	flags.DurationVar(&cfg.YieldInterval, "yield", cfg.YieldInterval, "pause between records")
	flags.BoolVar(&cfg.RequireValues, "require-values", cfg.RequireValues, "fail on placeholders missing in the record")
	flags.BoolVar(&cfg.ValidatePDF, "validate-pdf", cfg.ValidatePDF, "validate produced pdf files")
	flags.StringVar(&cfg.QRBaseURL, "qr-base-url", cfg.QRBaseURL, "prefix of the verification qr code content")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func generate(ctx context.Context, cfg configuration, dataFile, templateFile string, out io.Writer, logger log.Logger) error {
	mode, err := generator.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	policy, err := generator.ParsePolicy(cfg.OnError)
	if err != nil {
		return err
	}

	fileType, err := parser.New()
	if err != nil {
		return fmt.Errorf("parser init: %w", err)
	}
	if t, err := fileType.Type(templateFile); err != nil || t != parser.DOCX {
		return fmt.Errorf("%w: %s", errNotDocx, templateFile)
	}
	templater, err := newTemplater(cfg.RequireValues)
	if err != nil {
		return err
	}

	opts := raster.DefaultOptions()
	opts.QRField = cfg.QRField
	opts.QRBaseURL = cfg.QRBaseURL
	opts.FontRegular = cfg.FontRegular
	opts.FontBold = cfg.FontBold
	opts.FontItalic = cfg.FontItalic
	rasterizer, err := raster.NewRasterizer(opts, qrcode.NewCreator())
	if err != nil {
		return fmt.Errorf("rasterizer init: %w", err)
	}

	builder, err := path.NewBuilder(cfg.OutputDir, uuid.NewString)
	if err != nil {
		return err
	}

	observers := []generator.Observer{
		generator.NewWriterObserver(out),
		generator.NewLogObserver(logger),
	}
	if cfg.MQHost != "" {
		address := fmt.Sprintf("%s:%d", cfg.MQHost, cfg.MQPort)
		publisher, err := kafka.NewPublisher([]string{address})
		if err != nil {
			level.Error(logger).Log("msg", "kafka init", "address", address, "err", err)
			return err
		}
		defer publisher.Close()
		observers = append(observers, mq.NewPublishObserver(
			mq.NewProgressTransport(response.Build),
			publisher.NewPublish(cfg.ProgressTopic),
			logger,
		))
	}

	session := generator.NewSession(xlsx.NewFacade(fileType), templater, logger)

	data, err := os.ReadFile(dataFile)
	if err != nil {
		return err
	}
	count, err := session.LoadRecords(filepath.Base(dataFile), data)
	if err != nil {
		return fmt.Errorf("read records of %s: %w", dataFile, err)
	}
	fmt.Fprintf(out, "Loaded %d record(s) from %s\n", count, dataFile)

	template, err := os.ReadFile(templateFile)
	if err != nil {
		return err
	}
	names, err := session.LoadTemplate(filepath.Base(templateFile), template)
	if err != nil {
		fmt.Fprintf(out, "Warning: %v\n", err)
	}
	printPlaceholders(out, names)

	g := generator.NewGenerator(
		templater,
		rasterizer,
		pdf.NewComposer(cfg.ValidatePDF),
		builder,

		generator.SleepScheduler{Interval: cfg.YieldInterval},
		policy,
		cfg.RecordTimeout,

		uuid.NewString,
		logger,
		observers...,
	)
	_, err = g.Run(ctx, session, mode)
	if errors.Is(err, generator.ErrNoRecords) {
		fmt.Fprintf(out, "No records found in %s, nothing to generate\n", dataFile)
		return nil
	}
	return err
}

func newPlaceholdersCmd(logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "placeholders <template.docx>",
		Short: "Print placeholders of a docx template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			templater, err := newTemplater(false)
			if err != nil {
				return err
			}
			names, err := templater.Placeholders(template)
			if err != nil {
				level.Warn(logger).Log("msg", "scan placeholders", "file", args[0], "err", err)
			}
			printPlaceholders(cmd.OutOrStdout(), names)
			return nil
		},
	}
}

func newSamplesCmd() *cobra.Command {
	dir := "examples"
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Write sample students.xlsx and template.docx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := samples.Write(dir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Sample file created: %s\n", p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "out", "o", dir, "directory of sample files")
	return cmd
}

func newTemplater(valuesAreRequired bool) (*docx.Templater, error) {
	p, err := placeholder.New(valuesAreRequired)
	if err != nil {
		return nil, fmt.Errorf("placeholder init: %w", err)
	}
	templater, err := docx.NewTemplater(p)
	if err != nil {
		return nil, fmt.Errorf("templater init: %w", err)
	}
	return templater, nil
}

func printPlaceholders(out io.Writer, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(out, "No placeholders found")
		return
	}
	fmt.Fprintf(out, "Placeholders found: %s\n", strings.Join(names, ", "))
}
