package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

type configuration struct {
	OutputDir     string        `envconfig:"OUTPUT_DIR" default:"certificates"`
	Mode          string        `envconfig:"MODE" default:"both"`
	YieldInterval time.Duration `envconfig:"YIELD_INTERVAL" default:"100ms"`
	RecordTimeout time.Duration `envconfig:"RECORD_TIMEOUT" default:"0s"`
	OnError       string        `envconfig:"ON_ERROR" default:"abort"`
	RequireValues bool          `envconfig:"REQUIRE_VALUES" default:"false"`
	ValidatePDF   bool          `envconfig:"VALIDATE_PDF" default:"false"`

	QRField     string `envconfig:"QR_FIELD" default:"certificate_id"`
	QRBaseURL   string `envconfig:"QR_BASE_URL" default:""`
	FontRegular string `envconfig:"FONT_REGULAR" default:""`
	FontBold    string `envconfig:"FONT_BOLD" default:""`
	FontItalic  string `envconfig:"FONT_ITALIC" default:""`

	MQHost        string `envconfig:"MQ_HOST" default:""`
	MQPort        int    `envconfig:"MQ_PORT" default:"9093"`
	ProgressTopic string `envconfig:"PROGRESS_TOPIC" default:"certificate-progress"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

const (
	prefixCfg   = ""
	serviceName = "certgen"
)

func main() {
	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "service", serviceName)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	var cfg configuration
	if err := envconfig.Process(prefixCfg, &cfg); err != nil {
		level.Error(logger).Log("msg", "configuration", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, allowLevel(cfg.LogLevel))

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Generate personalized certificates from a spreadsheet and a docx template",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newGenerateCmd(&cfg, logger),
		newPlaceholdersCmd(logger),
		newSamplesCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		level.Error(logger).Log("msg", "command", "err", err)
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func allowLevel(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	}
	return level.AllowInfo()
}
