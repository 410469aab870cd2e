package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/loan-prepay/internal/config"
	"github.com/iwvelando/loan-prepay/internal/logging"
	"github.com/iwvelando/loan-prepay/pkg/constants"
	"github.com/iwvelando/loan-prepay/pkg/output"
	"github.com/iwvelando/loan-prepay/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json, chart")
	locale := flag.String("locale", "", "locale override for pretty output, e.g. en-US or de")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	outputLocale := conf.Output.Locale
	if *locale != "" {
		outputLocale = *locale
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Build both schedules and merge them.
	result, err := conf.Loan.Compare(logger)
	if err != nil {
		logger.Fatal("failed to compute repayment schedules",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, notice := range result.WithPrepayment.Notices {
		logger.Info(notice.Message,
			zap.String("op", "main"),
			zap.String("notice", string(notice.Kind)),
			zap.Int("period", notice.Period),
		)
	}

	if err := output.Write(os.Stdout, outputFormat, outputLocale, result); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
