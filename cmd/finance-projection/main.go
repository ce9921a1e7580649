package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/iwvelando/finance-projection/internal/config"
	"github.com/iwvelando/finance-projection/internal/logging"
	"github.com/iwvelando/finance-projection/internal/projection"
	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/output"
	"github.com/iwvelando/finance-projection/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := projection.GetProjections(ctx, logger, *conf)
	if err != nil {
		logger.Fatal("failed to compute projections",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, result := range results {
		for _, warning := range result.Warnings {
			logger.Warn("Projection warning: "+warning,
				zap.String("op", "main"),
				zap.String("scenario", result.Name),
				zap.String("runId", result.RunID),
			)
		}
	}

	if err := output.Write(os.Stdout, outputFormat, results); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
