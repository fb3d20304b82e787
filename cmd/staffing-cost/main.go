package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iwvelando/staffing-cost/internal/calculator"
	"github.com/iwvelando/staffing-cost/internal/config"
	"github.com/iwvelando/staffing-cost/internal/logging"
	"github.com/iwvelando/staffing-cost/internal/session"
	"github.com/iwvelando/staffing-cost/internal/store"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/output"
	"github.com/iwvelando/staffing-cost/pkg/validation"
	"go.uber.org/zap"
)

// editFlags collects repeated -set key=value arguments.
type editFlags map[string]string

func (e editFlags) String() string {
	pairs := make([]string, 0, len(e))
	for k, v := range e {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (e editFlags) Set(value string) error {
	key, raw, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	e[strings.TrimSpace(key)] = strings.TrimSpace(raw)
	return nil
}

func main() {
	edits := editFlags{}
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	applyReplacement := flag.Bool("apply-replacement", false, "replace the replacement percentage with the computed one")
	reset := flag.Bool("reset", false, "clear stored inputs and start from the configured defaults")
	flag.Var(edits, "set", "input edit as key=value, may be repeated")
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

	// CLI override takes precedence over config
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

	ctx := context.Background()
	st, err := store.Open(ctx, conf.Storage, logger)
	if err != nil {
		logger.Fatal("failed to open input store",
			zap.String("op", "main"),
			zap.String("driver", conf.Storage.Driver),
			zap.Error(err),
		)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close input store", zap.String("op", "main"), zap.Error(err))
		}
	}()

	sess := session.New(st, session.Options{
		Policies: conf.Policies(),
		Base:     conf.InitialSnapshot(),
		Logger:   logger,
	})

	result, err := sess.Restore(ctx)
	if err != nil {
		logger.Warn("failed to restore stored inputs",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *reset {
		if result, err = sess.Reset(ctx); err != nil {
			logger.Error("failed to clear stored inputs", zap.String("op", "main"), zap.Error(err))
		}
	}
	if len(edits) > 0 {
		if result, err = sess.Update(ctx, edits); err != nil {
			logger.Error("failed to persist input edits", zap.String("op", "main"), zap.Error(err))
		}
	}
	if *applyReplacement {
		if result, err = sess.ApplyReplacement(ctx); err != nil {
			logger.Error("failed to persist replacement", zap.String("op", "main"), zap.Error(err))
		}
	}

	outputs := calculator.Render(result, conf.Capabilities())

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, result, outputs)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(os.Stdout, calculator.OutputKeys(), outputs); err != nil {
			logger.Fatal("failed to write csv output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}
