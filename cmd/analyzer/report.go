package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"api-log-analytics/internal/analyzers"
	"api-log-analytics/internal/shared/configs"
	"api-log-analytics/internal/shared/filestorages"
	"api-log-analytics/internal/shared/loggers"
	"api-log-analytics/internal/stores"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyze a log batch file and print the report",
	Long: `Analyze a JSON array of API request log records and print the report.

File paths are keys under file_storage.root_dir and cannot escape it.
The override file holds the same keys as the /analyze/custom "config" object,
e.g. {"RESPONSE_TIME_THRESHOLDS": {"MEDIUM": 200, "HIGH": 400, "CRITICAL": 800}}.

Examples:
  analyzer report --input logs/sample.json
  analyzer report --input logs/sample.json --output reports/sample.json --force`,
	RunE: runReport,
}

var (
	reportInput    string
	reportOverride string
	reportOutput   string
	reportForce    bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "", "log batch file (JSON array of records)")
	reportCmd.Flags().StringVar(&reportOverride, "override", "", "analysis config override file (JSON)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "save the report JSON to this file")
	reportCmd.Flags().BoolVar(&reportForce, "force", false, "overwrite an existing output file")
	_ = reportCmd.MarkFlagRequired("input")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := configs.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, err := loggers.NewWithWriter(cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithContext(ctx)

	storage, err := filestorages.NewFileStorage(cfg.FileStorage.RootDir)
	if err != nil {
		return fmt.Errorf("failed to create file storage: %w", err)
	}

	records, err := stores.NewLogBatchStore(storage).Get(ctx, reportInput)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", reportInput, err)
	}

	override, err := loadOverride(ctx, storage, reportOverride)
	if err != nil {
		return err
	}

	report, svcErr := analyzers.NewDefaultAnalysisService(cfg.Analysis).Analyze(ctx, records, override)
	if svcErr != nil {
		return svcErr
	}

	if err := printReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if reportOutput != "" {
		if err := stores.NewReportStore(storage).Save(ctx, reportOutput, report, reportForce); err != nil {
			if errors.Is(err, stores.ErrReportAlreadyExist) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", reportOutput)
			}
			return err
		}
		logger.Info().Str(loggers.FieldFileKey, reportOutput).Msg("report saved")
	}
	return nil
}

func loadOverride(ctx context.Context, storage filestorages.FileStorage, key string) (configs.AnalysisOverride, error) {
	if key == "" {
		return configs.AnalysisOverride{}, nil
	}

	readCloser, err := storage.Get(ctx, key)
	if err != nil {
		return configs.AnalysisOverride{}, fmt.Errorf("failed to read %s: %w", key, err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return configs.AnalysisOverride{}, fmt.Errorf("failed to read %s: %w", key, err)
	}

	override, svcErr := analyzers.ParseOverride(data)
	if svcErr != nil {
		return configs.AnalysisOverride{}, svcErr
	}
	return override, nil
}
