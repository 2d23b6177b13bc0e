package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/chinese-calendar/internal/calendar"
	"github.com/username/chinese-calendar/internal/config"
	"github.com/username/chinese-calendar/internal/dataset"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	cfg        *config.Config
	logger     = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chinese-calendar",
		Short:         "Chinese workday and holiday calendar",
		Long:          "Check whether a date is a workday or a holiday in China, including compensatory workdays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.ExpandEnvVars()

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					return err
				}
			} else {
				logger, err = initLogger(cfg.Log.Level)
				if err != nil {
					return err
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(monthCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(workdaysCmd())
	rootCmd.AddCommand(findWorkdayCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(datasetCmd())

	return rootCmd
}

// buildCalendar assembles the calendar from the bundled dataset and the
// optional dataset file
func buildCalendar(cfg *config.Config) (calendar.Calendar, error) {
	base, err := dataset.Default(logger)
	if err != nil {
		return nil, err
	}

	if cfg.Dataset.File == "" {
		return newClassifier(base, cfg.Dataset.Strict)
	}

	extra, err := dataset.LoadFile(cfg.Dataset.File, logger)
	if err != nil {
		return nil, err
	}

	switch cfg.Dataset.Mode {
	case config.DatasetModeFallback:
		logger.Info("Using dataset file with bundled fallback",
			zap.String("file", cfg.Dataset.File))

		primary, err := newClassifier(extra, cfg.Dataset.Strict)
		if err != nil {
			return nil, err
		}
		fallback, err := newClassifier(base, cfg.Dataset.Strict)
		if err != nil {
			return nil, err
		}
		return calendar.NewCompositeCalendar(primary, fallback, logger), nil

	default:
		logger.Info("Overlaying dataset file on bundled data",
			zap.String("file", cfg.Dataset.File))

		merged, err := dataset.Merge(base, extra)
		if err != nil {
			return nil, fmt.Errorf("failed to merge datasets: %w", err)
		}
		return newClassifier(merged, cfg.Dataset.Strict)
	}
}

func newClassifier(ds *dataset.Dataset, strict bool) (*calendar.Classifier, error) {
	if overlaps := ds.Overlaps(); strict && len(overlaps) > 0 {
		return nil, fmt.Errorf("dataset lists %d date(s) as both holiday and workday, first %s",
			len(overlaps), overlaps[0])
	}
	return calendar.NewClassifier(ds, logger), nil
}

func initLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
