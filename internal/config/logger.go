package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/simp-lee/logger"
)

// SetupLogger creates the process logger from LogConfig, installs it as the
// slog default, and returns it; the caller closes it. Rendered screens own
// stdout, so the console stream goes to stderr as plain text, and quiet mode
// silences it entirely so subcommand output stays clean while the rotating
// file keeps full detail. The configured format applies to the file.
func SetupLogger(cfg *LogConfig) (*logger.Logger, error) {
	if cfg == nil {
		return nil, errors.New("log config is nil")
	}

	console := io.Writer(os.Stderr)
	if cfg.Quiet {
		console = io.Discard
	}

	opts := []logger.Option{
		logger.WithLevel(parseLevel(cfg.Level)),
		logger.WithMiddleware(logger.ContextMiddleware()),
		logger.WithConsoleWriter(console),
		logger.WithConsoleFormat(logger.FormatText),
		logger.WithConsoleColor(false),
	}

	if cfg.FilePath != "" {
		opts = append(opts,
			logger.WithFilePath(cfg.FilePath),
			logger.WithFileFormat(parseFormat(cfg.Format)),
		)
		if cfg.MaxSizeMB > 0 {
			opts = append(opts, logger.WithMaxSizeMB(cfg.MaxSizeMB))
		}
		if cfg.RetentionDays > 0 {
			opts = append(opts, logger.WithRetentionDays(cfg.RetentionDays))
		}
		if cfg.MaxBackups > 0 {
			opts = append(opts, logger.WithMaxBackups(cfg.MaxBackups))
		}
		if cfg.CompressRotated != nil {
			opts = append(opts, logger.WithCompressRotated(*cfg.CompressRotated))
		}
	}

	log, err := logger.New(opts...)
	if err != nil {
		return nil, err
	}

	log.SetDefault()
	return log, nil
}

// parseLevel maps a level name to slog.Level; unrecognized values mean info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseFormat maps the file format name; unrecognized values mean JSON, which
// is what the log file defaults to for later inspection.
func parseFormat(s string) logger.OutputFormat {
	if strings.ToLower(s) == "text" {
		return logger.FormatText
	}
	return logger.FormatJSON
}
