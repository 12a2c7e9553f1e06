package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/superpong/config"
)

const (
	logDirName  = "logs"
	logFileName = "superpong.log"
)

// Handle owns the log file behind a logger
type Handle struct {
	Logger *zap.Logger
	RunID  string
	Path   string
	file   *os.File
}

// Close flushes the logger and releases the file
func (h *Handle) Close() error {
	if h == nil || h.Logger == nil {
		return nil
	}
	_ = h.Logger.Sync()
	if h.file == nil {
		return nil
	}
	return h.file.Close()
}

// New builds the process logger writing under <dataDir>/logs
// The terminal owns stdout so nothing is ever written there
// Disabled logging returns a nop logger and no file
func New(cfg config.LoggingConfig, dataDir string) (*Handle, error) {
	runID := uuid.NewString()
	if !cfg.Enabled {
		return &Handle{Logger: zap.NewNop(), RunID: runID}, nil
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	dir := filepath.Join(dataDir, logDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	maxSize := int64(cfg.MaxSizeMB) * 1024 * 1024
	if err := rotate(path, maxSize, time.Now()); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	core := zapcore.NewCore(encoder(cfg.Format), zapcore.AddSync(file), zap.NewAtomicLevelAt(level))
	logger := zap.New(core, zap.AddCaller()).With(zap.String("run", runID))

	return &Handle{Logger: logger, RunID: runID, Path: path, file: file}, nil
}

func encoder(format string) zapcore.Encoder {
	if format == "json" {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encCfg)
}

// rotate moves an oversized log aside with a timestamp suffix
func rotate(path string, maxSize int64, now time.Time) error {
	if maxSize <= 0 {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxSize {
		return nil
	}

	ext := filepath.Ext(path)
	rotated := fmt.Sprintf("%s-%s%s", path[:len(path)-len(ext)], now.Format("20060102-150405"), ext)
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}
	return nil
}
