package infra

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
	"tastepalette/internal/config"
)

// SetupLogging sends the standard logger to stdout and a rotated file.
// The returned writer is shared with gin's request logger.
func SetupLogging(cfg *config.Config) io.Writer {
	if cfg.LogFile == "" {
		return os.Stdout
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), os.ModePerm); err != nil {
		log.Printf("Could not create log directory for %s: %v", cfg.LogFile, err)
		return os.Stdout
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     28,
		Compress:   true,
	}

	out := io.MultiWriter(os.Stdout, rotating)
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return out
}
