// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ------------------- global loggers -------------------

// four logger levels accessible throughout the application
var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	Debug *log.Logger
)

const flags = log.Ldate | log.Ltime | log.Lshortfile

// ------------------- logger initialization -------------------

// InitLogger (re)configures the four loggers. Output always goes to stdout;
// when dir is non-empty a timestamped log file is created there as well.
func InitLogger(dir string) error {
	var out io.Writer = os.Stdout

	if dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
		name := filepath.Join(dir, time.Now().Format("2006-01-02_15-04-05")+".log")
		file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
		if err != nil {
			return err
		}
		out = io.MultiWriter(os.Stdout, file)
	}

	Info = log.New(out, "INFO: ", flags)
	Warn = log.New(out, "WARN: ", flags)
	Error = log.New(out, "ERROR: ", flags)
	Debug = log.New(out, "DEBUG: ", flags)
	return nil
}

// SetLogLevel discards Debug output in production.
func SetLogLevel(env string) {
	if env == "production" {
		Debug.SetOutput(io.Discard)
	}
}

// init gives every package usable stdout loggers before main configures files.
func init() {
	if err := InitLogger(""); err != nil {
		log.Fatalf("Failed to initialise custom logger: %v", err)
	}
}
