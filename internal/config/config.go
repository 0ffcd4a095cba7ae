// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"flag"
	"os"
	"strconv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the postgres connection string. When set it
	// wins over SQLitePath.
	DatabaseDSN string

	// SQLitePath is the path to the sqlite database file used when no
	// postgres DSN is configured.
	SQLitePath string

	// OCRAPIKey authenticates against the OCR provider. Image import
	// is disabled when empty.
	OCRAPIKey string

	// LogLevel sets the zap log level (debug, info, warn, error).
	LogLevel string

	// EnablePprof indicates whether to enable pprof for performance profiling.
	EnablePprof bool

	// EnableHTTPS indicates whether to enable https.
	EnableHTTPS bool
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "postgres dsn")
	flag.StringVar(&options.SQLitePath, "f", "", "path to sqlite database file")
	flag.StringVar(&options.OCRAPIKey, "k", "", "ocr provider api key")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.BoolVar(&options.EnablePprof, "p", false, "enable pprof")
	flag.BoolVar(&options.EnableHTTPS, "s", false, "enable https")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}

	if sqlitePath := os.Getenv("SQLITE_PATH"); sqlitePath != "" {
		options.SQLitePath = sqlitePath
	}

	if apiKey := os.Getenv("OCR_API_KEY"); apiKey != "" {
		options.OCRAPIKey = apiKey
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	if enableHTTPS := os.Getenv("ENABLE_HTTPS"); enableHTTPS != "" {
		httpsMode, err := strconv.ParseBool(enableHTTPS)
		if err != nil {
			options.EnableHTTPS = false
		}

		options.EnableHTTPS = httpsMode
	}

	return options
}
