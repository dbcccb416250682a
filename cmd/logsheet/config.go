package main

import (
	"time"

	"github.com/tinytelemetry/logsheet/internal/logparse"
	"github.com/tinytelemetry/logsheet/internal/model"
)

const (
	defaultInputPath    = model.DefaultInputPath
	defaultReportPath   = model.DefaultReportPath
	defaultDestination  = model.DefaultDestination
	defaultInterval     = model.DefaultInterval
	defaultWriteRetries = model.DefaultWriteRetries
	defaultMaxLineSize  = logparse.DefaultMaxLineSize
	defaultLogLevel     = "debug"
	defaultAPIAddr      = "127.0.0.1:3000"
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	InputPath      string        `mapstructure:"input-path" yaml:"input-path"`
	ReportPath     string        `mapstructure:"report-path" yaml:"report-path"`
	Destination    string        `mapstructure:"destination" yaml:"destination"`
	Interval       time.Duration `mapstructure:"interval" yaml:"-"`
	Keywords       []string      `mapstructure:"keywords" yaml:"keywords"`
	RetainPerLevel int           `mapstructure:"retain-per-level" yaml:"retain-per-level"`
	WriteRetries   int           `mapstructure:"write-retries" yaml:"write-retries"`
	Seed           uint64        `mapstructure:"seed" yaml:"seed"`
	MaxLineSize    int           `mapstructure:"max-line-size" yaml:"max-line-size"`
	LogLevel       string        `mapstructure:"log-level" yaml:"log-level"`
	LogFile        string        `mapstructure:"log-file" yaml:"log-file"`
	APIEnabled     bool          `mapstructure:"api-enabled" yaml:"api-enabled"`
	APIAddr        string        `mapstructure:"api-addr" yaml:"api-addr"`
	S3Endpoint     string        `mapstructure:"s3-endpoint" yaml:"s3-endpoint"`
	S3Region       string        `mapstructure:"s3-region" yaml:"s3-region"`
	S3AccessKey    string        `mapstructure:"s3-access-key" yaml:"s3-access-key"`
	S3SecretKey    string        `mapstructure:"s3-secret-key" yaml:"-"`
	S3SessionToken string        `mapstructure:"s3-session-token" yaml:"-"`
	S3UseSSL       bool          `mapstructure:"s3-use-ssl" yaml:"s3-use-ssl"`
	ConfigPath     string        `mapstructure:"-" yaml:"-"` // not from config file
}
