package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tinytelemetry/logsheet/internal/model"
	"gopkg.in/yaml.v3"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var showVersion bool
	var printConfig bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/logsheet/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.BoolVar(&printConfig, "print-config", false, "print the effective configuration as YAML and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Logsheet - Log Sampling Report Generator\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if printConfig {
		out, err := renderConfig(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("LOGSHEET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("input-path", defaultInputPath)
	v.SetDefault("report-path", defaultReportPath)
	v.SetDefault("destination", defaultDestination)
	v.SetDefault("interval", defaultInterval)
	v.SetDefault("keywords", model.DefaultKeywords())
	v.SetDefault("retain-per-level", 0)
	v.SetDefault("write-retries", defaultWriteRetries)
	v.SetDefault("seed", 0)
	v.SetDefault("max-line-size", defaultMaxLineSize)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("log-file", "")
	v.SetDefault("api-enabled", false)
	v.SetDefault("api-addr", defaultAPIAddr)
	v.SetDefault("s3-endpoint", "")
	v.SetDefault("s3-region", "")
	v.SetDefault("s3-access-key", "")
	v.SetDefault("s3-secret-key", "")
	v.SetDefault("s3-session-token", "")
	v.SetDefault("s3-use-ssl", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultConfigPath := filepath.Join(home, ".config", "logsheet", "config.yml")
		v.SetConfigFile(defaultConfigPath)
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	} else {
		cfg.ConfigPath = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if strings.TrimSpace(cfg.InputPath) == "" {
		return cfg, errors.New("input-path is empty")
	}
	if strings.TrimSpace(cfg.ReportPath) == "" {
		return cfg, errors.New("report-path is empty")
	}
	if strings.TrimSpace(cfg.Destination) == "" {
		return cfg, errors.New("destination is empty")
	}
	if cfg.Interval <= 0 {
		return cfg, fmt.Errorf("invalid interval: %s", cfg.Interval)
	}
	if cfg.RetainPerLevel < 0 {
		return cfg, fmt.Errorf("invalid retain-per-level: %d", cfg.RetainPerLevel)
	}
	if cfg.WriteRetries < 0 {
		return cfg, fmt.Errorf("invalid write-retries: %d", cfg.WriteRetries)
	}
	cfg.Keywords = compactKeywords(cfg.Keywords)

	// Expand ~ in local paths
	if strings.HasPrefix(cfg.LogFile, "~/") {
		cfg.LogFile = filepath.Join(home, cfg.LogFile[2:])
	}

	return cfg, nil
}

// compactKeywords drops blank and duplicate keywords, keeping first occurrence order.
func compactKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

func renderConfig(cfg appConfig) ([]byte, error) {
	view := struct {
		Config   appConfig `yaml:",inline"`
		Interval string    `yaml:"interval"`
	}{cfg, cfg.Interval.String()}
	return yaml.Marshal(view)
}
