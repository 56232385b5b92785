package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bdunphy/dictl/pkg/querier"
	"github.com/bdunphy/dictl/pkg/ui"
)

const (
	codeErrorArgs = iota + 1
	codeInternalError
)

const closeTimeout = 5 * time.Second

func exitf(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}

type Config struct {
	// ZapConfig is a json encoded zap.Config, LogPath a shortcut for
	// sending default production logging into a file.
	ZapConfig string
	LogPath   string

	Provider ProviderConfig
}

type ProviderConfig struct {
	Name       string
	Host       string
	Protocol   string
	Timeout    time.Duration
	MaxWorkers int
}

// ZapConf builds the logger config. The terminal belongs to the
// interface, so without an explicit sink logging is off entirely.
func (c *Config) ZapConf() (*zap.Config, error) {
	if c.ZapConfig != "" {
		var zapConf zap.Config
		if err := json.Unmarshal([]byte(c.ZapConfig), &zapConf); err != nil {
			return nil, err
		}
		return &zapConf, nil
	}
	if c.LogPath == "" {
		return nil, nil
	}
	zapConf := zap.NewProductionConfig()
	zapConf.OutputPaths = []string{c.LogPath}
	zapConf.ErrorOutputPaths = []string{c.LogPath}
	return &zapConf, nil
}

func getConfig() (*Config, error) {
	pflag.StringP("config", "c", "", "path to local config")
	pflag.Parse()

	v := viper.New()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}
	return loadConfig(v)
}

// loadConfig reads settings from env and the optional config file. Every
// env-settable key is bound explicitly, AutomaticEnv alone does not
// surface unbound keys through Unmarshal.
func loadConfig(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("DICTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("provider.name", "freedict")
	v.BindEnv("provider.name")
	v.BindEnv("provider.host")
	v.BindEnv("provider.protocol")
	v.BindEnv("provider.timeout")
	v.BindEnv("provider.maxworkers")
	v.BindEnv("zapconfig")
	v.BindEnv("log.path")

	if configPath := v.GetString("config"); configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error while reading config: %w", err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("error while unmarshaling config: %w", err)
	}
	conf.ZapConfig = v.GetString("zapconfig")
	conf.LogPath = v.GetString("log.path")
	return &conf, nil
}

func newLogger(conf *Config) (*zap.Logger, error) {
	zapConf, err := conf.ZapConf()
	if err != nil {
		return nil, err
	}
	if zapConf == nil {
		return zap.NewNop(), nil
	}
	return zapConf.Build()
}

func newQuerier(conf *Config, logger *zap.Logger) (querier.Querier, error) {
	switch conf.Provider.Name {
	case "freedict":
		return querier.NewFreeDict(nil, logger, &querier.FreeDictConfig{
			Host:     conf.Provider.Host,
			Protocol: conf.Provider.Protocol,
			Timeout:  conf.Provider.Timeout,
		}), nil
	case "cambridge":
		return querier.NewCambridge(nil, nil, logger, &querier.CambridgeConfig{
			Host:       conf.Provider.Host,
			Protocol:   conf.Provider.Protocol,
			Timeout:    conf.Provider.Timeout,
			MaxWorkers: conf.Provider.MaxWorkers,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", conf.Provider.Name)
	}
}

func main() {
	conf, err := getConfig()
	if err != nil {
		exitf(codeErrorArgs, "Failure while parsing arguments: %s\n", err)
	}
	logger, err := newLogger(conf)
	if err != nil {
		exitf(codeErrorArgs, "Failure while instantiating logger: %s\n", err)
	}
	defer logger.Sync()

	q, err := newQuerier(conf, logger)
	if err != nil {
		exitf(codeErrorArgs, "Can not initialize provider: %s\n", err)
	}

	logger.Info("starting", zap.String("provider", conf.Provider.Name))
	program := tea.NewProgram(ui.New(q, logger), tea.WithAltScreen())
	_, runErr := program.Run()

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := q.Close(ctx); err != nil {
		logger.Error("querier close failed", zap.Error(err))
	}
	if runErr != nil {
		exitf(codeInternalError, "Interface error: %s\n", runErr)
	}
	logger.Info("closed")
}
