package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sit-kite/campus-agent/internal/adapters/campus"
	"github.com/sit-kite/campus-agent/internal/adapters/store"
	"github.com/sit-kite/campus-agent/internal/application"
)

type app struct {
	config     agentConfig
	logger     *slog.Logger
	store      *store.MemoryStore
	dispatcher *application.Dispatcher
}

type agentConfig struct {
	Name           string
	HostAddr       string
	ReconnectDelay time.Duration
	AccountsFile   string
}

func wireApp() (*app, error) {
	v := viper.New()
	v.SetConfigName("campus-agent")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(homeDir + "/.campus-agent")
	}
	v.SetEnvPrefix("CAMPUS_AGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("agent.name", defaultAgentName())
	v.SetDefault("agent.reconnect_delay", "5s")
	v.SetDefault("accounts.file", "accounts.toml")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	config := agentConfig{
		Name:           v.GetString("agent.name"),
		HostAddr:       v.GetString("agent.host"),
		ReconnectDelay: v.GetDuration("agent.reconnect_delay"),
		AccountsFile:   v.GetString("accounts.file"),
	}

	logger := newLogger(v.GetString("log.level"))

	httpClient := &http.Client{Timeout: 30 * time.Second}
	endpoints := campus.DefaultEndpoints()
	auth := campus.NewSSOAuthenticator(endpoints.SSORedirect, httpClient)
	sessionStore := store.NewMemoryStore(auth)
	gateway := campus.NewService(endpoints, httpClient, auth, logger)

	dispatcher := application.NewDispatcher(application.SharedData{
		Store:  sessionStore,
		Campus: gateway,
		Logger: logger,
	})

	return &app{
		config:     config,
		logger:     logger,
		store:      sessionStore,
		dispatcher: dispatcher,
	}, nil
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func defaultAgentName() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "campus-agent"
	}

	return hostname
}
