package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	auditsqlite "github.com/bnema/telemux/internal/adapters/audit/sqlite"
	statetoml "github.com/bnema/telemux/internal/adapters/state/toml"
	"github.com/bnema/telemux/internal/adapters/telegram"
	"github.com/bnema/telemux/internal/adapters/tmux"
	"github.com/bnema/telemux/internal/domain"
	"github.com/bnema/telemux/internal/ports"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".telemux"

	stateFile = "state.toml"
	auditFile = "audit.db"
)

type settings struct {
	botToken  string
	chatID    string
	logLevel  string
	stateDir  string
	statePath string
	auditPath string
}

// chatClient is what the commands need from the Telegram adapter.
type chatClient interface {
	ports.UpdateSource
	ports.Notifier
	Me(ctx context.Context) (string, error)
}

type app struct {
	cfg      settings
	logger   *slog.Logger
	registry ports.SessionRegistry
	injector ports.Injector
	cursor   ports.CursorStore
	clock    ports.Clock
	newChat  func() (chatClient, error)
}

func wireApp() (*app, error) {
	cfg, err := loadSettings(viper.New())
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.logLevel)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: tmux.NewRegistry(),
		injector: tmux.NewInjector(),
		cursor:   statetoml.NewStore(cfg.statePath),
		clock:    ports.SystemClock{},
	}
	a.newChat = func() (chatClient, error) {
		if a.cfg.botToken == "" || a.cfg.chatID == "" {
			return nil, domain.ErrMissingCredentials
		}
		return telegram.NewClient(a.cfg.botToken, a.cfg.chatID, a.logger), nil
	}
	return a, nil
}

func loadSettings(cfg *viper.Viper) (settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return settings{}, fmt.Errorf("resolve home directory: %w", err)
	}
	stateDir := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(stateDir)
	cfg.SetDefault("log.level", "info")

	for key, env := range map[string]string{
		"telegram.bot_token": "TELEMUX_BOT_TOKEN",
		"telegram.chat_id":   "TELEMUX_CHAT_ID",
		"log.level":          "TELEMUX_LOG_LEVEL",
	} {
		if err := cfg.BindEnv(key, env); err != nil {
			return settings{}, err
		}
	}

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return settings{
		botToken:  cfg.GetString("telegram.bot_token"),
		chatID:    cfg.GetString("telegram.chat_id"),
		logLevel:  cfg.GetString("log.level"),
		stateDir:  stateDir,
		statePath: filepath.Join(stateDir, stateFile),
		auditPath: filepath.Join(stateDir, auditFile),
	}, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func (a *app) openAudit() (ports.AuditLog, error) {
	return auditsqlite.Open(a.cfg.auditPath, a.clock)
}
