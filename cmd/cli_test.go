package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/telemux/internal/domain"
	"github.com/bnema/telemux/internal/ports"
	"github.com/bnema/telemux/internal/version"
)

type fakeRegistry struct {
	sessions []string
	err      error
}

func (f *fakeRegistry) Sessions(context.Context) ([]string, error) { return f.sessions, f.err }

type fakeInjector struct {
	session string
	text    string
}

func (f *fakeInjector) Inject(_ context.Context, session, text string) error {
	f.session = session
	f.text = text
	return nil
}

type fakeCursor struct{ value int64 }

func (f *fakeCursor) Load(context.Context) (int64, error) { return f.value, nil }

func (f *fakeCursor) Save(_ context.Context, v int64) error {
	f.value = v
	return nil
}

type fakeChat struct {
	sent      []string
	notifyErr error
}

func (f *fakeChat) Updates(context.Context, int64) ([]domain.Update, error) { return nil, nil }

func (f *fakeChat) Notify(_ context.Context, text string) error {
	f.sent = append(f.sent, text)
	return f.notifyErr
}

func (f *fakeChat) Me(context.Context) (string, error) { return "telemux_bot", nil }

func newTestApp(t *testing.T, sessions []string) (*app, *fakeChat) {
	t.Helper()
	dir := t.TempDir()
	chat := &fakeChat{}
	a := &app{
		cfg: settings{
			botToken:  "token",
			chatID:    "1234",
			stateDir:  dir,
			statePath: filepath.Join(dir, stateFile),
			auditPath: filepath.Join(dir, auditFile),
		},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		registry: &fakeRegistry{sessions: sessions},
		injector: &fakeInjector{},
		cursor:   &fakeCursor{value: 7},
		clock:    ports.SystemClock{},
	}
	a.newChat = func() (chatClient, error) {
		if a.cfg.botToken == "" || a.cfg.chatID == "" {
			return nil, domain.ErrMissingCredentials
		}
		return chat, nil
	}
	return a, chat
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, newVersionCmd())
	require.NoError(t, err)
	assert.Contains(t, stdout, version.Version)
}

func TestSessionsCommandListsNames(t *testing.T) {
	app, _ := newTestApp(t, []string{"alpha", "build-1"})

	stdout, _, err := executeCommand(t, newSessionsCmd(app))
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbuild-1\n", stdout)
}

func TestSessionsCommandEmpty(t *testing.T) {
	app, _ := newTestApp(t, nil)

	stdout, _, err := executeCommand(t, newSessionsCmd(app))
	require.NoError(t, err)
	assert.Contains(t, stdout, "no tmux sessions running")
}

func TestSendCommandNotifiesChat(t *testing.T) {
	app, chat := newTestApp(t, nil)

	stdout, _, err := executeCommand(t, newSendCmd(app), "build", "finished", "ok")
	require.NoError(t, err)
	assert.Contains(t, stdout, "message sent")
	assert.Equal(t, []string{"build finished ok"}, chat.sent)
}

func TestSendCommandRequiresCredentials(t *testing.T) {
	app, chat := newTestApp(t, nil)
	app.cfg.botToken = ""

	_, _, err := executeCommand(t, newSendCmd(app), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	assert.Empty(t, chat.sent)
}

func TestSendCommandSurfacesNotifyFailure(t *testing.T) {
	app, chat := newTestApp(t, nil)
	chat.notifyErr = errors.New("chat not found")

	_, _, err := executeCommand(t, newSendCmd(app), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestStatusCommandJSON(t *testing.T) {
	app, _ := newTestApp(t, []string{"alpha"})

	stdout, _, err := executeCommand(t, newStatusCmd(app), "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var snap struct {
		Configured   bool
		LastUpdateID int64
		Sessions     []string
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &snap))
	assert.True(t, snap.Configured)
	assert.Equal(t, int64(7), snap.LastUpdateID)
	assert.Equal(t, []string{"alpha"}, snap.Sessions)
}

func TestStatusCommandRendered(t *testing.T) {
	app, _ := newTestApp(t, []string{"alpha"})

	stdout, _, err := executeCommand(t, newStatusCmd(app))
	require.NoError(t, err)
	assert.Contains(t, stdout, "telemux bridge status")
	assert.Contains(t, stdout, "alpha")
}

func TestListenRequiresCredentials(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.cfg.botToken = ""

	_, _, err := executeCommand(t, newListenCmd(app))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TELEMUX_BOT_TOKEN", "env-token")
	t.Setenv("TELEMUX_CHAT_ID", "99")
	t.Setenv("TELEMUX_LOG_LEVEL", "debug")

	cfg, err := loadSettings(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.botToken)
	assert.Equal(t, "99", cfg.chatID)
	assert.Equal(t, "debug", cfg.logLevel)
	assert.Equal(t, filepath.Join(cfg.stateDir, "state.toml"), cfg.statePath)
}
