package config_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/obrok/lens"
	"github.com/obrok/lens/config"
	lenserr "github.com/obrok/lens/errors"
	"github.com/obrok/lens/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "app.yaml", `
server:
  port: 8080
  timeout: 5s
servers:
  - host: a.internal
  - host: b.internal
`)
	cfg := config.New()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, 8080, cfg.GetInt("server.port"))
	assert.Equal(t, 5*time.Second, cfg.GetDuration("server.timeout"))
	assert.Equal(t, "b.internal", cfg.GetString("servers.1.host"))
	assert.Equal(t, []any{"a.internal", "b.internal"}, cfg.GetAll("servers.*.host"))
}

func TestLoadFileMerges(t *testing.T) {
	first := writeFile(t, "a.json", `{"db": {"host": "localhost", "port": 5432}}`)
	second := writeFile(t, "b.json", `{"db": {"host": "db.internal"}, "debug": true}`)

	cfg := config.New()
	require.NoError(t, cfg.LoadFile(first))
	require.NoError(t, cfg.LoadFile(second))

	assert.Equal(t, "db.internal", cfg.GetString("db.host"))
	assert.Equal(t, 5432, cfg.GetInt("db.port"))
	assert.True(t, cfg.GetBool("debug"))
}

func TestLoadFileErrors(t *testing.T) {
	cfg := config.New()
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	err := cfg.LoadFile(missing)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, lenserr.IsCode(err, lenserr.ErrCodeInvalidArgument))
	assert.Contains(t, err.Error(), missing)

	err = cfg.LoadFile(writeFile(t, "bad.yaml", "a: [1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")

	err = cfg.LoadFile(writeFile(t, "list.yaml", "- 1\n- 2\n"))
	require.ErrorIs(t, err, lenserr.ErrInvalidShape)
	assert.Contains(t, err.Error(), "top level must be an object")
	require.NoError(t, cfg.LoadFile(writeFile(t, "empty.yaml", "")))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LENSTEST_DB_HOST", "env-host")
	t.Setenv("LENSTEST_DB_PORT", "6543")
	t.Setenv("OTHER_DB_HOST", "ignored")

	cfg := config.New().
		WithDefaults(map[string]any{"db.host": "default-host", "db.user": "app"}).
		LoadEnv("LENSTEST")

	assert.Equal(t, "env-host", cfg.GetString("db.host"))
	assert.Equal(t, 6543, cfg.GetInt("db.port"))
	assert.Equal(t, "app", cfg.GetString("db.user"))
}

func TestSetCreatesIntermediates(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Set("a.b.c", 1))
	assert.Equal(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}, cfg.All())

	require.NoError(t, cfg.Set("a.b", "scalar"))
	assert.Error(t, cfg.Set("a.b.c", 2), "cannot write through a scalar")
	assert.Equal(t, "scalar", cfg.GetString("a.b"))
}

func TestGetMissing(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Set("a", 1))

	_, ok := cfg.Get("b")
	assert.False(t, ok)
	_, ok = cfg.Get("a.b")
	assert.False(t, ok, "reading through a scalar finds nothing")
	_, ok = cfg.Get("list.3")
	assert.False(t, ok)
	assert.Equal(t, "", cfg.GetString("b"))
	assert.Equal(t, 0, cfg.GetInt("b"))
	assert.Nil(t, cfg.GetStringSlice("b"))
}

func TestGetStringSlice(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Set("csv", "a,b"))
	require.NoError(t, cfg.Set("list", []any{"x", 1}))

	assert.Equal(t, []string{"a", "b"}, cfg.GetStringSlice("csv"))
	assert.Equal(t, []string{"x", "1"}, cfg.GetStringSlice("list"))
}

func TestLookupAndUpdate(t *testing.T) {
	cfg := config.New().WithDefaults(map[string]any{"limits.max": 10})
	require.NoError(t, cfg.Set("limits.min", 1))

	got, err := cfg.Lookup(lens.Pipe().Key("limits").MapValues())
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{1, 10}, got)

	require.NoError(t, cfg.Update(config.WritePath("limits.min"), func(v any) any { return v.(int) * 5 }))
	assert.Equal(t, 5, cfg.GetInt("limits.min"))
	assert.Equal(t, 10, cfg.GetInt("limits.max"))

	assert.Error(t, cfg.Update(lens.KeyStrict("nope"), func(v any) any { return v }))
}

func TestDecode(t *testing.T) {
	type server struct {
		Host    string
		Port    int
		Timeout time.Duration
		Tags    []string
	}

	cfg := config.New().WithDefaults(map[string]any{"server.timeout": "2s"})
	require.NoError(t, cfg.Set("server.host", "localhost"))
	require.NoError(t, cfg.Set("server.port", "8080"))
	require.NoError(t, cfg.Set("server.tags", []any{"a", "b"}))

	var s server
	require.NoError(t, cfg.Decode("server", &s))
	assert.Equal(t, server{Host: "localhost", Port: 8080, Timeout: 2 * time.Second, Tags: []string{"a", "b"}}, s)

	var missing server
	var valErr *config.ValidationError
	require.ErrorAs(t, cfg.Decode("absent", &missing), &valErr)
	assert.Equal(t, []string{"absent"}, valErr.MissingKeys)

	var tags []string
	require.NoError(t, cfg.Decode("server.tags", &tags))
	assert.Equal(t, []string{"a", "b"}, tags)
}

func TestDecodeValidatesTags(t *testing.T) {
	type listener struct {
		Host    string        `mapstructure:"host" validate:"required"`
		Port    int           `mapstructure:"port" validate:"min=1024,max=65535"`
		Timeout time.Duration `mapstructure:"timeout" validate:"min=1ms"`
	}

	cfg := config.New().WithDefaults(map[string]any{"listener.timeout": "1s"})
	require.NoError(t, cfg.Set("listener.host", "0.0.0.0"))
	require.NoError(t, cfg.Set("listener.port", 8080))

	var ok listener
	require.NoError(t, cfg.Decode("listener", &ok))
	assert.Equal(t, listener{Host: "0.0.0.0", Port: 8080, Timeout: time.Second}, ok)

	require.NoError(t, cfg.Set("listener.port", 80))
	var low listener
	err := cfg.Decode("listener", &low)
	require.Error(t, err)
	assert.True(t, lenserr.IsCode(err, lenserr.ErrCodeInvalidArgument))
	assert.Contains(t, err.Error(), "invalid listener")
	assert.Contains(t, err.Error(), "Port")
	assert.Contains(t, err.Error(), "min")
}

func TestSetLogsRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf, Redact: true})
	require.NoError(t, err)

	cfg := config.New().WithLogger(logger)
	require.NoError(t, cfg.Set("db.password", "hunter2"))

	assert.Contains(t, buf.String(), "config value set")
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestPaths(t *testing.T) {
	doc := map[string]any{
		"a": []any{map[string]any{"b": 1}, map[string]any{"b": 2}},
		"m": map[string]any{"x": 1, "y": 2},
	}

	got, err := lens.ToList(config.ReadPath("a.*.b"), doc)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, got)

	got, err = lens.ToList(config.ReadPath("m.*"), doc)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, got)

	got, err = lens.ToList(config.ReadPath("a.7.b"), doc)
	require.NoError(t, err)
	assert.Empty(t, got)

	updated, err := lens.Put(config.WritePath("a.*.b"), doc, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"b": 0}, map[string]any{"b": 0}}, updated.(map[string]any)["a"])

	_, err = lens.Put(config.WritePath("a.7"), doc, 0)
	assert.Error(t, err)

	assert.Nil(t, config.Segments(""))
	assert.Equal(t, []string{"a", "0", "b"}, config.Segments("a.0.b"))
}

func TestWatchReloads(t *testing.T) {
	path := writeFile(t, "live.yaml", "mode: old\n")
	cfg := config.New()
	require.NoError(t, cfg.LoadFile(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cfg.Watch(ctx, path, nil))

	require.NoError(t, os.WriteFile(path, []byte("mode: new\n"), 0o600))
	assert.Eventually(t, func() bool {
		return cfg.GetString("mode") == "new"
	}, 5*time.Second, 10*time.Millisecond)
}

// syncBuffer is a bytes.Buffer safe to read while a watcher goroutine logs.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchUsesLoggerSetAfterStart(t *testing.T) {
	path := writeFile(t, "live.yaml", "mode: old\n")
	cfg := config.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cfg.Watch(ctx, path, nil))

	var out syncBuffer
	logger, err := logging.New(logging.Config{Format: logging.FormatText, Output: &out})
	require.NoError(t, err)
	cfg.WithLogger(logger)

	require.NoError(t, os.WriteFile(path, []byte("mode: new\n"), 0o600))
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "config change detected") &&
			cfg.GetString("mode") == "new"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatchMissingFile(t *testing.T) {
	err := config.New().Watch(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}
