package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/gestor"
	"github.com/aretw0/gestor/internal/platform"
	"github.com/aretw0/gestor/pkg/adapters/lifecycle"
	"github.com/aretw0/gestor/pkg/core"
)

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// run executes the command tree against dir and returns stdout.
func run(t *testing.T, ctx context.Context, dir string, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(append([]string{"--data-dir", dir}, args...))

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, context.Background(), dir, nil, args...)
	require.NoError(t, err)
	return out
}

func TestScenario(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, core.DefaultFileName)

	out := mustRun(t, dir, "info")
	assert.Contains(t, out, "exists: false")

	out = mustRun(t, dir, "ensure")
	assert.Equal(t, path+"\n", out)

	assert.Equal(t, "{}\n", mustRun(t, dir, "read"))

	out = mustRun(t, dir, "write", "--data", `{"students":["Ana"]}`)
	assert.Equal(t, core.DefaultFileName+" saved\n", out)

	assert.Equal(t, `{"students":["Ana"]}`+"\n", mustRun(t, dir, "read"))
	assert.Equal(t, `{"students":["Ana"]}`+"\n", mustRun(t, dir, "cached"))

	out = mustRun(t, dir, "reset")
	assert.Equal(t, core.DefaultFileName+" removed\n", out)
	assert.NoFileExists(t, path)

	assert.Equal(t, "\n", mustRun(t, dir, "read"))
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "ensure")
	want := core.Info{Name: core.DefaultFileName, Exists: true, Path: filepath.Join(dir, core.DefaultFileName)}

	t.Run("JSON", func(t *testing.T) {
		var got core.Info
		require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "info", "--json")), &got))
		assert.Equal(t, want, got)
	})

	t.Run("YAML", func(t *testing.T) {
		var got core.Info
		require.NoError(t, yaml.Unmarshal([]byte(mustRun(t, dir, "info", "--yaml")), &got))
		assert.Equal(t, want, got)
	})

	t.Run("Formats Are Exclusive", func(t *testing.T) {
		_, err := run(t, context.Background(), dir, nil, "info", "--json", "--yaml")
		assert.Error(t, err)
	})
}

func TestWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("From Stdin", func(t *testing.T) {
		dir := t.TempDir()
		_, err := run(t, ctx, dir, strings.NewReader(`[1,2,3]`), "write")
		require.NoError(t, err)
		assert.Equal(t, "[1,2,3]\n", mustRun(t, dir, "read"))
	})

	t.Run("From File", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(t.TempDir(), "payload.json")
		require.NoError(t, os.WriteFile(src, []byte(`{"from":"file"}`), 0644))

		mustRun(t, dir, "write", "--from-file", src)
		assert.Equal(t, `{"from":"file"}`+"\n", mustRun(t, dir, "read"))
	})

	t.Run("Empty Data Stores Placeholder", func(t *testing.T) {
		dir := t.TempDir()
		mustRun(t, dir, "write", "--data", "")

		data, err := os.ReadFile(filepath.Join(dir, core.DefaultFileName))
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("Rejects Invalid JSON", func(t *testing.T) {
		dir := t.TempDir()
		mustRun(t, dir, "write", "--data", `{"keep":1}`)

		_, err := run(t, ctx, dir, nil, "write", "--data", "{nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
		assert.Equal(t, `{"keep":1}`+"\n", mustRun(t, dir, "read"))
	})

	t.Run("Read Only", func(t *testing.T) {
		dir := t.TempDir()
		_, err := run(t, ctx, dir, nil, "--read-only", "write", "--data", `{}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read_only")
		assert.NoFileExists(t, filepath.Join(dir, core.DefaultFileName))
	})
}

func TestEnsureNew(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, core.DefaultFileName)
	mustRun(t, dir, "write", "--data", `{"students":["Ana"]}`)

	mustRun(t, dir, "ensure")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"students":["Ana"]}`, string(data))

	assert.Equal(t, path+"\n", mustRun(t, dir, "ensure", "--new"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestCorruptedFileFallsBackToCache(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "write", "--data", `{"ok":true}`)

	b, err := gestor.New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, core.DefaultFileName), []byte("{broken"), 0644))
	assert.Equal(t, `{"ok":true}`, b.Read(context.Background()))

	// A fresh process has nothing cached.
	assert.Equal(t, "\n", mustRun(t, dir, "read"))
}

func TestFileFlagAndConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "gestor.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("file_name: turmas.json\nlog_level: debug\n"), 0644))

	mustRun(t, dir, "--config", cfgPath, "write", "--data", `{}`)
	assert.FileExists(t, filepath.Join(dir, "turmas.json"))

	mustRun(t, dir, "--file", "outro.json", "write", "--data", `{}`)
	assert.FileExists(t, filepath.Join(dir, "outro.json"))

	_, err := run(t, context.Background(), dir, nil, "--config", filepath.Join(dir, "missing.yaml"), "info")
	assert.Error(t, err)
}

func TestDigest(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, context.Background(), dir, nil, "digest")
	assert.Error(t, err)

	mustRun(t, dir, "write", "--data", `{"b":2,"a":[1,2]}`)
	newGolden(t).Assert(t, "digest", []byte(mustRun(t, dir, "digest")))

	mustRun(t, dir, "write", "--data", "{\n  \"a\": [1, 2],\n  \"b\": 2\n}")
	newGolden(t).Assert(t, "digest", []byte(mustRun(t, dir, "digest")))
}

func TestState(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "write", "--data", `{"a":1}`)

	var state core.BridgeState
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "state")), &state))
	assert.Equal(t, core.BridgeState{
		Name:           core.DefaultFileName,
		Path:           filepath.Join(dir, core.DefaultFileName),
		CachedBytes:    len(`{"a":1}`),
		RepositoryType: "fs-repository",
	}, state)
}

func TestServe(t *testing.T) {
	dir := t.TempDir()
	session, err := os.ReadFile("testdata/serve_session.jsonl")
	require.NoError(t, err)

	out, err := run(t, context.Background(), dir, bytes.NewReader(session), "serve")
	require.NoError(t, err)
	newGolden(t).Assert(t, "serve_session", []byte(out))
}

func TestVersion(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version")
	assert.Regexp(t, `^gestor version \S+\n$`, out)

	t.Run("Ignores Broken Configuration", func(t *testing.T) {
		t.Setenv("GESTOR_MODE", "portable")
		out, err := run(t, context.Background(), t.TempDir(), nil,
			"--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
		require.NoError(t, err)
		assert.Contains(t, out, "gestor version")

		_, err = run(t, context.Background(), t.TempDir(), nil, "info")
		assert.ErrorIs(t, err, platform.ErrInvalidConfig)
	})
}

func TestWatch_UnknownType(t *testing.T) {
	_, err := run(t, context.Background(), t.TempDir(), nil, "watch", "--type", "rename")
	assert.ErrorIs(t, err, lifecycle.ErrUnknownEventType)
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of the watch command.
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

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "ensure")
	path := filepath.Join(dir, core.DefaultFileName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--data-dir", dir, "watch", "--type", "modify"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	// Keep rewriting until the watcher, started asynchronously, reports a change.
	i := 0
	require.Eventually(t, func() bool {
		i++
		_ = os.WriteFile(path, []byte(`{"n":`+strings.Repeat("1", i)+`}`), 0644)
		return strings.Contains(out.String(), "MODIFY "+path)
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
