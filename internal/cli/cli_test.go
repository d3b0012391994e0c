package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOptions(t *testing.T) (Options, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return Options{ConfigPath: filepath.Join(t.TempDir(), "tour.yaml"), Out: &buf}, &buf
}

func TestRunValidate(t *testing.T) {
	opts, out := newOptions(t)
	require.NoError(t, RunValidate(opts))
	assert.Contains(t, out.String(), "Tour is valid: 11 sections")
	assert.Contains(t, out.String(), "(embedded)")
}

func TestRunValidate_BadConfig(t *testing.T) {
	opts, _ := newOptions(t)
	require.NoError(t, os.WriteFile(opts.ConfigPath, []byte("playback:\n  chars_per_tick: 0\n"), 0644))

	err := RunValidate(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestRunTOC(t *testing.T) {
	opts, out := newOptions(t)
	require.NoError(t, RunTOC(opts))

	got := out.String()
	for _, want := range []string{"section-00", "section-10", "Terminal Agents for Everyone", "playback", "hero"} {
		assert.Contains(t, got, want)
	}
}

func TestRunPlay_Script(t *testing.T) {
	opts, out := newOptions(t)
	err := RunPlay(context.Background(), opts, PlayOptions{Script: "hero", Instant: true})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Make me a website that teaches people about coding agents.")
	assert.Contains(t, got, "Crafting response...")
}

func TestRunPlay_UnknownScript(t *testing.T) {
	opts, _ := newOptions(t)
	err := RunPlay(context.Background(), opts, PlayOptions{Script: "missing", Instant: true})
	assert.Error(t, err)
}

func TestRunPlay_UnknownSection(t *testing.T) {
	opts, _ := newOptions(t)
	err := RunPlay(context.Background(), opts, PlayOptions{Section: "nope", Plain: true, Instant: true})
	assert.Error(t, err)
}

func TestRunPlay_PlainPage(t *testing.T) {
	opts, out := newOptions(t)
	err := RunPlay(context.Background(), opts, PlayOptions{Plain: true, Instant: true})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Terminal Agents for Everyone")
	assert.Contains(t, got, "Crafting response...")
}

func TestRunPlay_CancelledIsClean(t *testing.T) {
	opts, _ := newOptions(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunPlay(ctx, opts, PlayOptions{Script: "hero", Instant: true})
	assert.NoError(t, err)
}

func TestRunShell(t *testing.T) {
	opts, out := newOptions(t)
	in := strings.NewReader("ls\necho hello\nfoobar\nmkdir test\nls\nexit\npwd\n")

	require.NoError(t, RunShell(context.Background(), opts, in))

	got := out.String()
	assert.Contains(t, got, "Welcome! Try the commands above.")
	assert.Contains(t, got, "Documents")
	assert.Contains(t, got, "hello")
	assert.Contains(t, got, "command not found: foobar")
	assert.Contains(t, got, "test")
	assert.True(t, strings.HasSuffix(got, "Bye!\n"), "input after exit is not run")
}

func TestRunShell_EOF(t *testing.T) {
	opts, out := newOptions(t)
	require.NoError(t, RunShell(context.Background(), opts, strings.NewReader("cd ..\n")))
	assert.Contains(t, out.String(), "/Users $ ")
}

func TestRunShell_Cancelled(t *testing.T) {
	opts, _ := newOptions(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// a reader that never returns
	r, w := io.Pipe()
	defer w.Close()
	assert.NoError(t, RunShell(ctx, opts, r))
}

func TestRunServe(t *testing.T) {
	opts, out := newOptions(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		errs <- RunServe(ctx, opts, ServeOptions{Addr: "127.0.0.1:0", Ready: ready})
	}()

	var addr string
	select {
	case addr = <-ready:
	case err := <-errs:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errs:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, out.String(), "Server stopped gracefully")
}

func TestRunServe_AddressInUse(t *testing.T) {
	ln, err := listen("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	opts, _ := newOptions(t)
	err = RunServe(context.Background(), opts, ServeOptions{Addr: ln.Addr().String()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
