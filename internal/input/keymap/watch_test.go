package keymap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.toml")
	if err := os.WriteFile(path, []byte("[[bindings]]\nkeys = \"ctrl+q\"\naction = \"app.quit\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Keymap, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 20*time.Millisecond, func(km *Keymap) { changes <- km }, nil)
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	next := "[[bindings]]\nkeys = \"ctrl+w\"\naction = \"app.quit\"\n"
	if err := os.WriteFile(path, []byte(next), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case km := <-changes:
		if len(km.Bindings) != 1 || km.Bindings[0].Keys[0] != "ctrl+w" {
			t.Errorf("reloaded keymap = %+v", km)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchReportsBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.toml")
	if err := os.WriteFile(path, []byte("[[bindings]]\nkeys = \"ctrl+q\"\naction = \"app.quit\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 4)
	go func() {
		_ = Watch(ctx, path, 20*time.Millisecond, func(*Keymap) {}, func(err error) { errs <- err })
	}()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("[[bindings]]\nkeys = \"hyper+q\"\naction = \"app.quit\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errs:
		if err == nil {
			t.Error("expected a load error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for error")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.toml")
	if err := os.WriteFile(path, []byte("[[bindings]]\nkeys = \"ctrl+q\"\naction = \"app.quit\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Keymap, 4)
	go func() {
		_ = Watch(ctx, path, 20*time.Millisecond, func(km *Keymap) { changes <- km }, nil)
	}()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case km := <-changes:
		t.Errorf("unexpected reload: %+v", km)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "keys.toml"), 0, func(*Keymap) {}, nil)
	if err == nil {
		t.Error("Watch() on a missing directory should fail")
	}
}
