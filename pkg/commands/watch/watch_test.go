// pkg/commands/watch/watch_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem, fsnotify
// PURPOSE: Test debounced re-sync on rules document changes

package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	synccmd "github.com/arthur-debert/rulesync/pkg/commands/sync"
	"github.com/arthur-debert/rulesync/pkg/commands/watch"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Rules:   config.RulesConfig{File: "agentic_rules.md"},
		Targets: map[string]string{"x": "X.md"},
		Output:  config.OutputConfig{Format: "auto"},
	}
}

func waitForSync(t *testing.T, ch <-chan *synccmd.SyncResult) *synccmd.SyncResult {
	t.Helper()
	select {
	case result := <-ch:
		return result
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for sync")
		return nil
	}
}

func TestWatcherResyncsOnChange(t *testing.T) {
	dir := t.TempDir()
	rulesFile := testutil.WriteFile(t, dir, "agentic_rules.md", "A\n")

	results := make(chan *synccmd.SyncResult, 4)
	watcher, err := watch.NewWatcher(watch.WatchOptions{
		Sync: synccmd.SyncOptions{
			RulesFile:   rulesFile,
			TargetNames: []string{"x"},
			DryRun:      true,
			Config:      testConfig(),
		},
		Debounce: 50 * time.Millisecond,
		OnSync: func(result *synccmd.SyncResult, err error) {
			require.NoError(t, err)
			results <- result
		},
	})
	require.NoError(t, err)
	assert.Equal(t, rulesFile, watcher.RulesFile())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(rulesFile, []byte("A\nB\n"), 0644))

	result := waitForSync(t, results)
	require.Len(t, result.Targets, 1)
	assert.Equal(t, "A\nB\n", result.Targets[0].Content)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	rulesFile := testutil.WriteFile(t, dir, "agentic_rules.md", "A\n")

	results := make(chan *synccmd.SyncResult, 16)
	watcher, err := watch.NewWatcher(watch.WatchOptions{
		Sync: synccmd.SyncOptions{
			RulesFile: rulesFile,
			DryRun:    true,
			Config:    testConfig(),
		},
		Debounce: 200 * time.Millisecond,
		OnSync: func(result *synccmd.SyncResult, err error) {
			require.NoError(t, err)
			results <- result
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))
	defer watcher.Stop()

	// A burst of writes within the debounce window collapses into one sync
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(rulesFile, []byte("A\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	waitForSync(t, results)
	select {
	case <-results:
		t.Fatal("burst produced more than one sync")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	rulesFile := testutil.WriteFile(t, dir, "agentic_rules.md", "A\n")

	results := make(chan *synccmd.SyncResult, 4)
	watcher, err := watch.NewWatcher(watch.WatchOptions{
		Sync: synccmd.SyncOptions{
			RulesFile: rulesFile,
			DryRun:    true,
			Config:    testConfig(),
		},
		Debounce: 50 * time.Millisecond,
		OnSync: func(result *synccmd.SyncResult, err error) {
			results <- result
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("noise\n"), 0644))

	select {
	case <-results:
		t.Fatal("sibling file change triggered a sync")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	rulesFile := testutil.WriteFile(t, dir, "agentic_rules.md", "A\n")

	watcher, err := watch.NewWatcher(watch.WatchOptions{
		Sync: synccmd.SyncOptions{RulesFile: rulesFile, DryRun: true, Config: testConfig()},
	})
	require.NoError(t, err)

	require.NoError(t, watcher.Start(context.Background()))
	watcher.Stop()
	watcher.Stop()
}

func TestWatchRunsInitialSync(t *testing.T) {
	dir := t.TempDir()
	rulesFile := testutil.WriteFile(t, dir, "agentic_rules.md", "A\n")

	results := make(chan *synccmd.SyncResult, 4)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- watch.Watch(ctx, watch.WatchOptions{
			Sync: synccmd.SyncOptions{
				RulesFile: rulesFile,
				DryRun:    true,
				Config:    testConfig(),
			},
			Debounce: 50 * time.Millisecond,
			OnSync: func(result *synccmd.SyncResult, err error) {
				require.NoError(t, err)
				results <- result
			},
		})
	}()

	// The initial sync runs before any file change
	result := waitForSync(t, results)
	assert.True(t, result.DryRun)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not return after cancellation")
	}
}

func TestWatchFailsFastOnBadDocument(t *testing.T) {
	dir := t.TempDir()
	rulesFile := testutil.WriteFile(t, dir, "agentic_rules.md", "::only ,\n")

	err := watch.Watch(context.Background(), watch.WatchOptions{
		Sync: synccmd.SyncOptions{
			RulesFile: rulesFile,
			DryRun:    true,
			Config:    testConfig(),
		},
	})
	assert.Error(t, err)
}
