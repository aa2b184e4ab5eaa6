//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	tf.UseBackend(StartBackend(t))
	require.NoError(t, tf.StartApp(), "Failed to start app")

	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Start typing"), "Should show the search overlay")

	// q is text while the overlay is open; close it first
	require.NoError(t, tf.Esc())
	require.True(t, tf.SeePlain("Search closed."))
	time.Sleep(100 * time.Millisecond)

	t.Logf("Sending 'q' to quit application...")
	require.NoError(t, tf.Quit())

	if err := tf.Wait(1500 * time.Millisecond); err != nil {
		t.Logf("'q' didn't work: %v, using Ctrl+C", err)
		tf.SendCtrlC()
		require.NoError(t, tf.Wait(2*time.Second), "Process should exit after Ctrl+C")
	}
}

func TestCtrlCExitsFromOverlay(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	tf.UseBackend(StartBackend(t))
	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	require.NoError(t, tf.SendCtrlC())
	require.NoError(t, tf.Wait(2*time.Second))
}
