// ABOUTME: Tests for transfer scheduling and completion waiting
// ABOUTME: Covers signal clearing, timeout paths and minimum sleep
package i2s

import (
	"testing"
	"time"
)

func TestStartTransferClearsSignals(t *testing.T) {
	env := newTestEnv(Config{})
	env.d.Initialize()

	// Stale flags from a previous chunk must not satisfy the next wait.
	env.p.signals[SignalTxFetched] = true
	env.p.signals[SignalStopped] = true
	env.p.failFetch = true

	env.d.startTransfer(16)

	if env.p.signals[SignalTxFetched] {
		t.Error("tx-fetched signal not cleared before start")
	}
	if env.p.signals[SignalStopped] {
		t.Error("stopped signal not cleared before start")
	}
	if env.p.starts != 1 {
		t.Errorf("expected 1 start task, got %d", env.p.starts)
	}
}

func TestAwaitCompletionFetchTimeout(t *testing.T) {
	env := newTestEnv(Config{})
	env.d.Initialize()
	env.p.failFetch = true

	// One chunk: 256 samples at 16ms.
	env.d.PlayTone(440, 16, 50)

	if env.p.starts != 1 {
		t.Fatalf("expected 1 start task, got %d", env.p.starts)
	}
	// On a fetch timeout no stop task is issued; the chunk is abandoned.
	if env.p.stops != 0 {
		t.Errorf("expected no stop task on fetch timeout, got %d", env.p.stops)
	}
	if env.d.IsPlaying() {
		t.Error("IsPlaying should return to false after timeout")
	}
}

func TestAwaitCompletionStopTimeout(t *testing.T) {
	env := newTestEnv(Config{})
	env.d.Initialize()
	env.p.failStop = true

	env.d.PlayTone(440, 16, 50)

	if env.p.stops != 1 {
		t.Errorf("expected stop task despite missing signal, got %d", env.p.stops)
	}
	if env.d.IsPlaying() {
		t.Error("IsPlaying should return to false after stop timeout")
	}
}

func TestAwaitCompletionSleepsPlaybackDuration(t *testing.T) {
	env := newTestEnv(Config{})
	env.d.Initialize()

	env.p.signals[SignalTxFetched] = true
	before := env.slept
	env.d.awaitCompletion(256)

	// 256 samples at 16kHz take exactly 16ms.
	if got := env.slept - before; got != 16*time.Millisecond {
		t.Errorf("slept %v, want 16ms", got)
	}
}

func TestAwaitCompletionMinimumOneMillisecond(t *testing.T) {
	env := newTestEnv(Config{})
	env.d.Initialize()

	env.p.signals[SignalTxFetched] = true
	before := env.slept
	env.d.awaitCompletion(1)

	if got := env.slept - before; got != time.Millisecond {
		t.Errorf("slept %v, want 1ms minimum", got)
	}
}

func TestWaitSignal(t *testing.T) {
	env := newTestEnv(Config{})

	env.p.signals[SignalStopped] = true
	if !env.d.waitSignal(SignalStopped, time.Millisecond) {
		t.Error("expected true for raised signal")
	}

	env.p.signals[SignalStopped] = false
	if env.d.waitSignal(SignalStopped, 5*time.Millisecond) {
		t.Error("expected false for absent signal")
	}
}
