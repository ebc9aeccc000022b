// ABOUTME: Chunked transfer scheduling and completion waiting
// ABOUTME: Two-phase wait: fetch signal, playback-duration sleep, stop signal
package i2s

import (
	"log"
	"time"
)

// startTransfer binds the first count buffered samples to the transfer
// engine, clears stale completion flags and issues the start task.
// Non-blocking; the hardware streams from the buffer after this returns.
func (d *Driver) startTransfer(count int) {
	d.p.SetTransfer(d.buf[:count])

	d.p.ClearSignal(SignalTxFetched)
	d.p.ClearSignal(SignalStopped)

	d.p.Start()
}

// awaitCompletion blocks until the chunk started by startTransfer has
// been transmitted. The hardware exposes no precise last-sample signal at
// this layer, so the wait is conservative: confirm the buffer pointer was
// fetched, sleep the chunk's computed playback duration, then stop and
// wait for the stopped signal.
//
// On a fetch timeout the function returns without issuing a stop task,
// leaving the peripheral potentially still transmitting stale buffer
// contents. Preserved as observed on hardware, pending confirmation that
// a forced stop is safe there.
func (d *Driver) awaitCompletion(count int) {
	playbackMs := (count*1000 + d.cfg.SampleRate - 1) / d.cfg.SampleRate
	if playbackMs < 1 {
		playbackMs = 1
	}

	if !d.waitSignal(SignalTxFetched, d.cfg.FetchTimeout) {
		log.Printf("i2s: timeout waiting for %v signal", SignalTxFetched)
		return
	}
	d.p.ClearSignal(SignalTxFetched)

	d.cfg.Sleep(time.Duration(playbackMs) * time.Millisecond)

	d.p.Stop()

	if !d.waitSignal(SignalStopped, d.cfg.StopTimeout) {
		log.Printf("i2s: timeout waiting for %v signal", SignalStopped)
		return
	}
	d.p.ClearSignal(SignalStopped)
}

// waitSignal polls for a completion flag, yielding each iteration, until
// it appears or the timeout elapses.
func (d *Driver) waitSignal(sig Signal, timeout time.Duration) bool {
	deadline := d.cfg.Now().Add(timeout)

	for !d.p.SignalSet(sig) {
		if d.cfg.Now().After(deadline) {
			return false
		}
		d.cfg.Yield()
	}

	return true
}
