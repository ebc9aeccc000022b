// ABOUTME: Tone driver for I2S-connected class-D amplifiers
// ABOUTME: Owns peripheral lifecycle, playback state and tone sequencing
package i2s

import (
	"log"
	"time"
)

// PeripheralState tracks the lifecycle of the audio peripheral.
type PeripheralState int

const (
	Uninitialized PeripheralState = iota
	Configured
	Suspended
)

func (s PeripheralState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Configured:
		return "configured"
	case Suspended:
		return "suspended"
	}
	return "unknown"
}

// PlaybackState tracks whether a tone is currently streaming.
type PlaybackState int

const (
	Idle PlaybackState = iota
	Playing
)

func (s PlaybackState) String() string {
	if s == Playing {
		return "playing"
	}
	return "idle"
}

// Driver synthesizes sine tones and streams them through a Peripheral.
//
// A single instance owns the transfer buffer and both state fields. All
// playback calls are synchronous and block for the tone's real-time
// duration. The driver provides no mutual exclusion: Suspend/Resume must
// not be called while a tone is in progress.
type Driver struct {
	cfg Config
	p   Peripheral

	// buf is reused for every chunk; no samples are retained across chunks.
	buf [BufferSize]int16

	periph      PeripheralState
	playback    PlaybackState
	synthLogged bool
}

// New creates a driver over the given peripheral. Initialize must be
// called before any playback operation.
func New(p Peripheral, cfg Config) *Driver {
	return &Driver{cfg: cfg.withDefaults(), p: p}
}

// Initialize brings the peripheral from power-off to a configured, enabled
// state. Calling it again after a successful run is a no-op success.
//
// The bound pins become hardware-owned: the caller must never configure
// them as generic digital I/O afterwards.
func (d *Driver) Initialize() bool {
	if d.periph != Uninitialized {
		log.Printf("i2s: already initialized")
		return true
	}

	log.Printf("i2s: configuring peripheral")
	d.configure()

	if d.cfg.Amp != nil {
		d.cfg.Amp.Set(true)
		d.cfg.Sleep(d.cfg.SettleDelay) // amplifier startup time
	} else {
		log.Printf("i2s: warning: amp enable line not wired, amplifier may stay disabled")
	}

	d.periph = Configured
	log.Printf("i2s: initialized, sample rate %d Hz", d.cfg.SampleRate)
	return true
}

// configure runs the register-level bring-up sequence. Wiring faults are
// not detectable at this layer; the sequence reports nothing.
func (d *Driver) configure() {
	// The clock source is treated as unconditionally available hardware;
	// this wait has no bound.
	d.p.ClearSignal(SignalClockStarted)
	d.p.StartClock()
	for !d.p.SignalSet(SignalClockStarted) {
		d.cfg.Yield()
	}
	d.p.ClearSignal(SignalClockStarted)

	d.p.Disable()
	d.cfg.Sleep(d.cfg.SettleDelay)

	// Disconnect everything first so no stale routing survives a warm
	// restart, then clear leftover completion flags.
	d.p.Unbind()
	d.p.ClearSignal(SignalTxFetched)
	d.p.ClearSignal(SignalStopped)
	d.p.MaskInterrupts()
	d.cfg.Sleep(d.cfg.SettleDelay)

	d.p.Bind(d.cfg.Pins)
	d.p.SetMode(Mode{
		MasterClockDiv:  d.cfg.MasterClockDiv,
		FrameRatio:      d.cfg.FrameRatio,
		SampleWidthBits: 16,
		LeftAligned:     true,
		MonoLeft:        true,
		TxOnly:          true,
	})

	d.p.Enable()
	d.cfg.Sleep(d.cfg.SettleDelay)
}

// PlayTone synthesizes and plays a single sine tone. Blocks until the
// whole duration has been transmitted. Duration is clamped to [1,
// MaxToneMs] and volume to [0, 100]; a driver that is not configured logs
// an error and performs no hardware access.
func (d *Driver) PlayTone(frequencyHz, durationMs, volume int) {
	if d.periph != Configured {
		log.Printf("i2s: playTone rejected, peripheral %v", d.periph)
		return
	}

	if durationMs < 1 {
		durationMs = 1
	}
	if durationMs > d.cfg.MaxToneMs {
		durationMs = d.cfg.MaxToneMs
	}

	remaining := d.cfg.SampleRate * durationMs / 1000
	log.Printf("i2s: tone %d Hz, %d ms, volume %d", frequencyHz, durationMs, volume)

	d.playback = Playing
	defer func() { d.playback = Idle }()

	for remaining > 0 {
		chunk := remaining
		if chunk > BufferSize {
			chunk = BufferSize
		}

		d.synthesize(frequencyHz, chunk, volume)
		d.startTransfer(chunk)
		d.awaitCompletion(chunk)

		remaining -= chunk
	}
}

// PlayMelody plays frequency/duration pairs in order at one volume, with a
// fixed silent gap between notes. Mismatched slice lengths are refused
// outright rather than playing a partial sequence.
func (d *Driver) PlayMelody(frequencies, durations []int, volume int) {
	if len(frequencies) != len(durations) {
		log.Printf("i2s: playMelody rejected, %d frequencies vs %d durations",
			len(frequencies), len(durations))
		return
	}

	for i, f := range frequencies {
		d.PlayTone(f, durations[i], volume)

		if i < len(frequencies)-1 {
			d.cfg.Sleep(time.Duration(d.cfg.NoteGapMs) * time.Millisecond)
		}
	}
}

// Stop halts any active transfer and blocks, without bound, until the
// peripheral reports it has stopped.
func (d *Driver) Stop() {
	if d.periph != Configured {
		return
	}

	d.p.Stop()
	for !d.p.SignalSet(SignalStopped) {
		d.cfg.Yield()
	}

	d.playback = Idle
}

// Suspend stops playback and disables the peripheral for power saving.
// Pin and mode configuration survive; Resume restores operation.
func (d *Driver) Suspend() {
	if d.periph != Configured {
		return
	}

	log.Printf("i2s: suspending")

	d.Stop()
	d.p.Disable()

	if d.cfg.Amp != nil {
		d.cfg.Amp.Set(false)
	}

	d.periph = Suspended
}

// Resume re-enables a suspended peripheral. Only the enable bit was
// toggled by Suspend, so the full configuration sequence is not re-run.
func (d *Driver) Resume() {
	if d.periph != Suspended {
		return
	}

	log.Printf("i2s: resuming")

	if d.cfg.Amp != nil {
		d.cfg.Amp.Set(true)
		d.cfg.Sleep(d.cfg.SettleDelay)
	}

	d.p.Enable()
	d.periph = Configured
}

// IsPlaying reports whether a tone or melody call is actively streaming.
func (d *Driver) IsPlaying() bool {
	return d.playback == Playing
}

// State returns the peripheral lifecycle state.
func (d *Driver) State() PeripheralState {
	return d.periph
}
