// ABOUTME: Driver configuration with firmware-equivalent defaults
// ABOUTME: Pins, timing constants and injectable host primitives
package i2s

import (
	"runtime"
	"time"
)

// BufferSize is the sample capacity of the driver's transfer buffer.
// Each chunk of a longer tone is bounded by this many samples.
const BufferSize = 256

// Defaults matching the shipped hardware configuration.
const (
	DefaultSampleRate     = 16000 // Hz
	DefaultMaxToneMs      = 2000  // cap on a single tone to bound blocking
	DefaultNoteGapMs      = 20    // silence between melody notes
	DefaultMasterClockDiv = 32    // 32 MHz source / 32 = 1 MHz MCK
	DefaultFrameRatio     = 64    // 1 MHz / 64 = ~15.6 kHz word clock
)

const (
	defaultFetchTimeout = 50 * time.Millisecond
	defaultStopTimeout  = 100 * time.Millisecond
	defaultSettleDelay  = 10 * time.Millisecond
)

// Config holds driver configuration. The zero value of every field has a
// usable default applied by New; Pins is the only field a caller must set
// for real hardware.
type Config struct {
	// Pins are the GPIO numbers for the bit clock, word-select and data-out
	// signals.
	Pins PinConfig

	// Amp drives the amplifier enable line. Nil means the line is not
	// wired; the driver logs a warning and otherwise runs normally.
	Amp AmpLine

	// SampleRate is the nominal playback rate in Hz.
	SampleRate int

	// MaxToneMs caps a single tone's duration. Longer requests are clamped.
	MaxToneMs int

	// NoteGapMs is the silent gap inserted between melody notes.
	NoteGapMs int

	// MasterClockDiv and FrameRatio select the peripheral clocking that
	// realizes SampleRate.
	MasterClockDiv int
	FrameRatio     int

	// FetchTimeout bounds the wait for the transfer engine to latch the
	// buffer pointer. StopTimeout bounds the wait for the stopped signal
	// after a per-chunk stop task.
	FetchTimeout time.Duration
	StopTimeout  time.Duration

	// SettleDelay is applied after every enable/disable transition and
	// after raising the amplifier enable line.
	SettleDelay time.Duration

	// Host primitives. Injectable so tests can run against fakes.
	Sleep func(time.Duration) // blocking millisecond-granularity sleep
	Yield func()              // cede the processor inside wait loops
	Now   func() time.Time    // millisecond clock for timeout bounds
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.MaxToneMs == 0 {
		c.MaxToneMs = DefaultMaxToneMs
	}
	if c.NoteGapMs == 0 {
		c.NoteGapMs = DefaultNoteGapMs
	}
	if c.MasterClockDiv == 0 {
		c.MasterClockDiv = DefaultMasterClockDiv
	}
	if c.FrameRatio == 0 {
		c.FrameRatio = DefaultFrameRatio
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = defaultFetchTimeout
	}
	if c.StopTimeout == 0 {
		c.StopTimeout = defaultStopTimeout
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = defaultSettleDelay
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}
	if c.Yield == nil {
		c.Yield = runtime.Gosched
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}
