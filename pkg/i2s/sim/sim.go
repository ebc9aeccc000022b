// ABOUTME: Software simulation of the I2S peripheral for host testing
// ABOUTME: Models completion-signal timing and captures transferred chunks
package sim

import (
	"log"
	"sync"
	"time"

	"github.com/oro-haptics/chime-go/pkg/i2s"
)

// Sink receives every chunk the simulated peripheral transmits. Chunks
// arrive in transfer order; the slice is owned by the sink after the call.
type Sink interface {
	Write(samples []int16) error
	Close() error
}

// Config adjusts the simulation's signal timing.
type Config struct {
	// Sink receives transmitted chunks. Nil discards them.
	Sink Sink

	// FetchDelay postpones the tx-fetched signal after a start task.
	// Zero raises it synchronously, like real transfer-engine latency
	// would appear to millisecond-granularity polling. Set it beyond the
	// driver's fetch timeout to exercise the timeout path.
	FetchDelay time.Duration

	// StopDelay postpones the stopped signal after a stop task.
	StopDelay time.Duration
}

// Peripheral is an in-memory i2s.Peripheral. Safe for the driver's
// single-threaded access pattern; signal raising may come from timer
// goroutines, so internal state is mutex-guarded.
type Peripheral struct {
	cfg Config

	mu       sync.Mutex
	signals  map[i2s.Signal]bool
	enabled  bool
	bound    bool
	masked   bool
	pins     i2s.PinConfig
	mode     i2s.Mode
	transfer []int16

	starts      int
	stops       int
	transferred int
	lastChunk   []int16
}

// New creates a simulated peripheral.
func New(cfg Config) *Peripheral {
	return &Peripheral{
		cfg:     cfg,
		signals: make(map[i2s.Signal]bool),
	}
}

func (p *Peripheral) StartClock() {
	// The simulated clock source is always ready.
	p.raise(i2s.SignalClockStarted, 0)
}

func (p *Peripheral) Bind(pins i2s.PinConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pins = pins
	p.bound = true
}

func (p *Peripheral) Unbind() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pins = i2s.PinConfig{}
	p.bound = false
}

func (p *Peripheral) SetMode(mode i2s.Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
}

func (p *Peripheral) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = true
}

func (p *Peripheral) Disable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = false
}

func (p *Peripheral) MaskInterrupts() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.masked = true
}

func (p *Peripheral) ClearSignal(sig i2s.Signal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signals[sig] = false
}

func (p *Peripheral) SignalSet(sig i2s.Signal) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signals[sig]
}

func (p *Peripheral) SetTransfer(samples []int16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transfer = samples
}

// Start latches the transfer buffer, forwards it to the sink and raises
// the tx-fetched signal per the configured delay.
func (p *Peripheral) Start() {
	p.mu.Lock()
	chunk := make([]int16, len(p.transfer))
	copy(chunk, p.transfer)
	p.starts++
	p.transferred += len(chunk)
	p.lastChunk = chunk
	sink := p.cfg.Sink
	p.mu.Unlock()

	if sink != nil {
		if err := sink.Write(chunk); err != nil {
			log.Printf("sim: sink write failed: %v", err)
		}
	}

	p.raise(i2s.SignalTxFetched, p.cfg.FetchDelay)
}

func (p *Peripheral) Stop() {
	p.mu.Lock()
	p.stops++
	p.mu.Unlock()

	p.raise(i2s.SignalStopped, p.cfg.StopDelay)
}

// raise sets a signal now or after a delay.
func (p *Peripheral) raise(sig i2s.Signal, delay time.Duration) {
	set := func() {
		p.mu.Lock()
		p.signals[sig] = true
		p.mu.Unlock()
	}

	if delay == 0 {
		set()
		return
	}
	time.AfterFunc(delay, set)
}

// Inspection helpers for tests and tooling.

func (p *Peripheral) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

func (p *Peripheral) Bound() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bound
}

func (p *Peripheral) Pins() i2s.PinConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pins
}

func (p *Peripheral) Mode() i2s.Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Starts returns how many start tasks were issued.
func (p *Peripheral) Starts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.starts
}

// Stops returns how many stop tasks were issued.
func (p *Peripheral) Stops() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stops
}

// Transferred returns the total sample count across all start tasks.
func (p *Peripheral) Transferred() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transferred
}

// LastChunk returns a copy of the most recently latched chunk.
func (p *Peripheral) LastChunk() []int16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	chunk := make([]int16, len(p.lastChunk))
	copy(chunk, p.lastChunk)
	return chunk
}

// Line is a recorded digital output, usable as the amplifier enable line.
type Line struct {
	mu   sync.Mutex
	high bool
	sets int
}

func (l *Line) Set(high bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.high = high
	l.sets++
}

// High reports the line's current level.
func (l *Line) High() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.high
}

// Sets returns how many times the line was driven.
func (l *Line) Sets() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sets
}
