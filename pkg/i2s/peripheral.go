// ABOUTME: Hardware abstraction for the serial audio peripheral
// ABOUTME: Defines the Peripheral interface, signals, pins and mode parameters
package i2s

// Signal identifies a hardware completion flag raised by the peripheral
// or its clock source. Signals stay set until cleared.
type Signal int

const (
	// SignalClockStarted indicates the high-frequency clock source is stable.
	SignalClockStarted Signal = iota

	// SignalTxFetched indicates the transfer engine has latched the buffer
	// pointer for the current transfer.
	SignalTxFetched

	// SignalStopped indicates the peripheral has halted after a stop task.
	SignalStopped
)

func (s Signal) String() string {
	switch s {
	case SignalClockStarted:
		return "clock-started"
	case SignalTxFetched:
		return "tx-fetched"
	case SignalStopped:
		return "stopped"
	}
	return "unknown"
}

// PinConfig holds the GPIO numbers bound to the serial audio signals.
// The data-in line is never bound; the receive path is unused.
type PinConfig struct {
	SCK   int // bit clock
	LRCK  int // word-select clock
	SDOut int // serial data out
}

// Mode describes the transmit configuration applied before enabling the
// peripheral. Backends translate these into their register encodings.
type Mode struct {
	MasterClockDiv  int  // divider applied to the clock source for MCK
	FrameRatio      int  // MCK ticks per audio frame (LRCK period)
	SampleWidthBits int  // bits per sample on the wire
	LeftAligned     bool // sample alignment within the frame slot
	MonoLeft        bool // duplicate the single source channel on the left lane
	TxOnly          bool // transmit-only, receive path disabled
}

// Peripheral abstracts the serial audio transmitter. Implementations exist
// for memory-mapped hardware (nrf52) and for host-side simulation (sim).
//
// All methods are non-blocking register-style operations; the driver owns
// every wait loop so yield and timeout policy live in one place.
type Peripheral interface {
	// StartClock requests the high-frequency clock source. Completion is
	// observed through SignalClockStarted.
	StartClock()

	// Bind connects the signal pins. The peripheral takes ownership of the
	// pins; callers must not reconfigure them as generic digital I/O.
	Bind(pins PinConfig)

	// Unbind disconnects every signal pin, guaranteeing no stale routing.
	Unbind()

	// SetMode applies the transmit configuration. Only valid while disabled.
	SetMode(mode Mode)

	Enable()
	Disable()

	// MaskInterrupts disables all peripheral-generated interrupts; the
	// driver polls completion signals instead.
	MaskInterrupts()

	// ClearSignal resets a completion flag.
	ClearSignal(sig Signal)

	// SignalSet reports whether a completion flag is currently raised.
	SignalSet(sig Signal) bool

	// SetTransfer binds the sample buffer and word count to the transfer
	// engine. The slice must stay valid until the transfer stops.
	SetTransfer(samples []int16)

	// Start issues the transfer start task. Returns immediately.
	Start()

	// Stop issues the transfer stop task. Returns immediately; completion
	// is observed through SignalStopped.
	Stop()
}

// AmpLine is the digital output controlling an external amplifier's
// enable input. A nil AmpLine is a valid configuration; the driver then
// runs without power sequencing the amplifier.
type AmpLine interface {
	Set(high bool)
}
