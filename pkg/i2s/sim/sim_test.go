// ABOUTME: Tests for the simulated peripheral
// ABOUTME: Drives the real driver through the simulation end to end
package sim

import (
	"testing"
	"time"

	"github.com/oro-haptics/chime-go/pkg/i2s"
)

// collectSink accumulates every transmitted chunk.
type collectSink struct {
	chunks [][]int16
	closed bool
}

func (s *collectSink) Write(samples []int16) error {
	s.chunks = append(s.chunks, samples)
	return nil
}

func (s *collectSink) Close() error {
	s.closed = true
	return nil
}

func fastConfig() i2s.Config {
	return i2s.Config{
		Pins:  i2s.PinConfig{SCK: 3, LRCK: 28, SDOut: 2},
		Sleep: func(time.Duration) {},
		Yield: func() {},
	}
}

func TestDriverPlaysThroughSimulation(t *testing.T) {
	sink := &collectSink{}
	p := New(Config{Sink: sink})
	d := i2s.New(p, fastConfig())

	if !d.Initialize() {
		t.Fatal("Initialize returned false")
	}
	if !p.Enabled() {
		t.Error("peripheral not enabled")
	}
	if !p.Bound() {
		t.Error("pins not bound")
	}

	// 100ms at 16kHz = 1600 samples = 7 chunks (6x256 + 64).
	d.PlayTone(660, 100, 75)

	if p.Starts() != 7 {
		t.Errorf("expected 7 transfers, got %d", p.Starts())
	}
	if p.Transferred() != 1600 {
		t.Errorf("expected 1600 samples, got %d", p.Transferred())
	}
	if len(sink.chunks) != 7 {
		t.Fatalf("sink received %d chunks, want 7", len(sink.chunks))
	}
	if len(sink.chunks[6]) != 64 {
		t.Errorf("final chunk length %d, want 64", len(sink.chunks[6]))
	}
}

func TestFetchDelayExercisesTimeout(t *testing.T) {
	p := New(Config{FetchDelay: 100 * time.Millisecond})

	cfg := fastConfig()
	cfg.FetchTimeout = time.Millisecond
	d := i2s.New(p, cfg)
	d.Initialize()

	// Single chunk; the fetch signal arrives too late.
	d.PlayTone(440, 10, 50)

	if p.Starts() != 1 {
		t.Fatalf("expected 1 start, got %d", p.Starts())
	}
	if p.Stops() != 0 {
		t.Errorf("expected no stop task after fetch timeout, got %d", p.Stops())
	}
}

func TestModeAndPinsRecorded(t *testing.T) {
	p := New(Config{})
	d := i2s.New(p, fastConfig())
	d.Initialize()

	pins := p.Pins()
	if pins.SCK != 3 || pins.LRCK != 28 || pins.SDOut != 2 {
		t.Errorf("unexpected pins: %+v", pins)
	}

	mode := p.Mode()
	if mode.SampleWidthBits != 16 || !mode.MonoLeft || !mode.TxOnly {
		t.Errorf("unexpected mode: %+v", mode)
	}
}

func TestLastChunkIsCopied(t *testing.T) {
	p := New(Config{})
	d := i2s.New(p, fastConfig())
	d.Initialize()

	d.PlayTone(440, 10, 50)

	chunk := p.LastChunk()
	if len(chunk) != 160 {
		t.Fatalf("last chunk length %d, want 160", len(chunk))
	}

	// Mutating the returned slice must not affect the recording.
	chunk[0] = 12345
	if again := p.LastChunk(); again[0] == 12345 {
		t.Error("LastChunk returned shared backing storage")
	}
}

func TestLine(t *testing.T) {
	line := &Line{}

	line.Set(true)
	if !line.High() {
		t.Error("expected high")
	}

	line.Set(false)
	if line.High() {
		t.Error("expected low")
	}
	if line.Sets() != 2 {
		t.Errorf("expected 2 sets, got %d", line.Sets())
	}
}
