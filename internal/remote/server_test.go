// ABOUTME: Tests for the remote control server
// ABOUTME: Covers command validation, serialization and busy replies
package remote

import (
	"sync"
	"testing"
	"time"
)

// fakePlayer records calls; PlayTone can be made to block.
type fakePlayer struct {
	mu       sync.Mutex
	tones    []Command
	melodies int
	stops    int
	playing  bool
	block    chan struct{}
}

func (f *fakePlayer) PlayTone(frequencyHz, durationMs, volume int) {
	f.mu.Lock()
	f.tones = append(f.tones, Command{Frequency: frequencyHz, DurationMs: durationMs, Volume: volume})
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
}

func (f *fakePlayer) toneCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tones)
}

func (f *fakePlayer) PlayMelody(frequencies, durations []int, volume int) {
	f.melodies++
}

func (f *fakePlayer) Stop()           { f.stops++ }
func (f *fakePlayer) IsPlaying() bool { return f.playing }

func TestExecuteTone(t *testing.T) {
	p := &fakePlayer{}
	s := New(Config{}, p)

	reply := s.execute(Command{Type: "tone", Frequency: 440, DurationMs: 100, Volume: 50})

	if !reply.OK {
		t.Fatalf("expected OK, got error %q", reply.Error)
	}
	if len(p.tones) != 1 {
		t.Fatalf("expected 1 tone, got %d", len(p.tones))
	}
	if p.tones[0].Frequency != 440 || p.tones[0].DurationMs != 100 || p.tones[0].Volume != 50 {
		t.Errorf("unexpected tone call: %+v", p.tones[0])
	}
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{"tone without frequency", Command{Type: "tone", DurationMs: 100}},
		{"tone without duration", Command{Type: "tone", Frequency: 440}},
		{"empty melody", Command{Type: "melody", Volume: 50}},
		{"mismatched melody", Command{Type: "melody", Frequencies: []int{440, 550}, Durations: []int{100}}},
		{"unknown type", Command{Type: "chirp"}},
	}

	for _, tt := range tests {
		p := &fakePlayer{}
		s := New(Config{}, p)

		reply := s.execute(tt.cmd)

		if reply.OK {
			t.Errorf("%s: expected error reply", tt.name)
		}
		if len(p.tones) != 0 || p.melodies != 0 {
			t.Errorf("%s: driver should not be touched", tt.name)
		}
	}
}

func TestExecuteStop(t *testing.T) {
	p := &fakePlayer{}
	s := New(Config{}, p)

	reply := s.execute(Command{Type: "stop"})

	if !reply.OK {
		t.Fatalf("expected OK, got %q", reply.Error)
	}
	if p.stops != 1 {
		t.Errorf("expected 1 stop, got %d", p.stops)
	}
}

func TestDispatchStatusInline(t *testing.T) {
	p := &fakePlayer{playing: true}
	s := New(Config{}, p)

	// No worker running; status must still answer.
	reply := s.dispatch(Command{Type: "status"})

	if !reply.OK || !reply.Playing {
		t.Errorf("unexpected status reply: %+v", reply)
	}
}

func TestDispatchAcceptsFirstCommandAtStartup(t *testing.T) {
	p := &fakePlayer{}
	s := New(Config{}, p)

	go s.playLoop()
	defer s.Stop()

	// No settling delay: the very first command must reach the worker
	// even if dispatch runs before the worker parks at its receive.
	reply := s.dispatch(Command{Type: "tone", Frequency: 440, DurationMs: 100})

	if !reply.OK {
		t.Fatalf("expected OK, got error %q", reply.Error)
	}
	if p.toneCount() != 1 {
		t.Errorf("expected 1 tone, got %d", p.toneCount())
	}
}

func TestDispatchBusyWhilePlaying(t *testing.T) {
	p := &fakePlayer{block: make(chan struct{})}
	s := New(Config{}, p)

	go s.playLoop()
	defer s.Stop()

	// Occupy the worker with a blocking tone.
	first := make(chan Reply, 1)
	go func() {
		first <- s.dispatch(Command{Type: "tone", Frequency: 440, DurationMs: 100})
	}()

	// Wait until the worker picked the request up.
	deadline := time.After(time.Second)
	for p.toneCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("worker never started the tone")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	reply := s.dispatch(Command{Type: "tone", Frequency: 550, DurationMs: 100})
	if reply.OK {
		t.Error("expected busy reply while a tone is playing")
	}

	close(p.block)
	if r := <-first; !r.OK {
		t.Errorf("first tone should complete OK, got %q", r.Error)
	}
}
