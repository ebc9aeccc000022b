// ABOUTME: Entry point for the chime host tool
// ABOUTME: Plays tones through the simulated driver with speaker/WAV output
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/oro-haptics/chime-go/internal/output"
	"github.com/oro-haptics/chime-go/internal/ui"
	"github.com/oro-haptics/chime-go/internal/version"
	"github.com/oro-haptics/chime-go/internal/wavesink"
	"github.com/oro-haptics/chime-go/pkg/i2s"
	"github.com/oro-haptics/chime-go/pkg/i2s/sim"
)

var (
	freq     = flag.Int("freq", 440, "Tone frequency in Hz")
	duration = flag.Int("duration", 500, "Tone duration in milliseconds")
	volume   = flag.Int("volume", 80, "Volume (0-100)")
	melody   = flag.String("melody", "", "Melody as freq:ms pairs, e.g. 440:200,660:200,880:400")
	rate     = flag.Int("rate", i2s.DefaultSampleRate, "Sample rate in Hz")
	wavPath  = flag.String("wav", "", "Capture playback to a WAV file")
	silent   = flag.Bool("silent", false, "Skip speaker output")
	useTUI   = flag.Bool("tui", false, "Interactive tone pad")
	logFile  = flag.String("log-file", "chime.log", "Log file path (TUI mode)")
)

func main() {
	flag.Parse()

	if *useTUI {
		// TUI mode: keep the terminal for the pad, log to file.
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer func() { _ = f.Close() }()
		log.SetOutput(f)
	}

	log.Printf("%s %s starting", version.Product, version.Version)

	var sinks []sim.Sink

	if *wavPath != "" {
		capture, err := wavesink.Create(*wavPath, *rate)
		if err != nil {
			log.Fatalf("failed to open WAV capture: %v", err)
		}
		sinks = append(sinks, capture)
	}

	if !*silent {
		speaker, err := output.NewSpeaker(*rate)
		if err != nil {
			log.Fatalf("failed to open speaker: %v", err)
		}
		sinks = append(sinks, speaker)
	}

	periph := sim.New(sim.Config{Sink: tee(sinks)})
	amp := &sim.Line{}

	drv := i2s.New(periph, i2s.Config{
		Pins:       i2s.PinConfig{SCK: 3, LRCK: 28, SDOut: 2},
		Amp:        amp,
		SampleRate: *rate,
	})

	if !drv.Initialize() {
		log.Fatal("driver initialization failed")
	}

	var exitErr error
	switch {
	case *useTUI:
		exitErr = runPad(drv)
	case *melody != "":
		exitErr = playMelody(drv, *melody, *volume)
	default:
		drv.PlayTone(*freq, *duration, *volume)
	}

	drv.Suspend()

	for _, s := range sinks {
		if err := s.Close(); err != nil {
			log.Printf("sink close failed: %v", err)
		}
	}

	if exitErr != nil {
		log.Fatalf("%v", exitErr)
	}
}

// playMelody parses and plays a freq:ms pair list.
func playMelody(drv *i2s.Driver, spec string, volume int) error {
	frequencies, durations, err := parseMelody(spec)
	if err != nil {
		return err
	}

	drv.PlayMelody(frequencies, durations, volume)
	return nil
}

// parseMelody splits "440:200,660:200" into parallel slices.
func parseMelody(spec string) ([]int, []int, error) {
	var frequencies, durations []int

	for _, pair := range strings.Split(spec, ",") {
		parts := strings.Split(strings.TrimSpace(pair), ":")
		if len(parts) != 2 {
			return nil, nil, fmt.Errorf("bad melody pair %q, want freq:ms", pair)
		}

		f, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, nil, fmt.Errorf("bad frequency in %q: %w", pair, err)
		}
		d, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, nil, fmt.Errorf("bad duration in %q: %w", pair, err)
		}

		frequencies = append(frequencies, f)
		durations = append(durations, d)
	}

	return frequencies, durations, nil
}

// runPad runs the interactive tone pad until quit.
func runPad(drv *i2s.Driver) error {
	ctrl := ui.NewControl()
	prog := ui.Run(ctrl)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case req := <-ctrl.Requests:
				drv.PlayTone(req.Note.Frequency, ui.NoteDurationMs, req.Volume)
				prog.Send(ui.DoneMsg{Note: req.Note})
			case <-ctrl.Stops:
				drv.Stop()
				prog.Send(ui.StateMsg{State: drv.State().String()})
			case <-done:
				return
			}
		}
	}()

	_, err := prog.Run()
	close(done)

	if err != nil {
		return fmt.Errorf("tone pad failed: %w", err)
	}
	return nil
}

// tee fans one chunk out to every sink.
func tee(sinks []sim.Sink) sim.Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return teeSink(sinks)
}

type teeSink []sim.Sink

func (t teeSink) Write(samples []int16) error {
	for _, s := range t {
		if err := s.Write(samples); err != nil {
			return err
		}
	}
	return nil
}

func (t teeSink) Close() error {
	var firstErr error
	for _, s := range t {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
