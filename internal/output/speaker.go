// ABOUTME: Speaker sink playing simulated transfers through oto
// ABOUTME: Makes the simulated driver audible on a development machine
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"

	"github.com/ebitengine/oto/v3"
)

// Speaker plays captured chunks on the host's audio device. It satisfies
// sim.Sink; the driver has already scaled samples, so no further volume
// processing happens here.
type Speaker struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	ready      bool
}

// NewSpeaker opens the host audio device for mono 16-bit playback at the
// given sample rate.
func NewSpeaker(sampleRate int) (*Speaker, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	s := &Speaker{
		otoCtx:     ctx,
		sampleRate: sampleRate,
	}

	// Persistent pipe-fed player so chunks stream without gaps.
	s.pipeReader, s.pipeWriter = io.Pipe()
	s.player = ctx.NewPlayer(s.pipeReader)
	s.player.Play()
	s.ready = true

	log.Printf("speaker: opened at %d Hz mono", sampleRate)

	return s, nil
}

// Write queues one chunk for playback. Pacing is governed by the driver's
// own per-chunk waits; the pipe only provides slack.
func (s *Speaker) Write(samples []int16) error {
	if !s.ready {
		return fmt.Errorf("speaker not open")
	}

	buf := make([]byte, len(samples)*2)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(sample))
	}

	if _, err := s.pipeWriter.Write(buf); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Close tears down the player and suspends the audio context.
func (s *Speaker) Close() error {
	if s.pipeWriter != nil {
		s.pipeWriter.Close()
		s.pipeWriter = nil
	}
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
	if s.pipeReader != nil {
		s.pipeReader.Close()
		s.pipeReader = nil
	}
	if s.otoCtx != nil {
		s.otoCtx.Suspend()
		s.ready = false
	}
	return nil
}
