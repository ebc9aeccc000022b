// ABOUTME: WAV capture sink for transmitted chunks
// ABOUTME: Writes mono 16-bit PCM files for offline inspection
package wavesink

import (
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// File captures every transmitted chunk into a WAV file. Satisfies
// sim.Sink; the file is finalized on Close.
type File struct {
	f       *os.File
	enc     *wav.Encoder
	format  *audio.Format
	written int
}

// Create opens a WAV file for mono 16-bit capture at the given rate.
func Create(path string, sampleRate int) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return &File{
		f:      f,
		enc:    wav.NewEncoder(f, sampleRate, 16, 1, 1),
		format: &audio.Format{NumChannels: 1, SampleRate: sampleRate},
	}, nil
}

// Write appends one chunk to the capture.
func (w *File) Write(samples []int16) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &audio.IntBuffer{
		Format:         w.format,
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := w.enc.Write(buf); err != nil {
		return fmt.Errorf("wav write failed: %w", err)
	}

	w.written += len(samples)
	return nil
}

// Written returns the total number of captured samples.
func (w *File) Written() int {
	return w.written
}

// Close finalizes the WAV header and closes the file.
func (w *File) Close() error {
	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("wav finalize failed: %w", err)
	}

	log.Printf("wavesink: wrote %d samples to %s", w.written, w.f.Name())

	return w.f.Close()
}
