// ABOUTME: Sine waveform synthesis into the driver's transfer buffer
// ABOUTME: Maps volume percent linearly onto full-scale 16-bit amplitude
package i2s

import (
	"log"
	"math"
)

// fullScale is the maximum magnitude representable by a 16-bit sample.
const fullScale = 32767

// synthesize writes count quantized sine samples for the given frequency
// and volume into the buffer, starting at index 0. Counts beyond the
// buffer capacity are silently truncated; callers chunk longer requests.
//
// Frequencies above the Nyquist limit alias per standard folding; picking
// sane frequencies is the caller's job.
func (d *Driver) synthesize(frequencyHz, count, volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}

	amplitude := volume * fullScale / 100

	if !d.synthLogged {
		log.Printf("i2s: synth volume %d%% -> amplitude %d of %d", volume, amplitude, fullScale)
		d.synthLogged = true
	}

	if count > BufferSize {
		count = BufferSize
	}

	for i := 0; i < count; i++ {
		t := float64(i) / float64(d.cfg.SampleRate)
		phase := 2 * math.Pi * float64(frequencyHz) * t
		d.buf[i] = int16(math.Round(float64(amplitude) * math.Sin(phase)))
	}
}
