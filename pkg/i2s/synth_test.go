// ABOUTME: Tests for sine synthesis and volume mapping
// ABOUTME: Covers amplitude scaling, silence cases and capacity truncation
package i2s

import (
	"math"
	"testing"
)

// sineSample computes the expected quantized sample for index i at the
// default 16kHz rate.
func sineSample(frequencyHz, i, volume int) int16 {
	amplitude := volume * fullScale / 100
	phase := 2 * math.Pi * float64(frequencyHz) * float64(i) / float64(DefaultSampleRate)
	return int16(math.Round(float64(amplitude) * math.Sin(phase)))
}

func synthDriver() (*Driver, *fakePeripheral) {
	env := newTestEnv(Config{})
	return env.d, env.p
}

func TestSynthesizePeakAmplitude(t *testing.T) {
	d, _ := synthDriver()

	// 1kHz at 16kHz hits sin=1 exactly at sample 4, so the peak equals
	// the mapped amplitude.
	for _, volume := range []int{0, 1, 25, 50, 75, 99, 100} {
		d.synthesize(1000, BufferSize, volume)

		peak := int16(0)
		for _, s := range d.buf {
			if s > peak {
				peak = s
			}
		}

		want := math.Round(float64(volume) / 100 * fullScale)
		if math.Abs(float64(peak)-want) > 1 {
			t.Errorf("volume %d: peak %d, want %.0f +/-1", volume, peak, want)
		}
	}
}

func TestSynthesizeVolumeZeroIsSilence(t *testing.T) {
	d, _ := synthDriver()

	d.synthesize(440, BufferSize, 0)

	for i, s := range d.buf {
		if s != 0 {
			t.Fatalf("sample %d = %d, want 0", i, s)
		}
	}
}

func TestSynthesizeFrequencyZeroIsSilence(t *testing.T) {
	d, _ := synthDriver()

	d.synthesize(0, BufferSize, 100)

	for i, s := range d.buf {
		if s != 0 {
			t.Fatalf("sample %d = %d, want 0", i, s)
		}
	}
}

func TestSynthesizeVolumeClamped(t *testing.T) {
	d, _ := synthDriver()

	d.synthesize(1000, BufferSize, 250)
	over := d.buf

	d.synthesize(1000, BufferSize, 100)
	if over != d.buf {
		t.Error("volume above 100 should clamp to 100")
	}

	d.synthesize(1000, BufferSize, -5)
	for i, s := range d.buf {
		if s != 0 {
			t.Fatalf("sample %d = %d, want 0 for negative volume", i, s)
		}
	}
}

func TestSynthesizeTruncatesToCapacity(t *testing.T) {
	d, _ := synthDriver()

	// A request beyond capacity fills exactly the buffer and no more;
	// the final sample must still follow the waveform.
	d.synthesize(440, BufferSize*4, 50)

	want := sineSample(440, BufferSize-1, 50)
	if got := d.buf[BufferSize-1]; got != want {
		t.Errorf("last sample = %d, want %d", got, want)
	}
}

func TestSynthesizeWaveformShape(t *testing.T) {
	d, _ := synthDriver()

	d.synthesize(440, 64, 80)

	for i := 0; i < 64; i++ {
		want := sineSample(440, i, 80)
		if d.buf[i] != want {
			t.Fatalf("sample %d = %d, want %d", i, d.buf[i], want)
		}
	}
}
