// ABOUTME: Package documentation for the i2s tone driver
// ABOUTME: Entry point for embedding the driver over any Peripheral backend
// Package i2s drives an I2S-connected class-D amplifier with software
// synthesized sine tones.
//
// The driver owns a fixed 256-sample transfer buffer and streams longer
// tones as a sequence of buffer-sized chunks, blocking the caller for the
// full real-time duration of each request. Hardware access goes through
// the Peripheral interface, with backends for nRF52840 memory-mapped
// registers (nrf52) and host-side simulation (sim).
//
// Example:
//
//	drv := i2s.New(periph, i2s.Config{
//	    Pins: i2s.PinConfig{SCK: 3, LRCK: 28, SDOut: 2},
//	})
//	drv.Initialize()
//	drv.PlayTone(440, 500, 80)
package i2s
