// ABOUTME: Version constants for the chime tools
// ABOUTME: Reported in logs and remote status output
package version

const (
	Version      = "0.1.0"
	Product      = "Chime Tone Driver"
	Manufacturer = "Oro Haptics"
)
