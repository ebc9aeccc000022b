// ABOUTME: Direct memory-mapped register access for target hardware
// ABOUTME: Compiled only for bare-metal builds; host code uses a fake Bus

//go:build baremetal

package nrf52

import "unsafe"

// MMIO is direct memory-mapped register access. Only meaningful on the
// target; the uintptr-to-pointer conversions here address real hardware
// registers, not Go-managed memory.
type MMIO struct{}

func (MMIO) Read32(addr uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(addr))
}

func (MMIO) Write32(addr uintptr, v uint32) {
	*(*uint32)(unsafe.Pointer(addr)) = v
}
