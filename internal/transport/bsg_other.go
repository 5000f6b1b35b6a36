//go:build !linux

package transport

import "fmt"

// Open reports that no SMP pass-through exists on this platform. The bsg
// driver is Linux-only.
func Open(target Target) (Transport, error) {
	return nil, fmt.Errorf("open %s: SMP pass-through requires Linux bsg support", target.Device)
}
