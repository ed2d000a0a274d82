//go:build !linux

package pps

import (
	"fmt"
	"time"
)

func watchLine(cfg Config, onPulse func(time.Time)) (func() error, error) {
	return nil, fmt.Errorf("pps: gpio unsupported on this platform")
}
