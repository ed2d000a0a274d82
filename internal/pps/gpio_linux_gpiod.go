//go:build linux

package pps

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// watchLine requests the PPS line from the Linux GPIO character device and
// fires onPulse for every rising edge.
func watchLine(cfg Config, onPulse func(time.Time)) (func() error, error) {
	if cfg.Pin <= 0 {
		return nil, fmt.Errorf("pps: invalid gpio pin %d", cfg.Pin)
	}
	chipPath := cfg.Chip
	if chipPath == "" {
		chipPath = "/dev/gpiochip0"
	}

	chip, err := gpiocdev.NewChip(chipPath)
	if err != nil {
		return nil, fmt.Errorf("pps: open %s: %w", chipPath, err)
	}

	line, err := chip.RequestLine(cfg.Pin,
		gpiocdev.WithRisingEdge,
		gpiocdev.WithConsumer("nmea-hub-pps"),
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			onPulse(time.Now().UTC())
		}))
	if err != nil {
		_ = chip.Close()
		return nil, fmt.Errorf("pps: request line %d on %s: %w", cfg.Pin, chipPath, err)
	}

	return func() error {
		err1 := line.Close()
		_ = chip.Close()
		return err1
	}, nil
}
