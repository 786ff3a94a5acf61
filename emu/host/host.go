// Package host drives an interpreter at a fixed cadence and connects it to a
// frontend that shows the frame and samples the keypad.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/retroenv/retrogolib/log"
)

// Frontend is the rendering and input side of the emulator.
type Frontend interface {
	// PollKeys returns the current keypad state and whether the user asked to quit.
	PollKeys() ([cpu.KeyCount]bool, bool)
	// Draw shows a frame of cpu.DisplaySize cells.
	Draw(frame []uint32)
	// Buzz reports whether the sound timer is running.
	Buzz(on bool)
	Close() error
}

// Machine is the part of the interpreter the host loop needs.
type Machine interface {
	Cycle() error
	SetKeys(keys [cpu.KeyCount]bool)
	Frame() []uint32
	DrawFlag() bool
	ClearDrawFlag()
	SoundActive() bool
}

// Config sets the cadence of the host loop.
type Config struct {
	ClockHz   int // interpreter cycles per second
	FrameRate int // frontend updates per second
}

var errInvalidConfig = errors.New("invalid host config")

// CyclesPerFrame returns how many cycles run between two frontend updates.
func (c Config) CyclesPerFrame() int {
	n := c.ClockHz / c.FrameRate
	if n < 1 {
		return 1
	}
	return n
}

func (c Config) validate() error {
	if c.ClockHz <= 0 {
		return fmt.Errorf("%w: clock %d Hz", errInvalidConfig, c.ClockHz)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate %d", errInvalidConfig, c.FrameRate)
	}
	return nil
}

// Run alternates between the frontend and the interpreter until the context is
// cancelled, the frontend quits or the interpreter fails.
func Run(ctx context.Context, logger *log.Logger, machine Machine, frontend Frontend, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FrameRate))
	defer ticker.Stop()

	logger.Debug("Starting host loop",
		log.Int("clock", cfg.ClockHz),
		log.Int("fps", cfg.FrameRate),
		log.Int("cycles_per_frame", cfg.CyclesPerFrame()))

	for {
		quit, err := Step(machine, frontend, cfg.CyclesPerFrame())
		if err != nil {
			return err
		}
		if quit {
			logger.Info("Frontend closed")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Step runs one frame: keys in, cycles, frame and sound state out.
func Step(machine Machine, frontend Frontend, cycles int) (bool, error) {
	keys, quit := frontend.PollKeys()
	if quit {
		return true, nil
	}
	machine.SetKeys(keys)

	for i := 0; i < cycles; i++ {
		if err := machine.Cycle(); err != nil {
			return false, err
		}
	}

	if machine.DrawFlag() {
		frontend.Draw(machine.Frame())
		machine.ClearDrawFlag()
	}
	frontend.Buzz(machine.SoundActive())
	return false, nil
}
