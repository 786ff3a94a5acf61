package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/host"
	"github.com/beanboi7/chyp8/emu/screen"
	"github.com/beanboi7/chyp8/emu/term"
	"github.com/faiface/pixel/pixelgl"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var startCmd = &cobra.Command{
	Use:   "start `path/ROM`",
	Short: "load and start the Emulator",
	Args:  cobra.ExactArgs(1),
	RunE:  Start,
}

// chyp8 start 'path/to/ROM' -c 700
func Start(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(viper.GetViper())
	if err != nil {
		return err
	}
	if s.Trace {
		s.Debug = true
	}
	logger := newLogger(s)

	emu := newEMU(logger, s)
	if err := emu.LoadROM(args[0]); err != nil {
		return err
	}
	logger.Info("ROM loaded", log.String("path", args[0]), log.String("frontend", s.Frontend))

	ctx := app.Context()
	cfg := host.Config{ClockHz: s.Clock, FrameRate: s.FPS}

	if s.Frontend == frontendTerminal {
		frontend, err := term.New(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		return runFrontend(ctx, logger, emu, frontend, cfg)
	}

	// pixelgl needs the main thread, the window lives inside pixelgl.Run
	pixelgl.Run(func() {
		var frontend *screen.Window
		frontend, err = screen.NewWindow("Chyp8", s.Scale)
		if err != nil {
			return
		}
		err = runFrontend(ctx, logger, emu, frontend, cfg)
	})
	return err
}

func newEMU(logger *log.Logger, s settings) *cpu.EMU {
	rng := cpu.NewRandom()
	if s.Seed != 0 {
		rng = cpu.NewSeededRandom(s.Seed)
	}

	return cpu.New(
		cpu.WithRandom(rng),
		cpu.WithLogger(logger),
		cpu.WithTrace(s.Trace),
	)
}

func runFrontend(ctx context.Context, logger *log.Logger, emu *cpu.EMU, frontend host.Frontend, cfg host.Config) error {
	err := host.Run(ctx, logger, emu, frontend, cfg)
	if closeErr := frontend.Close(); closeErr != nil {
		logger.Error("Closing frontend failed", log.Err(closeErr))
	}

	if errors.Is(err, context.Canceled) {
		logger.Info("Emulation cancelled")
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(startCmd)

	flags := startCmd.Flags()
	flags.IntP("clock", "c", 600, "sets the number of instructions executed per second")
	flags.IntP("fps", "r", 60, "sets the refresh rate of the display")
	flags.IntP("scale", "s", 10, "sets the window pixel size")
	flags.StringP("frontend", "f", frontendWindow, "frontend to use: window or terminal")
	flags.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	flags.Bool("trace", false, "log every executed instruction")

	for _, name := range []string{"clock", "fps", "scale", "frontend", "seed", "trace"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}
	setDefaults(viper.GetViper())
}
