package cmd

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	frontendWindow   = "window"
	frontendTerminal = "terminal"
)

// settings collects the flag, environment and config file values of a run.
type settings struct {
	Clock    int
	FPS      int
	Scale    int
	Frontend string
	Seed     uint64
	Trace    bool
	Debug    bool
	Quiet    bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("clock", 600)
	v.SetDefault("fps", 60)
	v.SetDefault("scale", 10)
	v.SetDefault("frontend", frontendWindow)
	v.SetDefault("seed", 0)
}

func loadSettings(v *viper.Viper) (settings, error) {
	s := settings{
		Clock:    v.GetInt("clock"),
		FPS:      v.GetInt("fps"),
		Scale:    v.GetInt("scale"),
		Frontend: v.GetString("frontend"),
		Seed:     v.GetUint64("seed"),
		Trace:    v.GetBool("trace"),
		Debug:    v.GetBool("debug"),
		Quiet:    v.GetBool("quiet"),
	}

	switch s.Frontend {
	case frontendWindow, frontendTerminal:
	default:
		return s, fmt.Errorf("unsupported frontend '%s'", s.Frontend)
	}
	if s.Clock <= 0 {
		return s, fmt.Errorf("clock must be positive, got %d", s.Clock)
	}
	if s.FPS <= 0 {
		return s, fmt.Errorf("fps must be positive, got %d", s.FPS)
	}
	if s.Scale <= 0 {
		return s, fmt.Errorf("scale must be positive, got %d", s.Scale)
	}
	return s, nil
}
