package cpu

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
)

const (
	MemorySize    = 4096
	BootAddress   = 0x200
	FontAddress   = 0x50
	FontGlyphSize = 5
	StackSize     = 16
	KeyCount      = 16
	RegisterCount = 16
	DisplayWidth  = 64
	DisplayHeight = 32
	DisplaySize   = DisplayWidth * DisplayHeight

	// MaxImageSize is the largest program that fits between the boot address and the end of memory.
	MaxImageSize = MemorySize - BootAddress

	addressMask = MemorySize - 1
	flag        = 0xF
)

// Display cell values, 0 or all bits set so a frame can be blitted directly.
const (
	PixelOff uint32 = 0x00000000
	PixelOn  uint32 = 0xFFFFFFFF
)

// EMU is a single CHIP-8 interpreter instance. It is not safe for concurrent use,
// the host alternates between calling Cycle and touching the frame or keys.
type EMU struct {
	opcode     uint16
	memory     [MemorySize]uint8
	V          [RegisterCount]uint8
	I          uint16 //address register
	pc         uint16
	display    [DisplaySize]uint32
	delayTimer uint8
	soundTimer uint8
	stack      [StackSize]uint16
	sp         uint8
	keyState   [KeyCount]bool
	drawFlag   bool //set when the frame changed since the last ClearDrawFlag

	dispatch *dispatcher
	rng      RandomSource
	logger   *log.Logger
	trace    bool
}

// Option configures an EMU at construction.
type Option func(*EMU)

// WithRandom replaces the time seeded random source used by RND.
func WithRandom(rng RandomSource) Option {
	return func(emu *EMU) {
		emu.rng = rng
	}
}

// WithLogger sets the logger used for load and trace messages.
func WithLogger(logger *log.Logger) Option {
	return func(emu *EMU) {
		emu.logger = logger
	}
}

// WithTrace logs every executed instruction at debug level. It needs a logger.
func WithTrace(trace bool) Option {
	return func(emu *EMU) {
		emu.trace = trace
	}
}

// New returns an interpreter in power-on state with the font loaded
// and the program counter at the boot address.
func New(opts ...Option) *EMU {
	emu := &EMU{}
	for _, opt := range opts {
		opt(emu)
	}
	if emu.rng == nil {
		emu.rng = NewRandom()
	}

	emu.dispatch = newDispatcher()
	emu.Reset()
	return emu
}

// Reset returns the machine to power-on state. Loaded program bytes are cleared,
// the random source and options are kept.
func (emu *EMU) Reset() {
	emu.opcode = 0
	emu.memory = [MemorySize]uint8{}
	emu.V = [RegisterCount]uint8{}
	emu.I = 0
	emu.pc = BootAddress
	emu.display = [DisplaySize]uint32{}
	emu.delayTimer = 0
	emu.soundTimer = 0
	emu.stack = [StackSize]uint16{}
	emu.sp = 0
	emu.keyState = [KeyCount]bool{}
	emu.drawFlag = true

	emu.loadFont()
}

func (emu *EMU) loadFont() {
	copy(emu.memory[FontAddress:], FontSet[:])
}

// LoadImage copies a raw program image into memory at the boot address.
func (emu *EMU) LoadImage(rom []byte) error {
	if len(rom) > MaxImageSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrImageTooLarge, len(rom), MaxImageSize)
	}

	copy(emu.memory[BootAddress:], rom)

	if emu.logger != nil {
		emu.logger.Debug("Program image loaded",
			log.Int("size", len(rom)),
			log.Hex("address", uint16(BootAddress)))
	}
	return nil
}

// LoadROM reads a program image from disk and loads it.
func (emu *EMU) LoadROM(filename string) error {
	rom, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading rom '%s': %w", filename, err)
	}

	if err := emu.LoadImage(rom); err != nil {
		return fmt.Errorf("loading rom '%s': %w", filename, err)
	}
	return nil
}

// Cycle runs one fetch, decode and execute step followed by the timer
// countdown. The only errors are call stack overflow and underflow.
func (emu *EMU) Cycle() error {
	pc := emu.pc
	emu.opcode = uint16(emu.memory[pc&addressMask])<<8 | uint16(emu.memory[(pc+1)&addressMask])
	emu.pc += 2

	ins := emu.decode(emu.opcode)
	if emu.trace && emu.logger != nil {
		emu.logger.Debug("Exec",
			log.Hex("pc", pc),
			log.Hex("opcode", emu.opcode),
			log.String("instruction", ins.name))
	}

	if err := ins.exec(emu); err != nil {
		return fmt.Errorf("executing opcode 0x%04X at 0x%04X: %w", emu.opcode, pc, err)
	}

	emu.delayTimerHandler()
	emu.soundTimerHandler()
	return nil
}

func (emu *EMU) delayTimerHandler() {
	if emu.delayTimer > 0 {
		emu.delayTimer--
	}
}

func (emu *EMU) soundTimerHandler() {
	if emu.soundTimer > 0 {
		emu.soundTimer--
	}
}

func (emu *EMU) read(addr uint16) uint8 {
	return emu.memory[addr&addressMask]
}

func (emu *EMU) write(addr uint16, value uint8) {
	emu.memory[addr&addressMask] = value
}
