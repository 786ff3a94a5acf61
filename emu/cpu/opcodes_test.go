package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCLS(t *testing.T) {
	emu := newTestEMU(t, 0x00E0)
	for i := range emu.display {
		emu.display[i] = PixelOn
	}
	emu.ClearDrawFlag()

	runCycles(t, emu, 1)

	for _, cell := range emu.Frame() {
		assert.Equal(t, PixelOff, cell)
	}
	assert.True(t, emu.DrawFlag())
}

func TestCallAndReturn(t *testing.T) {
	// 0x200 CALL 0x206; 0x202 LD V1, 1; 0x204 JP 0x204; 0x206 LD V0, 7; 0x208 RET
	emu := newTestEMU(t, 0x2206, 0x6101, 0x1204, 0x6007, 0x00EE)

	runCycles(t, emu, 1)
	assert.Equal(t, uint16(0x206), emu.PC())
	assert.Equal(t, uint8(1), emu.SP())
	assert.Equal(t, uint16(0x202), emu.stack[0])

	runCycles(t, emu, 2)
	assert.Equal(t, uint16(0x202), emu.PC())
	assert.Equal(t, uint8(0), emu.SP())

	runCycles(t, emu, 2)
	regs := emu.Registers()
	assert.Equal(t, uint8(7), regs[0])
	assert.Equal(t, uint8(1), regs[1])
	assert.Equal(t, uint16(0x204), emu.PC())
}

func TestCallStackOverflow(t *testing.T) {
	// CALL 0x200 forever pushes a new frame every cycle
	emu := newTestEMU(t, 0x2200)

	runCycles(t, emu, StackSize)
	assert.Equal(t, uint8(StackSize), emu.SP())

	err := emu.Cycle()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint8(StackSize), emu.SP())
}

func TestReturnStackUnderflow(t *testing.T) {
	emu := newTestEMU(t, 0x00EE)

	err := emu.Cycle()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint8(0), emu.SP())
}

func TestJump(t *testing.T) {
	emu := newTestEMU(t, 0x1ABC)
	runCycles(t, emu, 1)
	assert.Equal(t, uint16(0xABC), emu.PC())
}

func TestJumpV0(t *testing.T) {
	emu := newTestEMU(t, 0x60FF, 0xBFFF)
	runCycles(t, emu, 2)
	assert.Equal(t, uint16(0x10FE), emu.PC())
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name    string
		program []uint16
		skipped bool
	}{
		{"SE byte equal", []uint16{0x6342, 0x3342}, true},
		{"SE byte not equal", []uint16{0x6342, 0x3341}, false},
		{"SNE byte equal", []uint16{0x6342, 0x4342}, false},
		{"SNE byte not equal", []uint16{0x6342, 0x4341}, true},
		{"SE reg equal", []uint16{0x6342, 0x6442, 0x5340}, true},
		{"SE reg not equal", []uint16{0x6342, 0x6441, 0x5340}, false},
		{"SNE reg equal", []uint16{0x6342, 0x6442, 0x9340}, false},
		{"SNE reg not equal", []uint16{0x6342, 0x6441, 0x9340}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := newTestEMU(t, tt.program...)
			runCycles(t, emu, len(tt.program))

			expected := uint16(BootAddress + 2*len(tt.program))
			if tt.skipped {
				expected += 2
			}
			assert.Equal(t, expected, emu.PC())
		})
	}
}

func TestLoadAndAddByte(t *testing.T) {
	emu := newTestEMU(t, 0x65F0, 0x7520)
	runCycles(t, emu, 2)

	regs := emu.Registers()
	assert.Equal(t, uint8(0x10), regs[5])
	assert.Equal(t, uint8(0), regs[0xF])
}

func TestLogicOps(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		expected uint8
	}{
		{"LD", 0x8010, 0x0F},
		{"OR", 0x8011, 0xFF},
		{"AND", 0x8012, 0x00},
		{"XOR", 0x8013, 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := newTestEMU(t, 0x60F0, 0x610F, tt.opcode)
			runCycles(t, emu, 3)
			assert.Equal(t, tt.expected, emu.Registers()[0])
		})
	}
}

func TestAddRegisters(t *testing.T) {
	for _, vx := range []uint8{0, 1, 0x7F, 0x80, 0xFE, 0xFF} {
		for _, vy := range []uint8{0, 1, 0x7F, 0x80, 0xFF} {
			emu := newTestEMU(t, 0x8124)
			emu.V[1], emu.V[2] = vx, vy
			runCycles(t, emu, 1)

			sum := uint16(vx) + uint16(vy)
			assert.Equal(t, uint8(sum), emu.V[1])
			assert.Equal(t, boolToFlag(sum > 255), emu.V[0xF])
		}
	}
}

func TestSubRegisters(t *testing.T) {
	for _, vx := range []uint8{0, 1, 0x80, 0xFF} {
		for _, vy := range []uint8{0, 1, 0x80, 0xFF} {
			emu := newTestEMU(t, 0x8125, 0x8347)
			emu.V[1], emu.V[2] = vx, vy
			emu.V[3], emu.V[4] = vx, vy
			runCycles(t, emu, 1)

			assert.Equal(t, vx-vy, emu.V[1])
			assert.Equal(t, boolToFlag(vx > vy), emu.V[0xF])

			runCycles(t, emu, 1)
			assert.Equal(t, vy-vx, emu.V[3])
			assert.Equal(t, boolToFlag(vy > vx), emu.V[0xF])
		}
	}
}

func TestSubWithFlagOperand(t *testing.T) {
	tests := []struct {
		name       string
		opcode     uint16
		vf, v1, v3 uint8
		reg        int
		expected   uint8
	}{
		// VF is written before the difference reads it
		{"SUB Vy is VF", 0x81F5, 0x03, 0x05, 0, 1, 0x04},
		{"SUB Vy is VF borrow", 0x81F5, 0x09, 0x02, 0, 1, 0x02},
		{"SUB Vx is VF", 0x8F35, 0x05, 0, 0x03, 0xF, 0xFE},
		{"SUBN Vy is VF", 0x81F7, 0x09, 0x02, 0, 1, 0xFF},
		{"SUBN Vy is VF borrow", 0x81F7, 0x02, 0x05, 0, 1, 0xFB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := newTestEMU(t, tt.opcode)
			emu.V[0xF], emu.V[1], emu.V[3] = tt.vf, tt.v1, tt.v3
			runCycles(t, emu, 1)
			assert.Equal(t, tt.expected, emu.V[tt.reg])
		})
	}
}

func TestFlagRegisterAsDestination(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		vf, v1   uint8
		expected uint8
	}{
		// arithmetic result overwrites the flag written first
		{"ADD carry", 0x8F14, 0xFF, 0x02, 0x01},
		{"ADD no carry", 0x8F14, 0x10, 0x02, 0x12},
		{"SUB", 0x8F15, 0x10, 0x01, 0x00},
		{"SUB borrow", 0x8F15, 0x01, 0x10, 0xF0},
		{"SUBN", 0x8F17, 0x01, 0x10, 0x0F},
		{"SUBN borrow", 0x8F17, 0x10, 0x01, 0x01},
		// shifts keep the shifted out bit
		{"SHR", 0x8F06, 0x03, 0, 0x01},
		{"SHR even", 0x8F06, 0x02, 0, 0x00},
		{"SHL", 0x8F0E, 0x81, 0, 0x01},
		{"SHL msb clear", 0x8F0E, 0x41, 0, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := newTestEMU(t, tt.opcode)
			emu.V[0xF], emu.V[1] = tt.vf, tt.v1
			runCycles(t, emu, 1)
			assert.Equal(t, tt.expected, emu.V[0xF])
		})
	}
}

func TestShifts(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		value  uint8
		result uint8
		flag   uint8
	}{
		{"SHR odd", 0x8206, 0x05, 0x02, 1},
		{"SHR even", 0x8206, 0x04, 0x02, 0},
		{"SHL msb set", 0x820E, 0x81, 0x02, 1},
		{"SHL msb clear", 0x820E, 0x41, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := newTestEMU(t, tt.opcode)
			emu.V[2] = tt.value
			runCycles(t, emu, 1)
			assert.Equal(t, tt.result, emu.V[2])
			assert.Equal(t, tt.flag, emu.V[0xF])
		})
	}
}

func TestLoadIndex(t *testing.T) {
	emu := newTestEMU(t, 0xA123, 0x6310, 0xF31E)
	runCycles(t, emu, 2)
	assert.Equal(t, uint16(0x123), emu.Index())

	emu.V[0xF] = 0x55
	runCycles(t, emu, 1)
	assert.Equal(t, uint16(0x133), emu.Index())
	assert.Equal(t, uint8(0x55), emu.V[0xF])
}

func TestRandom(t *testing.T) {
	emu := New(WithRandom(&SequenceRandom{Values: []uint8{0xAB, 0xFF}}))
	assert.NoError(t, emu.LoadImage([]byte{0xC0, 0x0F, 0xC1, 0xF0}))
	runCycles(t, emu, 2)

	assert.Equal(t, uint8(0x0B), emu.V[0])
	assert.Equal(t, uint8(0xF0), emu.V[1])
}

func TestDrawCollision(t *testing.T) {
	// sprite of 0xFF at 0x300, LD I 0x300; LD V0 10; LD V1 5; DRW V0 V1 1 twice
	emu := newTestEMU(t, 0xA300, 0x600A, 0x6105, 0xD011, 0xD011)
	emu.memory[0x300] = 0xFF

	runCycles(t, emu, 4)
	assert.Equal(t, uint8(0), emu.V[0xF])
	for col := 0; col < 8; col++ {
		assert.True(t, emu.Pixel(10+col, 5))
	}
	assert.False(t, emu.Pixel(18, 5))
	assert.True(t, emu.DrawFlag())

	runCycles(t, emu, 1)
	assert.Equal(t, uint8(1), emu.V[0xF])
	for col := 0; col < 8; col++ {
		assert.False(t, emu.Pixel(10+col, 5))
	}
}

func TestDrawCollisionIsSticky(t *testing.T) {
	// two rows, only the first collides
	emu := newTestEMU(t, 0xA300, 0xD002)
	emu.memory[0x300] = 0x80
	emu.memory[0x301] = 0x80
	emu.display[0] = PixelOn

	runCycles(t, emu, 2)
	assert.Equal(t, uint8(1), emu.V[0xF])
	assert.False(t, emu.Pixel(0, 0))
	assert.True(t, emu.Pixel(0, 1))
}

func TestDrawWrapsOriginAndClips(t *testing.T) {
	// V0 = 66 wraps to x 2, V1 = 62 wraps to y 30; sprite 3 rows of 0xFF
	emu := newTestEMU(t, 0xA300, 0x6042, 0x613E, 0xD013)
	emu.memory[0x300] = 0xFF
	emu.memory[0x301] = 0xFF
	emu.memory[0x302] = 0xFF

	runCycles(t, emu, 4)
	assert.True(t, emu.Pixel(2, 30))
	assert.True(t, emu.Pixel(9, 31))
	assert.False(t, emu.Pixel(2, 0))

	// right edge clips instead of wrapping onto the same row
	emu = newTestEMU(t, 0xA300, 0x603C, 0xD011)
	emu.memory[0x300] = 0xFF
	runCycles(t, emu, 3)
	assert.True(t, emu.Pixel(63, 0))
	assert.False(t, emu.Pixel(0, 0))
	assert.False(t, emu.Pixel(0, 1))
}

func TestDrawFontGlyph(t *testing.T) {
	// LD V0, 0xA; LD F, V0; DRW V1, V1, 5
	emu := newTestEMU(t, 0x600A, 0xF029, 0xD115)
	runCycles(t, emu, 2)
	assert.Equal(t, uint16(FontAddress+50), emu.Index())

	runCycles(t, emu, 1)
	// top row of A is 0xF0
	for col := 0; col < 4; col++ {
		assert.True(t, emu.Pixel(col, 0))
	}
	assert.False(t, emu.Pixel(4, 0))
}

func TestSkipKeys(t *testing.T) {
	emu := newTestEMU(t, 0x6507, 0xE59E, 0x0000, 0xE5A1)
	emu.SetKey(7, true)

	runCycles(t, emu, 2)
	assert.Equal(t, uint16(0x206), emu.PC())

	runCycles(t, emu, 1)
	assert.Equal(t, uint16(0x208), emu.PC())

	emu = newTestEMU(t, 0x6507, 0xE5A1)
	runCycles(t, emu, 2)
	assert.Equal(t, uint16(0x206), emu.PC())
}

func TestWaitForKey(t *testing.T) {
	emu := newTestEMU(t, 0xF30A)

	runCycles(t, emu, 1)
	assert.Equal(t, uint16(BootAddress), emu.PC())
	runCycles(t, emu, 1)
	assert.Equal(t, uint16(BootAddress), emu.PC())

	emu.SetKey(9, true)
	emu.SetKey(0xC, true)
	runCycles(t, emu, 1)
	assert.Equal(t, uint16(BootAddress+2), emu.PC())
	assert.Equal(t, uint8(9), emu.V[3])
}

func TestWaitForKeyTimersKeepRunning(t *testing.T) {
	emu := newTestEMU(t, 0x6003, 0xF015, 0xF10A)
	runCycles(t, emu, 4)
	assert.Equal(t, uint8(0), emu.DelayTimer())
	assert.Equal(t, uint16(0x204), emu.PC())
}

func TestDelayTimerLoad(t *testing.T) {
	emu := newTestEMU(t, 0x6005, 0xF015, 0xF207)
	runCycles(t, emu, 3)
	// set to 5, decremented after Fx15 and again after Fx07 reads it
	assert.Equal(t, uint8(4), emu.V[2])
	assert.Equal(t, uint8(3), emu.DelayTimer())
}

func TestBCD(t *testing.T) {
	tests := []struct {
		value                uint8
		hundreds, tens, ones uint8
	}{
		{234, 2, 3, 4},
		{0, 0, 0, 0},
		{9, 0, 0, 9},
		{70, 0, 7, 0},
		{255, 2, 5, 5},
	}

	for _, tt := range tests {
		emu := newTestEMU(t, 0xA400, 0xF633)
		emu.V[6] = tt.value
		runCycles(t, emu, 2)

		assert.Equal(t, tt.hundreds, emu.Memory(0x400))
		assert.Equal(t, tt.tens, emu.Memory(0x401))
		assert.Equal(t, tt.ones, emu.Memory(0x402))
	}
}

func TestStoreAndLoadRegisters(t *testing.T) {
	emu := newTestEMU(t, 0xA500, 0xF455, 0xF465)
	for i := uint8(0); i < RegisterCount; i++ {
		emu.V[i] = 0x10 + i
	}

	runCycles(t, emu, 2)
	for i := uint16(0); i <= 4; i++ {
		assert.Equal(t, uint8(0x10+i), emu.Memory(0x500+i))
	}
	assert.Equal(t, uint8(0), emu.Memory(0x505))
	assert.Equal(t, uint16(0x500), emu.Index())

	saved := emu.Registers()
	for i := 0; i <= 4; i++ {
		emu.V[i] = 0
	}
	runCycles(t, emu, 1)
	assert.Equal(t, saved, emu.Registers())
}

func TestUnknownOpcodesAreNoOps(t *testing.T) {
	for _, op := range []uint16{0x0123, 0x800F, 0x8008, 0xE0FF, 0xE002, 0xF0FF, 0xF066, 0xF000} {
		emu := newTestEMU(t, op)
		before := emu.Registers()

		assert.NoError(t, emu.Cycle())
		assert.Equal(t, uint16(BootAddress+2), emu.PC())
		assert.Equal(t, before, emu.Registers())
		assert.Equal(t, uint8(0), emu.SP())
	}
}
