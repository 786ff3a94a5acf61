package cpu

// operand fields of the current opcode

func (emu *EMU) x() uint8 {
	return uint8((emu.opcode & 0x0F00) >> 8)
}

func (emu *EMU) y() uint8 {
	return uint8((emu.opcode & 0x00F0) >> 4)
}

func (emu *EMU) kk() uint8 {
	return uint8(emu.opcode & 0x00FF)
}

func (emu *EMU) nnn() uint16 {
	return emu.opcode & 0x0FFF
}

func (emu *EMU) n() uint8 {
	return uint8(emu.opcode & 0x000F)
}

func (emu *EMU) skipIf(cond bool) {
	if cond {
		emu.pc += 2
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// 00E0 - CLS
func (emu *EMU) op00E0() error {
	emu.display = [DisplaySize]uint32{}
	emu.drawFlag = true
	return nil
}

// 00EE - RET
func (emu *EMU) op00EE() error {
	if emu.sp == 0 {
		return ErrStackUnderflow
	}
	emu.sp--
	emu.pc = emu.stack[emu.sp]
	return nil
}

// 1nnn - JP addr
func (emu *EMU) op1nnn() error {
	emu.pc = emu.nnn()
	return nil
}

// 2nnn - CALL addr
func (emu *EMU) op2nnn() error {
	if emu.sp >= StackSize {
		return ErrStackOverflow
	}
	emu.stack[emu.sp] = emu.pc
	emu.sp++
	emu.pc = emu.nnn()
	return nil
}

// 3xkk - SE Vx, byte
func (emu *EMU) op3xkk() error {
	emu.skipIf(emu.V[emu.x()] == emu.kk())
	return nil
}

// 4xkk - SNE Vx, byte
func (emu *EMU) op4xkk() error {
	emu.skipIf(emu.V[emu.x()] != emu.kk())
	return nil
}

// 5xy0 - SE Vx, Vy
func (emu *EMU) op5xy0() error {
	emu.skipIf(emu.V[emu.x()] == emu.V[emu.y()])
	return nil
}

// 6xkk - LD Vx, byte
func (emu *EMU) op6xkk() error {
	emu.V[emu.x()] = emu.kk()
	return nil
}

// 7xkk - ADD Vx, byte, no carry flag
func (emu *EMU) op7xkk() error {
	emu.V[emu.x()] += emu.kk()
	return nil
}

// 8xy0 - LD Vx, Vy
func (emu *EMU) op8xy0() error {
	emu.V[emu.x()] = emu.V[emu.y()]
	return nil
}

// 8xy1 - OR Vx, Vy
func (emu *EMU) op8xy1() error {
	emu.V[emu.x()] |= emu.V[emu.y()]
	return nil
}

// 8xy2 - AND Vx, Vy
func (emu *EMU) op8xy2() error {
	emu.V[emu.x()] &= emu.V[emu.y()]
	return nil
}

// 8xy3 - XOR Vx, Vy
func (emu *EMU) op8xy3() error {
	emu.V[emu.x()] ^= emu.V[emu.y()]
	return nil
}

// 8xy4 - ADD Vx, Vy
// VF is written before Vx, so with x == F the sum replaces the carry.
func (emu *EMU) op8xy4() error {
	x := emu.x()
	sum := uint16(emu.V[x]) + uint16(emu.V[emu.y()])

	emu.V[flag] = boolToFlag(sum > 0xFF)
	emu.V[x] = uint8(sum)
	return nil
}

// 8xy5 - SUB Vx, Vy, VF = NOT borrow
// VF is written first and the difference reads the registers again,
// so an operand in VF takes part as the flag value.
func (emu *EMU) op8xy5() error {
	x, y := emu.x(), emu.y()

	emu.V[flag] = boolToFlag(emu.V[x] > emu.V[y])
	emu.V[x] -= emu.V[y]
	return nil
}

// 8xy6 - SHR Vx
// The shifted out bit is written last, so VF holds it even when x == F.
func (emu *EMU) op8xy6() error {
	x := emu.x()
	vx := emu.V[x]

	emu.V[x] = vx >> 1
	emu.V[flag] = vx & 0x1
	return nil
}

// 8xy7 - SUBN Vx, Vy, VF = NOT borrow
func (emu *EMU) op8xy7() error {
	x, y := emu.x(), emu.y()

	emu.V[flag] = boolToFlag(emu.V[y] > emu.V[x])
	emu.V[x] = emu.V[y] - emu.V[x]
	return nil
}

// 8xyE - SHL Vx
func (emu *EMU) op8xyE() error {
	x := emu.x()
	vx := emu.V[x]

	emu.V[x] = vx << 1
	emu.V[flag] = (vx & 0x80) >> 7
	return nil
}

// 9xy0 - SNE Vx, Vy
func (emu *EMU) op9xy0() error {
	emu.skipIf(emu.V[emu.x()] != emu.V[emu.y()])
	return nil
}

// Annn - LD I, addr
func (emu *EMU) opAnnn() error {
	emu.I = emu.nnn()
	return nil
}

// Bnnn - JP V0, addr
// The target is not masked and can lie beyond 0xFFF, fetch wraps it.
func (emu *EMU) opBnnn() error {
	emu.pc = uint16(emu.V[0]) + emu.nnn()
	return nil
}

// Cxkk - RND Vx, byte
func (emu *EMU) opCxkk() error {
	emu.V[emu.x()] = emu.rng.Byte() & emu.kk()
	return nil
}

// Dxyn - DRW Vx, Vy, nibble
// Only the origin wraps around the screen, sprite pixels past the
// right or bottom edge are clipped.
func (emu *EMU) opDxyn() error {
	xPos := int(emu.V[emu.x()]) % DisplayWidth
	yPos := int(emu.V[emu.y()]) % DisplayHeight
	height := int(emu.n())

	emu.V[flag] = 0
	for row := 0; row < height; row++ {
		py := yPos + row
		if py >= DisplayHeight {
			break
		}

		sprite := emu.read(emu.I + uint16(row))
		for col := 0; col < 8; col++ {
			px := xPos + col
			if px >= DisplayWidth {
				break
			}
			if sprite&(0x80>>col) == 0 {
				continue
			}

			cell := &emu.display[py*DisplayWidth+px]
			if *cell == PixelOn {
				emu.V[flag] = 1
			}
			*cell ^= PixelOn
		}
	}

	emu.drawFlag = true
	return nil
}

// Ex9E - SKP Vx
func (emu *EMU) opEx9E() error {
	emu.skipIf(emu.keyState[emu.V[emu.x()]&0xF])
	return nil
}

// ExA1 - SKNP Vx
func (emu *EMU) opExA1() error {
	emu.skipIf(!emu.keyState[emu.V[emu.x()]&0xF])
	return nil
}

// Fx07 - LD Vx, DT
func (emu *EMU) opFx07() error {
	emu.V[emu.x()] = emu.delayTimer
	return nil
}

// Fx0A - LD Vx, K
// Waiting is done by rewinding the program counter so the next cycle
// executes this instruction again.
func (emu *EMU) opFx0A() error {
	for key, pressed := range emu.keyState {
		if pressed {
			emu.V[emu.x()] = uint8(key)
			return nil
		}
	}

	emu.pc -= 2
	return nil
}

// Fx15 - LD DT, Vx
func (emu *EMU) opFx15() error {
	emu.delayTimer = emu.V[emu.x()]
	return nil
}

// Fx18 - LD ST, Vx
func (emu *EMU) opFx18() error {
	emu.soundTimer = emu.V[emu.x()]
	return nil
}

// Fx1E - ADD I, Vx, VF is not affected
func (emu *EMU) opFx1E() error {
	emu.I += uint16(emu.V[emu.x()])
	return nil
}

// Fx29 - LD F, Vx
func (emu *EMU) opFx29() error {
	digit := uint16(emu.V[emu.x()])
	emu.I = FontAddress + FontGlyphSize*digit
	return nil
}

// Fx33 - LD B, Vx
func (emu *EMU) opFx33() error {
	value := emu.V[emu.x()]

	emu.write(emu.I, value/100)
	emu.write(emu.I+1, (value/10)%10)
	emu.write(emu.I+2, value%10)
	return nil
}

// Fx55 - LD [I], Vx
// I itself is left unchanged.
func (emu *EMU) opFx55() error {
	x := uint16(emu.x())
	for i := uint16(0); i <= x; i++ {
		emu.write(emu.I+i, emu.V[i])
	}
	return nil
}

// Fx65 - LD Vx, [I]
func (emu *EMU) opFx65() error {
	x := uint16(emu.x())
	for i := uint16(0); i <= x; i++ {
		emu.V[i] = emu.read(emu.I + i)
	}
	return nil
}
