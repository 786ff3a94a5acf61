package cpu

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// instruction is one entry of the dispatch tables.
type instruction struct {
	name     string
	exec     func(emu *EMU) error
	operands func(opcode uint16) string
}

// nop is the handler of every slot without a registered instruction.
var nop = instruction{
	name: "",
	exec: func(*EMU) error { return nil },
}

// dispatcher maps an opcode to its instruction. The primary table is indexed by
// the high nibble, families 0x0, 0x8 and 0xE select on the low nibble and
// family 0xF on the low byte.
type dispatcher struct {
	table  [0xF + 1]func(opcode uint16) instruction
	table0 [0xE + 1]instruction
	table8 [0xE + 1]instruction
	tableE [0xE + 1]instruction
	tableF [0x65 + 1]instruction
}

func newDispatcher() *dispatcher {
	d := &dispatcher{}

	d.table[0x0] = d.family0
	d.table[0x1] = fixed(instruction{chip8.JpName, (*EMU).op1nnn, addr})
	d.table[0x2] = fixed(instruction{chip8.CallName, (*EMU).op2nnn, addr})
	d.table[0x3] = fixed(instruction{chip8.SeName, (*EMU).op3xkk, regByte})
	d.table[0x4] = fixed(instruction{chip8.SneName, (*EMU).op4xkk, regByte})
	d.table[0x5] = fixed(instruction{chip8.SeName, (*EMU).op5xy0, regReg})
	d.table[0x6] = fixed(instruction{chip8.LdName, (*EMU).op6xkk, regByte})
	d.table[0x7] = fixed(instruction{chip8.AddName, (*EMU).op7xkk, regByte})
	d.table[0x8] = d.family8
	d.table[0x9] = fixed(instruction{chip8.SneName, (*EMU).op9xy0, regReg})
	d.table[0xA] = fixed(instruction{chip8.LdName, (*EMU).opAnnn, indexAddr})
	d.table[0xB] = fixed(instruction{chip8.JpName, (*EMU).opBnnn, v0Addr})
	d.table[0xC] = fixed(instruction{chip8.RndName, (*EMU).opCxkk, regByte})
	d.table[0xD] = fixed(instruction{chip8.DrwName, (*EMU).opDxyn, draw})
	d.table[0xE] = d.familyE
	d.table[0xF] = d.familyF

	fill(d.table0[:])
	fill(d.table8[:])
	fill(d.tableE[:])
	fill(d.tableF[:])

	d.table0[0x0] = instruction{chip8.ClsName, (*EMU).op00E0, none}
	d.table0[0xE] = instruction{chip8.RetName, (*EMU).op00EE, none}

	d.table8[0x0] = instruction{chip8.LdName, (*EMU).op8xy0, regReg}
	d.table8[0x1] = instruction{chip8.OrName, (*EMU).op8xy1, regReg}
	d.table8[0x2] = instruction{chip8.AndName, (*EMU).op8xy2, regReg}
	d.table8[0x3] = instruction{chip8.XorName, (*EMU).op8xy3, regReg}
	d.table8[0x4] = instruction{chip8.AddName, (*EMU).op8xy4, regReg}
	d.table8[0x5] = instruction{chip8.SubName, (*EMU).op8xy5, regReg}
	d.table8[0x6] = instruction{chip8.ShrName, (*EMU).op8xy6, reg}
	d.table8[0x7] = instruction{chip8.SubnName, (*EMU).op8xy7, regReg}
	d.table8[0xE] = instruction{chip8.ShlName, (*EMU).op8xyE, reg}

	d.tableE[0x1] = instruction{chip8.SknpName, (*EMU).opExA1, reg}
	d.tableE[0xE] = instruction{chip8.SkpName, (*EMU).opEx9E, reg}

	d.tableF[0x07] = instruction{chip8.LdName, (*EMU).opFx07, loadFrom("DT")}
	d.tableF[0x0A] = instruction{chip8.LdName, (*EMU).opFx0A, loadFrom("K")}
	d.tableF[0x15] = instruction{chip8.LdName, (*EMU).opFx15, loadInto("DT")}
	d.tableF[0x18] = instruction{chip8.LdName, (*EMU).opFx18, loadInto("ST")}
	d.tableF[0x1E] = instruction{chip8.AddName, (*EMU).opFx1E, loadInto("I")}
	d.tableF[0x29] = instruction{chip8.LdName, (*EMU).opFx29, loadInto("F")}
	d.tableF[0x33] = instruction{chip8.LdName, (*EMU).opFx33, loadInto("B")}
	d.tableF[0x55] = instruction{chip8.LdName, (*EMU).opFx55, loadInto("[I]")}
	d.tableF[0x65] = instruction{chip8.LdName, (*EMU).opFx65, loadFrom("[I]")}

	return d
}

func fill(table []instruction) {
	for i := range table {
		table[i] = nop
	}
}

func fixed(ins instruction) func(uint16) instruction {
	return func(uint16) instruction {
		return ins
	}
}

func lookup(table []instruction, index uint16) instruction {
	if int(index) >= len(table) {
		return nop
	}
	return table[index]
}

func (d *dispatcher) family0(opcode uint16) instruction {
	return lookup(d.table0[:], opcode&0x000F)
}

func (d *dispatcher) family8(opcode uint16) instruction {
	return lookup(d.table8[:], opcode&0x000F)
}

func (d *dispatcher) familyE(opcode uint16) instruction {
	return lookup(d.tableE[:], opcode&0x000F)
}

func (d *dispatcher) familyF(opcode uint16) instruction {
	return lookup(d.tableF[:], opcode&0x00FF)
}

func (d *dispatcher) decode(opcode uint16) instruction {
	return d.table[opcode>>12](opcode)
}

func (emu *EMU) decode(opcode uint16) instruction {
	return emu.dispatch.decode(opcode)
}

// operand formatters used by Disassemble

func none(uint16) string {
	return ""
}

func addr(opcode uint16) string {
	return fmt.Sprintf("$%03X", opcode&0x0FFF)
}

func indexAddr(opcode uint16) string {
	return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
}

func v0Addr(opcode uint16) string {
	return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
}

func reg(opcode uint16) string {
	return fmt.Sprintf("V%X", (opcode&0x0F00)>>8)
}

func regByte(opcode uint16) string {
	return fmt.Sprintf("V%X, $%02X", (opcode&0x0F00)>>8, opcode&0x00FF)
}

func regReg(opcode uint16) string {
	return fmt.Sprintf("V%X, V%X", (opcode&0x0F00)>>8, (opcode&0x00F0)>>4)
}

func draw(opcode uint16) string {
	return fmt.Sprintf("V%X, V%X, $%X", (opcode&0x0F00)>>8, (opcode&0x00F0)>>4, opcode&0x000F)
}

func loadFrom(src string) func(uint16) string {
	return func(opcode uint16) string {
		return fmt.Sprintf("V%X, %s", (opcode&0x0F00)>>8, src)
	}
}

func loadInto(dst string) func(uint16) string {
	return func(opcode uint16) string {
		return fmt.Sprintf("%s, V%X", dst, (opcode&0x0F00)>>8)
	}
}
