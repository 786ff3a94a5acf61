package cpu

import "fmt"

var disasmTables = newDispatcher()

// Disassemble returns the assembly text of one opcode, decoded the same way
// the interpreter executes it. Words without an instruction become a .word directive.
func Disassemble(opcode uint16) string {
	ins := disasmTables.decode(opcode)
	if ins.name == "" {
		return fmt.Sprintf(".word $%04X", opcode)
	}

	if params := ins.operands(opcode); params != "" {
		return fmt.Sprintf("%s %s", ins.name, params)
	}
	return ins.name
}

// Line is one decoded word of a program image.
type Line struct {
	Address uint16
	Opcode  uint16
	Text    string
}

// DisassembleImage decodes a program image word by word, addressed from the
// boot address. A trailing odd byte is emitted as a .byte directive.
func DisassembleImage(rom []byte) []Line {
	lines := make([]Line, 0, len(rom)/2+1)
	for i := 0; i+1 < len(rom); i += 2 {
		opcode := uint16(rom[i])<<8 | uint16(rom[i+1])
		lines = append(lines, Line{
			Address: uint16(BootAddress + i),
			Opcode:  opcode,
			Text:    Disassemble(opcode),
		})
	}

	if len(rom)%2 == 1 {
		last := rom[len(rom)-1]
		lines = append(lines, Line{
			Address: uint16(BootAddress + len(rom) - 1),
			Opcode:  uint16(last),
			Text:    fmt.Sprintf(".byte $%02X", last),
		})
	}
	return lines
}
