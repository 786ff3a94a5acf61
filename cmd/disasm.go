package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm `path/ROM`",
	Short: "print the instructions of a ROM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rom, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading rom '%s': %w", args[0], err)
		}
		if len(rom) > cpu.MaxImageSize {
			return fmt.Errorf("%w: %d bytes, limit is %d", cpu.ErrImageTooLarge, len(rom), cpu.MaxImageSize)
		}
		return writeListing(cmd.OutOrStdout(), rom)
	},
}

func writeListing(w io.Writer, rom []byte) error {
	for _, line := range cpu.DisassembleImage(rom) {
		if _, err := fmt.Fprintf(w, "%03X  %04X  %s\n", line.Address, line.Opcode, line.Text); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}
