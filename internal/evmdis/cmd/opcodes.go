package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"evmdis/internal/evm"
	"evmdis/internal/evmdis/styles"
)

var opcodesCmd = &cobra.Command{
	Use:   "opcodes",
	Short: "List the opcodes the disassembler recognizes",
	Long: `List every opcode byte that decodes to a known mnemonic.
Any other byte decodes as ?xx?, and so does every byte after it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := opcodeTable()

		raw, _ := cmd.Flags().GetBool("raw")
		if raw || !term.IsTerminal(os.Stdout.Fd()) {
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return nil
		}

		width := 80
		if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
			width = w
		}
		r, err := styles.GetMarkdownRenderer(width)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		out, err := r.Render(doc)
		if err != nil {
			return fmt.Errorf("failed to render opcode table: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// opcodeTable renders the known opcodes as a markdown document.
func opcodeTable() string {
	var b strings.Builder
	b.WriteString("# EVM opcodes\n\n")
	b.WriteString("| Opcode | Mnemonic | Immediate bytes |\n")
	b.WriteString("|--------|----------|-----------------|\n")
	for _, info := range evm.Table() {
		fmt.Fprintf(&b, "| `0x%02x` | %s | %d |\n", info.Opcode, info.Mnemonic, info.Operand)
	}
	return b.String()
}

func init() {
	opcodesCmd.Flags().Bool("raw", false, "Print markdown without rendering")
	rootCmd.AddCommand(opcodesCmd)
}
