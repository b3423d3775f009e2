package evm

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evmdis/internal/hexstream"
)

// decodeAll runs a fresh disassembler over input and returns the rendered
// lines produced before the sequence ended.
func decodeAll(t *testing.T, input string) ([]string, error) {
	t.Helper()
	var lines []string
	for inst, err := range NewDisassembler(strings.NewReader(input)).All() {
		if err != nil {
			return lines, err
		}
		lines = append(lines, inst.String())
	}
	return lines, nil
}

func TestDecodeKnownOpcodes(t *testing.T) {
	for _, info := range Table() {
		t.Run(info.Mnemonic, func(t *testing.T) {
			code := append([]byte{info.Opcode}, make([]byte, info.Operand)...)
			d := NewDisassembler(strings.NewReader(hex.EncodeToString(code)))

			inst, err := d.Next()
			require.NoError(t, err)
			assert.NotEqual(t, Unknown, inst.Kind)
			assert.Equal(t, info.Mnemonic, inst.Mnemonic())
			assert.Equal(t, code, inst.Bytes())
			assert.False(t, d.Degraded())

			_, err = d.Next()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestTableSize(t *testing.T) {
	table := Table()
	// 71 payload-free mnemonics, jumpdest, 32 push, 16 dup, 16 swap, 5 log.
	assert.Len(t, table, 71+1+32+16+16+5)
	for i := 1; i < len(table); i++ {
		assert.Less(t, table[i-1].Opcode, table[i].Opcode)
	}
}

func TestDecodePush(t *testing.T) {
	for n := 1; n <= 32; n++ {
		t.Run(fmt.Sprintf("push%d", n), func(t *testing.T) {
			operand := make([]byte, n)
			for i := range operand {
				operand[i] = byte(0xa0 + i)
			}
			input := hex.EncodeToString(append([]byte{byte(0x5f + n)}, operand...))

			d := NewDisassembler(strings.NewReader(input))
			inst, err := d.Next()
			require.NoError(t, err)
			assert.Equal(t, Push, inst.Kind)
			assert.Equal(t, uint8(n), inst.N)
			assert.Equal(t, *new(uint256.Int).SetBytes(operand), inst.Value)
			assert.Equal(t, fmt.Sprintf("push%d %x", n, operand), inst.String())
			assert.Equal(t, uint64(n+1), d.Offset())
		})
	}
}

func TestDecodePushTruncated(t *testing.T) {
	for n := 1; n <= 32; n++ {
		t.Run(fmt.Sprintf("push%d", n), func(t *testing.T) {
			input := hex.EncodeToString(append([]byte{byte(0x5f + n)}, make([]byte, n-1)...))

			_, err := NewDisassembler(strings.NewReader(input)).Next()
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		})
	}
}

func TestDecodeStickyUnknown(t *testing.T) {
	d := NewDisassembler(strings.NewReader("01 21 01 60 01 5b 00"))

	first, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, Add, first.Kind)
	assert.False(t, d.Degraded())

	var raws []byte
	for inst, err := range d.All() {
		require.NoError(t, err)
		assert.Equal(t, Unknown, inst.Kind)
		raws = append(raws, inst.Raw)
	}
	assert.Equal(t, []byte{0x21, 0x01, 0x60, 0x01, 0x5b, 0x00}, raws)
	assert.True(t, d.Degraded())
	assert.Equal(t, uint64(7), d.Offset())
}

func TestDecodeWhitespace(t *testing.T) {
	want := Instruction{Kind: Push, N: 1, Value: *uint256.NewInt(1)}
	for _, input := range []string{"60 01", "6001", "6\n0\t01", "  6001\n"} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			d := NewDisassembler(strings.NewReader(input))
			inst, err := d.Next()
			require.NoError(t, err)
			assert.Equal(t, want, inst)

			_, err = d.Next()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestDecodeJumpDestOffset(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "first byte", input: "5b", want: []string{"jumpdest :0"}},
		{name: "after push1", input: "60015b", want: []string{"push1 01", "jumpdest :2"}},
		{
			name:  "after push32",
			input: "7f" + strings.Repeat("00", 32) + "5b",
			want:  []string{"push32 " + strings.Repeat("00", 32), "jumpdest :21"},
		},
		{
			name:  "several",
			input: "5b 61 1234 5b 00 5b",
			want:  []string{"jumpdest :0", "push2 1234", "jumpdest :4", "stop", "jumpdest :6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeAll(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeEndToEnd(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "", want: nil},
		{input: "00", want: []string{"stop"}},
		{input: "6001600201", want: []string{"push1 01", "push1 02", "add"}},
		{input: "fe", want: []string{"invalid"}},
		{input: "ff21", want: []string{"selfdestruct", "?21?"}},
		{input: "ff2101", want: []string{"selfdestruct", "?21?", "?01?"}},
		{input: "808f909fa0a4", want: []string{"dup1", "dup16", "swap1", "swap16", "log0", "log4"}},
		{input: "0c", want: []string{"?0c?"}},
		{input: "a5 00", want: []string{"?a5?", "?00?"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := decodeAll(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		lines   []string
		wantErr error
	}{
		{name: "invalid hex", input: "6z", wantErr: hexstream.ErrInvalidHex},
		{name: "invalid after code", input: "0001zz", lines: []string{"stop", "add"}, wantErr: hexstream.ErrInvalidHex},
		{name: "half byte", input: "0", wantErr: io.ErrUnexpectedEOF},
		{name: "half byte after code", input: "01 0", lines: []string{"add"}, wantErr: io.ErrUnexpectedEOF},
		{name: "short operand", input: "6101", wantErr: io.ErrUnexpectedEOF},
		{name: "invalid in degraded mode", input: "21 qq", lines: []string{"?21?"}, wantErr: hexstream.ErrInvalidHex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeAll(t, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.lines, got)
		})
	}
}

func TestAllStopsEarly(t *testing.T) {
	d := NewDisassembler(strings.NewReader("010203"))
	for inst := range d.All() {
		assert.Equal(t, Add, inst.Kind)
		break
	}

	inst, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, Mul, inst.Kind)
}
