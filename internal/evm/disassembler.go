package evm

import (
	"fmt"
	"io"
	"iter"

	"evmdis/internal/hexstream"
)

// Disassembler decodes instructions one at a time from hex-encoded
// bytecode. It is not safe for concurrent use and cannot be rewound.
type Disassembler struct {
	input  *hexstream.Reader
	offset uint64

	// Once an unknown opcode is seen there is no telling whether the rest of
	// the input is code or data, so everything after it decodes as Unknown.
	unknown bool
}

// NewDisassembler returns a Disassembler reading hex text from r.
func NewDisassembler(r io.Reader) *Disassembler {
	return &Disassembler{input: hexstream.NewReader(r)}
}

// Next decodes the next instruction. It returns io.EOF when the input ends
// cleanly between instructions. Any other error ends the session.
func (d *Disassembler) Next() (Instruction, error) {
	at := d.offset
	op, err := d.input.ReadByte()
	if err == io.EOF {
		return Instruction{}, io.EOF
	}
	if err != nil {
		return Instruction{}, fmt.Errorf("decode opcode at %#x: %w", at, err)
	}
	d.offset++

	if d.unknown {
		return Instruction{Kind: Unknown, Raw: op}, nil
	}

	kind, ok := Lookup(op)
	switch kind {
	case JumpDest:
		return Instruction{Kind: JumpDest, Offset: at}, nil
	case Push:
		inst := Instruction{Kind: Push, N: op - opPush1 + 1}
		var buf [32]byte
		word := buf[:inst.N]
		if err := d.input.ReadFull(word); err != nil {
			return Instruction{}, fmt.Errorf("decode push%d operand at %#x: %w", inst.N, at, err)
		}
		d.offset += uint64(inst.N)
		inst.Value.SetBytes(word)
		return inst, nil
	case Dup:
		return Instruction{Kind: Dup, N: op - opDup1 + 1}, nil
	case Swap:
		return Instruction{Kind: Swap, N: op - opSwap1 + 1}, nil
	case Log:
		return Instruction{Kind: Log, N: op - opLog0}, nil
	}
	if !ok {
		d.unknown = true
		return Instruction{Kind: Unknown, Raw: op}, nil
	}
	return Instruction{Kind: kind}, nil
}

// All returns the remaining instructions as a single-use sequence. The
// sequence stops after the first error, which is yielded with a zero
// Instruction.
func (d *Disassembler) All() iter.Seq2[Instruction, error] {
	return func(yield func(Instruction, error) bool) {
		for {
			inst, err := d.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Instruction{}, err)
				return
			}
			if !yield(inst, nil) {
				return
			}
		}
	}
}

// Offset is the byte position of the next instruction.
func (d *Disassembler) Offset() uint64 {
	return d.offset
}

// Degraded reports whether an unknown opcode has been seen.
func (d *Disassembler) Degraded() bool {
	return d.unknown
}
