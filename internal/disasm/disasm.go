// Package disasm turns decoded EVM instructions into listing records that
// carry their byte offset, text and raw encoding.
package disasm

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"evmdis/internal/evm"
)

// Inst is one line of a listing.
type Inst struct {
	PC   uint64 // byte offset of the instruction
	Text string // rendered instruction
	Op   string // mnemonic without operands
	Raw  []byte // bytecode encoding
}

// Stream is a linear sequence of instructions.
type Stream []Inst

// FromInstruction builds a listing record for inst located at pc.
func FromInstruction(pc uint64, inst evm.Instruction) Inst {
	return Inst{
		PC:   pc,
		Text: inst.String(),
		Op:   inst.Mnemonic(),
		Raw:  inst.Bytes(),
	}
}

// Read decodes all of r. On error it returns the instructions decoded
// before the failure together with the error.
func Read(r io.Reader) (Stream, error) {
	var (
		stream Stream
		pc     uint64
	)
	for inst, err := range evm.NewDisassembler(r).All() {
		if err != nil {
			return stream, err
		}
		stream = append(stream, FromInstruction(pc, inst))
		pc += uint64(inst.Width())
	}
	return stream, nil
}

// Code reassembles the bytecode covered by the stream.
func (s Stream) Code() []byte {
	var code []byte
	for _, inst := range s {
		code = append(code, inst.Raw...)
	}
	return code
}

// Size is the number of bytecode bytes covered by the stream.
func (s Stream) Size() uint64 {
	if len(s) == 0 {
		return 0
	}
	last := s[len(s)-1]
	return last.PC + uint64(len(last.Raw))
}

// CodeHash is the keccak256 hash of the reassembled bytecode.
func (s Stream) CodeHash() common.Hash {
	return crypto.Keccak256Hash(s.Code())
}

// JumpDests returns the offsets of every jumpdest in the stream.
func (s Stream) JumpDests() []uint64 {
	var dests []uint64
	for _, inst := range s {
		if inst.Op == "jumpdest" {
			dests = append(dests, inst.PC)
		}
	}
	return dests
}

// FormatLine renders inst as a listing line, optionally prefixed with its
// offset as eight hex digits.
func FormatLine(inst Inst, offsets bool) string {
	if !offsets {
		return inst.Text
	}
	return fmt.Sprintf("%08x  %s", inst.PC, inst.Text)
}
