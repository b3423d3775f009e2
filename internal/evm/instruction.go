// Package evm decodes EVM bytecode into typed instructions and renders them
// as lowercase mnemonics.
package evm

import (
	"encoding/hex"
	"strconv"

	"github.com/holiman/uint256"
)

// Kind identifies one instruction variant. The set is closed: one kind per
// known EVM mnemonic, five payload-bearing kinds and Unknown.
type Kind uint8

const (
	Stop Kind = iota
	Add
	Mul
	Sub
	Div
	Sdiv
	Mod
	Smod
	AddMod
	MulMod
	Exp
	SignExtend
	Lt
	Gt
	Slt
	Sgt
	Eq
	IsZero
	And
	Or
	Xor
	Not
	Byte
	Shl
	Shr
	Sar
	Keccak256
	Address
	Balance
	Origin
	Caller
	CallValue
	CallDataLoad
	CallDataSize
	CallDataCopy
	CodeSize
	CodeCopy
	GasPrice
	ExtCodeSize
	ExtCodeCopy
	ReturnDataSize
	ReturnDataCopy
	ExtCodeHash
	BlockHash
	Coinbase
	Timestamp
	Number
	Difficulty
	GasLimit
	ChainID
	Pop
	MLoad
	MStore
	MStore8
	SLoad
	SStore
	Jump
	JumpI
	GetPC
	MSize
	Gas
	Create
	Call
	CallCode
	Return
	DelegateCall
	Create2
	StaticCall
	Revert
	Invalid
	SelfDestruct

	// Payload-bearing kinds.
	JumpDest
	Push
	Dup
	Swap
	Log

	// Unknown is an unrecognized opcode, or any byte following one.
	Unknown
)

var mnemonics = [...]string{
	Stop:           "stop",
	Add:            "add",
	Mul:            "mul",
	Sub:            "sub",
	Div:            "div",
	Sdiv:           "sdiv",
	Mod:            "mod",
	Smod:           "smod",
	AddMod:         "addmod",
	MulMod:         "mulmod",
	Exp:            "exp",
	SignExtend:     "signextend",
	Lt:             "lt",
	Gt:             "gt",
	Slt:            "slt",
	Sgt:            "sgt",
	Eq:             "eq",
	IsZero:         "iszero",
	And:            "and",
	Or:             "or",
	Xor:            "xor",
	Not:            "not",
	Byte:           "byte",
	Shl:            "shl",
	Shr:            "shr",
	Sar:            "sar",
	Keccak256:      "keccak256",
	Address:        "address",
	Balance:        "balance",
	Origin:         "origin",
	Caller:         "caller",
	CallValue:      "callvalue",
	CallDataLoad:   "calldataload",
	CallDataSize:   "calldatasize",
	CallDataCopy:   "calldatacopy",
	CodeSize:       "codesize",
	CodeCopy:       "codecopy",
	GasPrice:       "gasprice",
	ExtCodeSize:    "extcodesize",
	ExtCodeCopy:    "extcodecopy",
	ReturnDataSize: "returndatasize",
	ReturnDataCopy: "returndatacopy",
	ExtCodeHash:    "extcodehash",
	BlockHash:      "blockhash",
	Coinbase:       "coinbase",
	Timestamp:      "timestamp",
	Number:         "number",
	Difficulty:     "difficulty",
	GasLimit:       "gaslimit",
	ChainID:        "chainid",
	Pop:            "pop",
	MLoad:          "mload",
	MStore:         "mstore",
	MStore8:        "mstore8",
	SLoad:          "sload",
	SStore:         "sstore",
	Jump:           "jump",
	JumpI:          "jumpi",
	GetPC:          "getpc",
	MSize:          "msize",
	Gas:            "gas",
	Create:         "create",
	Call:           "call",
	CallCode:       "callcode",
	Return:         "return",
	DelegateCall:   "delegatecall",
	Create2:        "create2",
	StaticCall:     "staticcall",
	Revert:         "revert",
	Invalid:        "invalid",
	SelfDestruct:   "selfdestruct",
	JumpDest:       "jumpdest",
	Push:           "push",
	Dup:            "dup",
	Swap:           "swap",
	Log:            "log",
	Unknown:        "unknown",
}

// String returns the base mnemonic of the kind. Numbered kinds (push, dup,
// swap, log) have no width suffix here; see Instruction.Mnemonic.
func (k Kind) String() string {
	if int(k) < len(mnemonics) {
		return mnemonics[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// HasPayload reports whether instructions of this kind carry an operand.
func (k Kind) HasPayload() bool {
	return k >= JumpDest
}

// Instruction is one decoded opcode.
//
// Only the fields relevant to Kind are set:
//   - JumpDest: Offset is the byte position of the jumpdest opcode.
//   - Push: N is the operand width in bytes (1..32), Value the operand.
//   - Dup, Swap: N is the stack slot (1..16).
//   - Log: N is the topic count (0..4).
//   - Unknown: Raw is the opcode byte.
type Instruction struct {
	Kind   Kind
	Offset uint64
	N      uint8
	Value  uint256.Int
	Raw    byte
}

// Mnemonic returns the instruction name without operands, e.g. "push2" or
// "add". Unknown instructions return "?xx?".
func (i Instruction) Mnemonic() string {
	switch i.Kind {
	case Push, Dup, Swap, Log:
		return i.Kind.String() + strconv.Itoa(int(i.N))
	case Unknown:
		return i.String()
	default:
		return i.Kind.String()
	}
}

// String renders the canonical single-line text form of the instruction.
func (i Instruction) String() string {
	switch i.Kind {
	case JumpDest:
		return "jumpdest :" + strconv.FormatUint(i.Offset, 16)
	case Push:
		return "push" + strconv.Itoa(int(i.N)) + " " + hex.EncodeToString(i.operand())
	case Dup, Swap, Log:
		return i.Kind.String() + strconv.Itoa(int(i.N))
	case Unknown:
		return "?" + hex.EncodeToString([]byte{i.Raw}) + "?"
	default:
		return i.Kind.String()
	}
}

// operand returns the push value as exactly N big-endian bytes.
func (i Instruction) operand() []byte {
	word := i.Value.Bytes32()
	return word[32-int(i.N):]
}

// Opcode returns the opcode byte that encodes the instruction.
func (i Instruction) Opcode() byte {
	switch i.Kind {
	case JumpDest:
		return opJumpDest
	case Push:
		return opPush1 - 1 + i.N
	case Dup:
		return opDup1 - 1 + i.N
	case Swap:
		return opSwap1 - 1 + i.N
	case Log:
		return opLog0 + i.N
	case Unknown:
		return i.Raw
	default:
		return opcodes[i.Kind]
	}
}

// Width is the number of bytecode bytes the instruction occupies.
func (i Instruction) Width() int {
	if i.Kind == Push {
		return 1 + int(i.N)
	}
	return 1
}

// Bytes returns the bytecode encoding of the instruction.
func (i Instruction) Bytes() []byte {
	return i.AppendBytes(make([]byte, 0, i.Width()))
}

// AppendBytes appends the bytecode encoding of the instruction to b.
func (i Instruction) AppendBytes(b []byte) []byte {
	b = append(b, i.Opcode())
	if i.Kind == Push {
		b = append(b, i.operand()...)
	}
	return b
}
