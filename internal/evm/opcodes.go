package evm

import "strconv"

const (
	opJumpDest = 0x5b
	opPush1    = 0x60
	opPush32   = 0x7f
	opDup1     = 0x80
	opDup16    = 0x8f
	opSwap1    = 0x90
	opSwap16   = 0x9f
	opLog0     = 0xa0
	opLog4     = 0xa4
)

// opcodes maps each payload-free kind to its opcode byte.
var opcodes = [...]byte{
	Stop:           0x00,
	Add:            0x01,
	Mul:            0x02,
	Sub:            0x03,
	Div:            0x04,
	Sdiv:           0x05,
	Mod:            0x06,
	Smod:           0x07,
	AddMod:         0x08,
	MulMod:         0x09,
	Exp:            0x0a,
	SignExtend:     0x0b,
	Lt:             0x10,
	Gt:             0x11,
	Slt:            0x12,
	Sgt:            0x13,
	Eq:             0x14,
	IsZero:         0x15,
	And:            0x16,
	Or:             0x17,
	Xor:            0x18,
	Not:            0x19,
	Byte:           0x1a,
	Shl:            0x1b,
	Shr:            0x1c,
	Sar:            0x1d,
	Keccak256:      0x20,
	Address:        0x30,
	Balance:        0x31,
	Origin:         0x32,
	Caller:         0x33,
	CallValue:      0x34,
	CallDataLoad:   0x35,
	CallDataSize:   0x36,
	CallDataCopy:   0x37,
	CodeSize:       0x38,
	CodeCopy:       0x39,
	GasPrice:       0x3a,
	ExtCodeSize:    0x3b,
	ExtCodeCopy:    0x3c,
	ReturnDataSize: 0x3d,
	ReturnDataCopy: 0x3e,
	ExtCodeHash:    0x3f,
	BlockHash:      0x40,
	Coinbase:       0x41,
	Timestamp:      0x42,
	Number:         0x43,
	Difficulty:     0x44,
	GasLimit:       0x45,
	ChainID:        0x46,
	Pop:            0x50,
	MLoad:          0x51,
	MStore:         0x52,
	MStore8:        0x53,
	SLoad:          0x54,
	SStore:         0x55,
	Jump:           0x56,
	JumpI:          0x57,
	GetPC:          0x58,
	MSize:          0x59,
	Gas:            0x5a,
	Create:         0xf0,
	Call:           0xf1,
	CallCode:       0xf2,
	Return:         0xf3,
	DelegateCall:   0xf4,
	Create2:        0xf5,
	StaticCall:     0xfa,
	Revert:         0xfd,
	Invalid:        0xfe,
	SelfDestruct:   0xff,
}

// simple is the inverse of opcodes: byte to payload-free kind.
var simple [256]struct {
	kind  Kind
	known bool
}

func init() {
	for k, op := range opcodes {
		simple[op].kind = Kind(k)
		simple[op].known = true
	}
}

// Lookup reports the kind an opcode byte decodes to in normal mode. The
// numbered kinds (Push, Dup, Swap, Log) are returned for their whole ranges.
// Unrecognized bytes return Unknown and false.
func Lookup(op byte) (Kind, bool) {
	switch {
	case op == opJumpDest:
		return JumpDest, true
	case op >= opPush1 && op <= opPush32:
		return Push, true
	case op >= opDup1 && op <= opDup16:
		return Dup, true
	case op >= opSwap1 && op <= opSwap16:
		return Swap, true
	case op >= opLog0 && op <= opLog4:
		return Log, true
	}
	if e := simple[op]; e.known {
		return e.kind, true
	}
	return Unknown, false
}

// OpInfo describes one recognized opcode byte.
type OpInfo struct {
	Opcode   byte
	Mnemonic string
	Operand  int // immediate bytes following the opcode
}

// Table lists every recognized opcode byte in ascending order.
func Table() []OpInfo {
	var table []OpInfo
	for op := 0; op < 256; op++ {
		kind, ok := Lookup(byte(op))
		if !ok {
			continue
		}
		info := OpInfo{Opcode: byte(op), Mnemonic: kind.String()}
		switch kind {
		case Push:
			info.Operand = op - opPush1 + 1
			info.Mnemonic += strconv.Itoa(info.Operand)
		case Dup:
			info.Mnemonic += strconv.Itoa(op - opDup1 + 1)
		case Swap:
			info.Mnemonic += strconv.Itoa(op - opSwap1 + 1)
		case Log:
			info.Mnemonic += strconv.Itoa(op - opLog0)
		}
		table = append(table, info)
	}
	return table
}
