package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// EVMDark is the style used for EVM listings.
var EVMDark = styles.Register(chroma.MustNewStyle("evm-dark", chroma.StyleEntries{
	chroma.Text:       "#FFFFFF",
	chroma.Background: "bg:#1e1e1e",

	chroma.Keyword:       "#FFFFFF", // mnemonics
	chroma.KeywordPseudo: "#C586C0", // push/dup/swap/log with a width

	chroma.LiteralNumberHex: "#FF5F87", // push operands
	chroma.NameLabel:        "#FFD700", // jumpdest and its offset

	chroma.Error: "#7C9C9D", // ?xx? data bytes
}))
