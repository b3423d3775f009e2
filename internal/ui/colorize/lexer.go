package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// EVMLexer tokenizes rendered EVM instruction lines.
var EVMLexer = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:      "evm",
		Aliases:   []string{"evmasm"},
		Filenames: []string{"*.evm"},
		MimeTypes: []string{"text/x-evm"},
	},
	func() chroma.Rules {
		return chroma.Rules{
			"root": {
				{Pattern: `\s+`, Type: chroma.TextWhitespace},
				{Pattern: `\?[0-9a-f]{2}\?`, Type: chroma.Error},
				{Pattern: `(jumpdest)(\s+)(:[0-9a-f]+)`, Type: chroma.ByGroups(chroma.NameLabel, chroma.TextWhitespace, chroma.NameLabel)},
				{Pattern: `(push[0-9]+)(\s+)([0-9a-f]+)`, Type: chroma.ByGroups(chroma.KeywordPseudo, chroma.TextWhitespace, chroma.LiteralNumberHex)},
				{Pattern: `(dup|swap|log)[0-9]+`, Type: chroma.KeywordPseudo},
				{Pattern: `[a-z][a-z0-9]*`, Type: chroma.Keyword},
				{Pattern: `.`, Type: chroma.Text},
			},
		}
	},
))
