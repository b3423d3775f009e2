package colorize

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorizeDisabled(t *testing.T) {
	t.Setenv("EVMDIS_NO_COLOR", "1")

	line := "00000002  jumpdest :2"
	assert.Equal(t, line, ColorizeInstructionLine(line))

	out, err := ColorizeListing("push1 01\nadd\n")
	require.NoError(t, err)
	assert.Equal(t, "push1 01\nadd\n", out)
}

func TestColorizeKeepsText(t *testing.T) {
	t.Setenv("EVMDIS_NO_COLOR", "")

	lines := []string{
		"stop",
		"push2 00ff",
		"00000000  push1 80",
		"0000000f  jumpdest :f",
		"00000010  ?21?",
		"dup16",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			out := ColorizeInstructionLine(line)
			assert.Contains(t, out, "\x1b[")
			assert.Equal(t, line, StripANSI(out))
		})
	}
}

func TestLexerTokens(t *testing.T) {
	tokens, err := chroma.Tokenise(EVMLexer, nil, "push1 ab\njumpdest :1f\n?fe?\nadd\nswap3\n")
	require.NoError(t, err)

	types := map[string]chroma.TokenType{}
	for _, tok := range tokens {
		types[tok.Value] = tok.Type
	}
	assert.Equal(t, chroma.KeywordPseudo, types["push1"])
	assert.Equal(t, chroma.LiteralNumberHex, types["ab"])
	assert.Equal(t, chroma.NameLabel, types["jumpdest"])
	assert.Equal(t, chroma.NameLabel, types[":1f"])
	assert.Equal(t, chroma.Error, types["?fe?"])
	assert.Equal(t, chroma.Keyword, types["add"])
	assert.Equal(t, chroma.KeywordPseudo, types["swap3"])
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "add", StripANSI("\x1b[38;2;255;255;255madd\x1b[0m"))
}
