package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRenderer(t *testing.T) {
	r, err := GetMarkdownRenderer(80)
	require.NoError(t, err)

	out, err := r.Render("| opcode | mnemonic |\n|---|---|\n| `0x01` | add |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "mnemonic")
	assert.Contains(t, out, "add")
}
