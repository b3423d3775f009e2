package pager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evmdis/internal/ui/colorize"
)

func writeHex(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "code.hex")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDecodeCmd(t *testing.T) {
	msg := decodeCmd(writeHex(t, "6001600201"))()

	decoded, ok := msg.(decodedMsg)
	require.True(t, ok)
	require.NoError(t, decoded.err)
	assert.Len(t, decoded.stream, 3)
}

func TestDecodeCmdMissingFile(t *testing.T) {
	msg := decodeCmd(filepath.Join(t.TempDir(), "missing.hex"))()

	decoded, ok := msg.(decodedMsg)
	require.True(t, ok)
	assert.Error(t, decoded.err)
}

func TestModelShowsListing(t *testing.T) {
	t.Setenv("EVMDIS_NO_COLOR", "1")

	path := writeHex(t, "60015b zz")
	m := newModel(path, true)
	assert.Contains(t, m.View(), path)

	updated, _ := m.Update(decodeCmd(path)())
	m = updated.(model)
	require.False(t, m.loading)
	require.Error(t, m.err)

	view := colorize.StripANSI(m.View())
	assert.Contains(t, view, "00000000  push1 01")
	assert.Contains(t, view, "00000002  jumpdest :2")
	assert.Contains(t, view, "error:")
	assert.Contains(t, view, "2 instructions")
}
