// Package colorize highlights EVM listing lines for terminal output.
package colorize

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"
)

// Disabled reports whether coloring is turned off through EVMDIS_NO_COLOR.
func Disabled() bool {
	return os.Getenv("EVMDIS_NO_COLOR") != ""
}

// getDisasmStyle returns the listing style with fallbacks
func getDisasmStyle() *chroma.Style {
	for _, name := range []string{"evm-dark", "dracula", "monokai"} {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns an appropriate terminal formatter
func getTerminalFormatter() chroma.Formatter {
	for _, name := range []string{"terminal16m", "terminal256"} {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// ColorizeListing highlights a multi-line listing without offsets.
func ColorizeListing(code string) (string, error) {
	if Disabled() {
		return code, nil
	}

	iterator, err := EVMLexer.Tokenise(nil, code)
	if err != nil {
		return code, err
	}

	var buf strings.Builder
	if err := getTerminalFormatter().Format(&buf, getDisasmStyle(), iterator); err != nil {
		return code, err
	}
	return buf.String(), nil
}

// ColorizeInstructionLine colorizes a single listing line. A leading offset
// column ("0000002a  jumpdest :2a") is rendered in gray.
func ColorizeInstructionLine(line string) string {
	if Disabled() {
		return line
	}

	addr, rest, ok := strings.Cut(line, "  ")
	if !ok || addr == "" || !isHex(addr) {
		return colorizeFullLine(line)
	}

	// Color address in gray (79, 79, 79)
	return fmt.Sprintf("\033[38;2;79;79;79m%s\033[0m  %s", addr, colorizeFullLine(rest))
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !((ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')) {
			return false
		}
	}
	return true
}

func colorizeFullLine(line string) string {
	out, err := ColorizeListing(line)
	if err != nil {
		return line
	}
	return out
}

// StripANSI removes ANSI escape codes from s.
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false

	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
		} else if inEscape {
			if r == 'm' {
				inEscape = false
			}
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
