// Package pager shows a decoded EVM listing in a scrollable terminal view.
package pager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"evmdis/internal/disasm"
	"evmdis/internal/ui/colorize"
)

type model struct {
	viewport viewport.Model
	spinner  spinner.Model
	path     string
	stream   disasm.Stream
	err      error
	loading  bool
	offsets  bool
	width    int
	height   int
}

type decodedMsg struct {
	stream disasm.Stream
	err    error
}

func decodeCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return decodedMsg{err: err}
		}
		defer f.Close()

		stream, err := disasm.Read(f)
		return decodedMsg{stream: stream, err: err}
	}
}

func newModel(path string, offsets bool) model {
	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(22)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	return model{
		viewport: vp,
		spinner:  s,
		path:     path,
		loading:  true,
		offsets:  offsets,
		width:    80,
		height:   24,
	}
}

// Run decodes the file at path and pages through the listing until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, path string, offsets bool) error {
	program := tea.NewProgram(
		newModel(path, offsets),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(decodeCmd(m.path), m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case decodedMsg:
		m.stream = msg.stream
		m.err = msg.err
		m.loading = false
		m.updateContent()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateContent()
		return m, cmd

	case tea.WindowSizeMsg:
		if msg.Width != m.width || msg.Height != m.height {
			m.width = msg.Width
			m.height = msg.Height
			m.viewport.SetWidth(msg.Width)
			m.viewport.SetHeight(msg.Height - 2)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "o":
			m.offsets = !m.offsets
			m.updateContent()
			return m, nil
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) updateContent() {
	if m.loading {
		m.viewport.SetContent(fmt.Sprintf("%s Decoding %s", m.spinner.View(), m.path))
		return
	}

	var b strings.Builder
	for _, inst := range m.stream {
		b.WriteString(colorize.ColorizeInstructionLine(disasm.FormatLine(inst, m.offsets)))
		b.WriteByte('\n')
	}
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteByte('\n')
	}
	m.viewport.SetContent(b.String())
}

func (m model) header() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	if m.loading {
		return titleStyle.Render(m.path)
	}
	info := fmt.Sprintf("%d instructions • %d bytes • %s",
		len(m.stream), m.stream.Size(), m.stream.CodeHash().Hex())
	return titleStyle.Render(m.path) + "  " + infoStyle.Render(info)
}

func (m model) View() string {
	menu := " O: offsets • G/g: bottom/top • Q: quit "

	menuStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1).
		Width(m.width)

	return m.header() + "\n" + m.viewport.View() + "\n" + menuStyle.Render(menu)
}
