package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/glyphlab/memstream/arena"
	"github.com/glyphlab/memstream/charstream"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type viewerModel struct {
	err       error
	filename  string
	blockSize int

	cs *charstream.CharStream
	ar *arena.Arena

	vp      viewport.Model
	content strings.Builder
	ready   bool
	done    bool
}

func newViewerModel(filename string, blockSize int) *viewerModel {
	return &viewerModel{filename: filename, blockSize: blockSize}
}

type openedMsg struct {
	err error
	cs  *charstream.CharStream
	ar  *arena.Arena
}

type blockMsg struct {
	err  error
	text string
	n    int
}

func (m *viewerModel) Init() tea.Cmd {
	return m.openStream
}

func (m *viewerModel) openStream() tea.Msg {
	f, err := os.Open(m.filename)
	if err != nil {
		return openedMsg{err: err}
	}

	ar, err := arena.Create(m.blockSize*4+1024, "viewer scratch")
	if err != nil {
		f.Close()
		return openedMsg{err: err}
	}

	cs := &charstream.CharStream{}
	cs.LoadStream(f, ar.Alloc(m.blockSize*4))
	return openedMsg{cs: cs, ar: ar}
}

// nextBlock pulls one block of characters off the stream. Zero-rune reads
// happen when a block ends mid-sequence, so keep reading until something
// lands or the stream latches.
func (m *viewerModel) nextBlock() tea.Msg {
	buf := make([]rune, m.blockSize)
	for {
		n, err := m.cs.ReadChars(buf)
		if err != nil {
			return blockMsg{err: err}
		}
		if n != 0 {
			return blockMsg{text: string(buf[:max(n, 0)]), n: n}
		}
	}
}

func (m *viewerModel) close() {
	if m.cs != nil {
		m.cs.Dispose()
	}
	if m.ar != nil {
		m.ar.TryDestroy()
	}
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.close()
			return m, tea.Quit

		case "enter", " ":
			if m.cs != nil && !m.done && m.err == nil {
				return m, m.nextBlock
			}
		}

	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}
		m.vp.SetContent(m.content.String())

	case openedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.cs = msg.cs
		m.ar = msg.ar
		return m, m.nextBlock

	case blockMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.n == charstream.Exhausted {
			m.done = true
			return m, nil
		}
		m.content.WriteString(msg.text)
		if m.ready {
			m.vp.SetContent(m.content.String())
			m.vp.GotoBottom()
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *viewerModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.ready || m.cs == nil {
		return "Opening stream..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("streamcat"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	b.WriteString(m.vp.View())
	b.WriteString("\n")

	st := m.cs.Stats()
	status := fmt.Sprintf("source=%s read=%d chars | %s", st.Source, st.TotalRead, m.ar.String())
	if m.done {
		b.WriteString(doneStyle.Render("(end) " + status))
	} else {
		b.WriteString(statusStyle.Render(status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space/enter next block • ↑/↓ scroll • q quit"))

	return b.String()
}

func runInteractive(filename string, blockSize int) error {
	if filename == "" {
		return fmt.Errorf("interactive mode needs -in FILE")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal")
	}
	p := tea.NewProgram(newViewerModel(filename, blockSize), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
