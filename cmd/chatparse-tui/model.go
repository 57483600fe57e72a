package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/jeanpaul/chatparse/internal/chatmsg"
	"github.com/jeanpaul/chatparse/internal/chatparse/dialect"
	"github.com/jeanpaul/chatparse/internal/config"
	"github.com/jeanpaul/chatparse/internal/schema"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// parser is the subset of a dialect type chatparse-tui needs to replay a
// transcript incrementally.
type parser interface {
	Parse(input string, isPartial bool, tools []chatmsg.ToolDef) (*chatmsg.Message, error)
}

// step is one reparse of a growing prefix of the transcript.
type step struct {
	revealed int
	msg      *chatmsg.Message
	err      error
}

type model struct {
	cfg        *config.Config
	tools      []chatmsg.ToolDef
	transcript string
	chunk      int

	steps  []step
	cursor int

	vp       viewport.Model
	renderer *glamour.TermRenderer
	ready    bool
	width, height int
}

func newModel(cfg *config.Config, tools []chatmsg.ToolDef, transcript string, chunk int) model {
	if chunk < 1 {
		chunk = 1
	}
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	return model{
		cfg:        cfg,
		tools:      tools,
		transcript: transcript,
		chunk:      chunk,
		renderer:   r,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) buildDialect() parser {
	switch m.cfg.Dialect {
	case "deepseek":
		return dialect.DeepSeek{ReasoningInContent: m.cfg.ReasoningInContent}
	case "xmlfunctions":
		return dialect.XMLFunctions{Syntax: m.cfg.Syntax(), Validator: m.schemaValidator()}
	default:
		return dialect.Generic{Syntax: m.cfg.Syntax()}
	}
}

func (m model) schemaValidator() *schema.Validator {
	for _, t := range m.tools {
		if t.Parameters != nil {
			return schema.NewValidator()
		}
	}
	return nil
}

// reparseTo reveals `revealed` bytes of the transcript and parses them,
// appending the resulting step. isPartial is false only once the full
// transcript has been revealed.
func (m *model) reparseTo(revealed int) {
	if revealed > len(m.transcript) {
		revealed = len(m.transcript)
	}
	prefix := m.transcript[:revealed]
	isPartial := revealed < len(m.transcript)
	d := m.buildDialect()
	msg, err := d.Parse(prefix, isPartial, m.tools)
	m.steps = append(m.steps, step{revealed: revealed, msg: msg, err: err})
	m.cursor = len(m.steps) - 1
}

func (m *model) advance() {
	if m.cursor < len(m.steps)-1 {
		m.cursor++
		return
	}
	last := 0
	if len(m.steps) > 0 {
		last = m.steps[len(m.steps)-1].revealed
	}
	if last >= len(m.transcript) {
		return
	}
	m.reparseTo(last + m.chunk)
}

func (m *model) retreat() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *model) finish() {
	for {
		last := 0
		if len(m.steps) > 0 {
			last = m.steps[len(m.steps)-1].revealed
		}
		if last >= len(m.transcript) {
			return
		}
		m.reparseTo(last + m.chunk)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-3)
			m.ready = true
			m.reparseTo(m.chunk)
		} else {
			m.vp.Width, m.vp.Height = msg.Width, msg.Height-3
		}
		m.vp.SetContent(m.render())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "right", "n", " ":
			m.advance()
		case "left", "p":
			m.retreat()
		case "f":
			m.finish()
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		m.vp.SetContent(m.render())
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	footer := dimStyle.Render(fmt.Sprintf(
		"step %d/%d  %d/%d bytes  [→/space next] [←/p back] [f finish] [q quit]",
		m.cursor+1, len(m.steps), m.currentRevealed(), len(m.transcript)))
	return m.vp.View() + "\n" + footer
}

func (m model) currentRevealed() int {
	if len(m.steps) == 0 {
		return 0
	}
	return m.steps[m.cursor].revealed
}

func (m model) render() string {
	if len(m.steps) == 0 {
		return ""
	}
	cur := m.steps[m.cursor]
	var b strings.Builder

	fmt.Fprintln(&b, headerStyle.Render(fmt.Sprintf("dialect: %s", m.cfg.Dialect)))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, headerStyle.Render("revealed input"))
	fmt.Fprintln(&b, dimStyle.Render(quoteControl(m.transcript[:cur.revealed])))
	fmt.Fprintln(&b)

	if cur.err != nil {
		fmt.Fprintln(&b, removedStyle.Render(fmt.Sprintf("parse error: %s", cur.err)))
		return b.String()
	}

	if cur.msg.Content != "" {
		fmt.Fprintln(&b, headerStyle.Render("content (rendered)"))
		fmt.Fprintln(&b, strings.TrimRight(m.renderMarkdown(cur.msg.Content), "\n"))
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, headerStyle.Render("message"))
	fmt.Fprintln(&b, serialize(cur.msg))

	if m.cursor > 0 {
		prev := m.steps[m.cursor-1]
		if prev.err == nil {
			fmt.Fprintln(&b)
			fmt.Fprintln(&b, headerStyle.Render("diff from previous step"))
			fmt.Fprintln(&b, colorizeDiff(unifiedDiff(serialize(prev.msg), serialize(cur.msg))))
		}
	}
	return b.String()
}

// renderMarkdown renders content through glamour, falling back to the raw
// text if the renderer failed to construct or a chunk of content isn't
// valid markdown (a likely state mid-stream, while content is still partial).
func (m model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func serialize(msg *chatmsg.Message) string {
	if msg == nil {
		return ""
	}
	data, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return fmt.Sprintf("<encode error: %s>", err)
	}
	return string(data)
}

// unifiedDiff renders the textual difference between two message dumps,
// demonstrating that later steps only ever extend earlier ones.
func unifiedDiff(before, after string) string {
	if before == after {
		return dimStyle.Render("(unchanged)")
	}
	edits := myers.ComputeEdits(span.URIFromPath("message"), before, after)
	unified := gotextdiff.ToUnified("previous", "current", before, edits)
	return fmt.Sprint(unified)
}

func colorizeDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			lines[i] = addedStyle.Render(line)
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			lines[i] = removedStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func quoteControl(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", "\\n"), "\t", "\\t")
}
