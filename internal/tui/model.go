package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medichat/internal/domain"
	"medichat/internal/pipeline"
	"medichat/internal/transcript"
)

// AnswerPort is the TUI-facing subset of the answer pipeline.
type AnswerPort interface {
	Answer(ctx context.Context, question string, opts domain.QueryOptions) (pipeline.Result, error)
}

// maxTokenSteps are the values ctrl+o cycles through.
var maxTokenSteps = []int{128, 256, 512, 1024, 2048, 4096}

// Model is the Bubble Tea model for the chat surface. Each submission runs
// the pipeline synchronously inside Update, so no further input is handled
// until the turn completes or fails.
type Model struct {
	pipe       AnswerPort
	transcript *transcript.Transcript
	input      textinput.Model
	viewport   viewport.Model
	opts       domain.QueryOptions
	status     string
	ready      bool
}

// New creates a new chat model with the given session settings.
func New(pipe AnswerPort, opts domain.QueryOptions) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		pipe:       pipe,
		transcript: transcript.New(),
		input:      ti,
		viewport:   vp,
		opts:       opts.Clamped(),
		status:     "Ready. Ask away.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around transcript and input boxes
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 2 + ih + 1 // header + status/settings lines + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(renderTranscript(m.transcript.Turns(), m.opts.ExpandSources))
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.submit(), nil
		case "ctrl+k":
			m.opts.TopK++
			if m.opts.TopK > domain.MaxTopK {
				m.opts.TopK = domain.MinTopK
			}
			m.status = m.settingsLine()
			return m, nil
		case "ctrl+t":
			m.opts.Temperature += 0.1
			if m.opts.Temperature > domain.MaxTemperature+1e-9 {
				m.opts.Temperature = domain.MinTemperature
			}
			m.status = m.settingsLine()
			return m, nil
		case "ctrl+o":
			m.opts.MaxTokens = nextMaxTokens(m.opts.MaxTokens)
			m.status = m.settingsLine()
			return m, nil
		case "ctrl+e":
			m.opts.ExpandSources = !m.opts.ExpandSources
			m.refresh()
			m.status = m.settingsLine()
			return m, nil
		case "pgup", "pgdown", "home", "end":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs one full turn. On failure the user turn stays recorded and the
// error is shown in the status line; no assistant turn is appended.
func (m Model) submit() Model {
	question := strings.TrimSpace(m.input.Value())
	if question == "" {
		return m
	}
	m.transcript.AppendUser(question)
	m.input.Reset()

	res, err := m.pipe.Answer(context.Background(), question, m.opts)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.refresh()
		return m
	}
	m.transcript.AppendAssistant(res.Answer, transcript.Cite(res.Passages))
	m.status = fmt.Sprintf("Answered with %d sources", len(res.Passages))
	m.refresh()
	return m
}

func (m *Model) refresh() {
	m.viewport.SetContent(renderTranscript(m.transcript.Turns(), m.opts.ExpandSources))
	m.viewport.GotoBottom()
}

// View renders the chat layout: header, transcript, input and status lines.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Ask Medichat!")
	body := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	settings := settingsStyle.Render(m.settingsLine())
	return header + "\n" + body + "\n" + input + "\n" + status + "\n" + settings
}

func (m Model) settingsLine() string {
	expand := "collapsed"
	if m.opts.ExpandSources {
		expand = "expanded"
	}
	return fmt.Sprintf("top-k %d (ctrl+k) · temp %.1f (ctrl+t) · max tokens %d (ctrl+o) · sources %s (ctrl+e)",
		m.opts.TopK, m.opts.Temperature, m.opts.MaxTokens, expand)
}

func nextMaxTokens(current int) int {
	for i, v := range maxTokenSteps {
		if current == v {
			return maxTokenSteps[(i+1)%len(maxTokenSteps)]
		}
	}
	return maxTokenSteps[0]
}

var (
	headerStyle        = lipgloss.NewStyle().Bold(true)
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	settingsStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	placeholderStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	sourceHeaderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sourceLabelStyle   = lipgloss.NewStyle().Bold(true)
	previewStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderTranscript replays the full ordered turn list. Past assistant turns
// re-render their source blocks too, honoring the current expand setting.
func renderTranscript(turns []domain.Turn, expandSources bool) string {
	if len(turns) == 0 {
		return "No messages yet."
	}
	blocks := make([]string, 0, len(turns))
	for _, turn := range turns {
		blocks = append(blocks, renderTurn(turn, expandSources))
	}
	return strings.Join(blocks, "\n\n")
}

func renderTurn(turn domain.Turn, expandSources bool) string {
	var b strings.Builder
	switch turn.Role {
	case domain.RoleAssistant:
		b.WriteString(assistantStyle.Render("Medichat:"))
	default:
		b.WriteString(userStyle.Render("You:"))
	}
	b.WriteString(" ")
	if turn.Text == "" && turn.Role == domain.RoleAssistant {
		b.WriteString(placeholderStyle.Render("(No answer text returned)"))
	} else {
		b.WriteString(turn.Text)
	}
	if src := renderSources(turn.Sources, expandSources); src != "" {
		b.WriteString("\n")
		b.WriteString(src)
	}
	return b.String()
}

func renderSources(sources []domain.SourceCitation, expanded bool) string {
	if len(sources) == 0 {
		return ""
	}
	if !expanded {
		return sourceHeaderStyle.Render(fmt.Sprintf("Sources (%d) (ctrl+e to view)", len(sources)))
	}
	var b strings.Builder
	b.WriteString(sourceHeaderStyle.Render(fmt.Sprintf("Sources (%d):", len(sources))))
	for i, s := range sources {
		b.WriteString("\n")
		b.WriteString(sourceLabelStyle.Render(fmt.Sprintf("[%d] %s", i+1, s.Label)))
		if s.Preview != "" {
			b.WriteString("\n    ")
			b.WriteString(previewStyle.Render(s.Preview))
		}
	}
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
