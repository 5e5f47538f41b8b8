package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoulouris/orthochat/internal/api"
	"github.com/dkoulouris/orthochat/internal/command"
	"github.com/dkoulouris/orthochat/internal/config"
	"github.com/dkoulouris/orthochat/internal/glossary"
	"github.com/dkoulouris/orthochat/internal/prompt"
	"github.com/dkoulouris/orthochat/internal/render"
	"github.com/dkoulouris/orthochat/internal/scripture"
	"github.com/dkoulouris/orthochat/internal/transcript"
)

// Message types for the TUI
type (
	responseMsg struct {
		text string
	}
	arenaResponseMsg struct {
		a, b api.ArenaResult
	}
	errMsg struct {
		err error
	}
	feedbackClearMsg struct{}
)

// ClientFactory builds an inference client for an API key. The settings
// overlay uses it to swap the client when the user stores a new key.
type ClientFactory func(apiKey string) api.ClientInterface

// Deps bundles everything the chat model needs.
type Deps struct {
	Client    api.ClientInterface
	NewClient ClientFactory
	Config    config.Config
	Glossary  *glossary.Glossary
	Scripture *scripture.Service
	HasKey    bool
}

// chatMessage is one rendered entry in a side's transcript
type chatMessage struct {
	role    string // "user" or "assistant"
	content string
}

// Model represents the chat TUI state
type Model struct {
	deps     Deps
	cfg      config.Config
	sessionA *api.ChatSession
	sessionB *api.ChatSession

	record *transcript.Transcript

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// Transcript state. Outside arena mode only side A is used.
	messagesA []chatMessage
	messagesB []chatMessage
	errA      error
	errB      error

	// Last-turn metadata
	lastMode   prompt.Mode
	lastRaw    string
	lastPrompt string

	// State
	loading  bool
	ready    bool
	err      error
	feedback string
	hasKey   bool

	settings *settingsState

	// Dimensions
	width  int
	height int
}

// NewChatModel creates the chat TUI model.
func NewChatModel(deps Deps) Model {
	ta := textarea.New()
	ta.Placeholder = "translate <text>, annotate <text>, or plain chat..."
	ta.CharLimit = 8000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	m := Model{
		deps:     deps,
		cfg:      deps.Config,
		textarea: ta,
		spinner:  s,
		record:   transcript.New(),
		hasKey:   deps.HasKey,
	}

	m.sessionA = api.NewChatSession(deps.Client, m.cfg.ModelA)
	if m.cfg.Arena {
		m.sessionB = api.NewChatSession(deps.Client, m.cfg.ModelB)
	} else {
		m.sessionA.SetModelID(m.cfg.DefaultModel)
	}

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// clearFeedback returns a command that clears the feedback line after a delay
func clearFeedback() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.settings != nil {
		return m.updateSettings(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.loading {
				m.loading = false
			} else {
				return m, tea.Quit
			}

		case "enter":
			if !m.loading && strings.TrimSpace(m.textarea.Value()) != "" {
				input := strings.TrimSpace(m.textarea.Value())
				m.textarea.Reset()

				if handled, model, cmd := m.handleSlashCommand(input); handled {
					return model, cmd
				}

				return m.submit(input)
			}
		}

	case responseMsg:
		m.loading = false
		m.messagesA = append(m.messagesA, chatMessage{role: "assistant", content: msg.text})
		m.record.AddAssistant(m.sessionA.ModelID(), msg.text)
		m.updateViewport()
		m.viewport.GotoBottom()

	case arenaResponseMsg:
		m.loading = false
		m.errA, m.errB = msg.a.Err, msg.b.Err
		if msg.a.Err == nil {
			m.messagesA = append(m.messagesA, chatMessage{role: "assistant", content: msg.a.Text})
			m.record.AddAssistant(msg.a.ModelID, msg.a.Text)
		}
		if msg.b.Err == nil {
			m.messagesB = append(m.messagesB, chatMessage{role: "assistant", content: msg.b.Text})
			m.record.AddAssistant(msg.b.ModelID, msg.b.Text)
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case errMsg:
		m.loading = false
		m.err = msg.err

	case feedbackClearMsg:
		m.feedback = ""

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleSlashCommand intercepts chat commands. Returns handled=false when
// the input should be sent to the model instead.
func (m Model) handleSlashCommand(input string) (bool, tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/exit", "quit", "exit":
		return true, m, tea.Quit

	case "/clear":
		m.sessionA.Clear()
		if m.sessionB != nil {
			m.sessionB.Clear()
		}
		m.record.Clear()
		m.messagesA = nil
		m.messagesB = nil
		m.errA, m.errB = nil, nil
		m.err = nil
		m.lastMode = ""
		m.lastPrompt = ""
		m.feedback = "Conversation cleared"
		m.updateViewport()
		return true, m, clearFeedback()

	case "/save":
		dir := ""
		if len(fields) > 1 {
			dir = fields[1]
		}
		path, err := m.record.Save(dir)
		if err != nil {
			m.err = err
		} else {
			m.feedback = "Saved to " + path
		}
		return true, m, clearFeedback()

	case "/debug":
		m.cfg.Debug = !m.cfg.Debug
		if m.cfg.Debug {
			m.feedback = "Debug mode on"
		} else {
			m.feedback = "Debug mode off"
		}
		return true, m, clearFeedback()

	case "/settings":
		m.settings = newSettingsState(m.hasKey)
		return true, m, nil
	}

	return false, m, nil
}

// submit parses the input, builds the per-side prompts, and dispatches
// the request.
func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	if !m.hasKey {
		m.err = fmt.Errorf("no API key configured, open /settings or run 'orthochat key set'")
		return m, nil
	}

	parsed := command.Parse(input)

	var matches []glossary.Match
	if parsed.Kind == command.KindTranslate && m.deps.Glossary != nil {
		matches = m.deps.Glossary.FindMatches(parsed.Payload)
	}

	m.messagesA = append(m.messagesA, chatMessage{role: "user", content: input})
	if m.cfg.Arena {
		m.messagesB = append(m.messagesB, chatMessage{role: "user", content: input})
	}
	m.record.AddUser(input)

	m.loading = true
	m.err = nil
	m.errA, m.errB = nil, nil
	m.lastRaw = input

	var cmd tea.Cmd
	if m.cfg.Arena {
		promptA, mode := prompt.Build(parsed, input, m.cfg.OrthodoxA, matches)
		promptB, _ := prompt.Build(parsed, input, m.cfg.OrthodoxB, matches)
		m.lastMode = mode
		m.lastPrompt = promptA
		cmd = m.sendArena(promptA, promptB, mode)
	} else {
		built, mode := prompt.Build(parsed, input, m.cfg.Orthodox, matches)
		m.lastMode = mode
		m.lastPrompt = built
		cmd = m.sendSingle(built, mode)
	}

	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(cmd, m.spinner.Tick)
}

// sendSingle dispatches one prompt to session A.
func (m Model) sendSingle(built string, mode prompt.Mode) tea.Cmd {
	session := m.sessionA
	decorate := m.decorator(mode)
	return func() tea.Msg {
		reply, err := session.SendMessage(context.Background(), built)
		if err != nil {
			return errMsg{err: err}
		}
		return responseMsg{text: decorate(reply)}
	}
}

// sendArena dispatches per-side prompts to both sessions in parallel.
func (m Model) sendArena(promptA, promptB string, mode prompt.Mode) tea.Cmd {
	sessA, sessB := m.sessionA, m.sessionB
	decorate := m.decorator(mode)
	return func() tea.Msg {
		resA, resB := api.DispatchArena(context.Background(), sessA, sessB, promptA, promptB)
		if resA.Err == nil {
			resA.Text = decorate(resA.Text)
		}
		if resB.Err == nil {
			resB.Text = decorate(resB.Text)
		}
		return arenaResponseMsg{a: resA, b: resB}
	}
}

// decorator returns the post-processing applied to a reply. Annotate
// output gets scripture footnotes when enabled; everything else passes
// through unchanged.
func (m Model) decorator(mode prompt.Mode) func(string) string {
	if mode != prompt.ModeAnnotate || !m.cfg.Footnotes || m.deps.Scripture == nil {
		return func(s string) string { return s }
	}
	svc := m.deps.Scripture
	return func(s string) string {
		annotated, footnotes := svc.AppendFootnotes(context.Background(), s)
		return annotated + scripture.FormatFootnotes(footnotes)
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.settings != nil {
		return m.renderSettings()
	}

	var sections []string
	contentWidth := m.width - 4

	sections = append(sections, m.renderHeader(contentWidth))

	if !m.hasKey {
		sections = append(sections, warningStyle.Render("⚠ No API key configured. Open /settings or run 'orthochat key set'."))
	}

	if indicator := m.lastMode.Indicator(); indicator != "" {
		sections = append(sections, modeIndicatorStyle.Render(indicator))
	}

	var messagesContent string
	if len(m.messagesA) == 0 && len(m.messagesB) == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	if m.cfg.Debug && m.lastPrompt != "" && m.lastPrompt != m.lastRaw {
		debugContent := "Prompt sent:\n" + m.lastPrompt
		sections = append(sections, debugPanelStyle.Width(contentWidth-2).Render(debugContent))
	}

	var inputContent string
	if m.loading {
		inputContent = m.spinner.View() + loadingStyle.Render(" Waiting for the model...")
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.feedback != "" {
		sections = append(sections, feedbackStyle.Render("  "+m.feedback))
	}
	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title bar with the active model(s).
func (m Model) renderHeader(contentWidth int) string {
	parts := []string{
		titleStyle.Render("✠ Orthodox Translation Assistant"),
	}

	if m.cfg.Arena {
		parts = append(parts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(fmt.Sprintf("%s vs %s", m.sessionA.ModelID(), m.sessionB.ModelID())),
		)
	} else {
		parts = append(parts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(m.sessionA.ModelID()),
		)
		if m.cfg.Orthodox {
			parts = append(parts, hintStyle.Render("  •  "), settingsEnabledStyle.Render("orthodox"))
		}
	}

	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	return headerStyle.Width(contentWidth).Render(headerContent)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✠")
	title := welcomeTitleStyle.Width(width).Render("Orthodox Translation Assistant")
	subtitle := welcomeStyle.Width(width).Render(
		"translate <text> for Traditional Chinese, annotate <text> for Bible references")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"/settings", "Settings"},
		{"/save", "Export"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	if m.cfg.Arena {
		m.viewport.SetContent(m.renderArenaColumns())
		return
	}

	m.viewport.SetContent(renderColumn(m.messagesA, m.viewport.Width-6))
}

// renderArenaColumns renders the two sides next to each other
func (m Model) renderArenaColumns() string {
	colWidth := (m.viewport.Width - 4) / 2

	headerA := arenaHeaderStyle.Render("A: " + m.sessionA.ModelID() + orthodoxTag(m.cfg.OrthodoxA))
	headerB := arenaHeaderStyle.Render("B: " + m.sessionB.ModelID() + orthodoxTag(m.cfg.OrthodoxB))

	bodyA := renderColumn(m.messagesA, colWidth-4)
	bodyB := renderColumn(m.messagesB, colWidth-4)

	if m.errA != nil {
		bodyA += "\n" + errorStyle.Width(colWidth-4).Render(fmt.Sprintf("✗ %v", m.errA))
	}
	if m.errB != nil {
		bodyB += "\n" + errorStyle.Width(colWidth-4).Render(fmt.Sprintf("✗ %v", m.errB))
	}

	panelA := arenaPanelStyle.Width(colWidth).Render(headerA + "\n\n" + bodyA)
	panelB := arenaPanelStyle.Width(colWidth).Render(headerB + "\n\n" + bodyB)

	return lipgloss.JoinHorizontal(lipgloss.Top, panelA, " ", panelB)
}

func orthodoxTag(on bool) string {
	if on {
		return " [orthodox]"
	}
	return " [standard]"
}

// renderColumn renders one side's messages as labeled bubbles
func renderColumn(messages []chatMessage, bubbleWidth int) string {
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var content strings.Builder
	for i, msg := range messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.role == "user" {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✠ Assistant")

			rendered, err := render.MarkdownWithWidth(msg.content, bubbleWidth-4)
			if err != nil {
				rendered = msg.content
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	return content.String()
}

// RunChat starts the chat TUI
func RunChat(deps Deps) error {
	m := NewChatModel(deps)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
