package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoulouris/orthochat/internal/api"
	"github.com/dkoulouris/orthochat/internal/config"
	"github.com/dkoulouris/orthochat/internal/models"
)

// Settings menu item indices
const (
	settingAPIKey = iota
	settingArena
	settingModelA
	settingModelB
	settingOrthodoxA
	settingOrthodoxB
	settingDebug
	settingFootnotes
	settingClose
	settingItemCount
)

// settingsState is the state of the settings overlay
type settingsState struct {
	cursor     int
	editingKey bool
	keyInput   textinput.Model
	hasKey     bool
	feedback   string
}

func newSettingsState(hasKey bool) *settingsState {
	ti := textinput.New()
	ti.Placeholder = "sk-or-v1-..."
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 200

	return &settingsState{
		keyInput: ti,
		hasKey:   hasKey,
	}
}

// updateSettings handles updates while the settings overlay is open
func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.settings

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if s.editingKey {
			return m.updateKeyEntry(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc", "q":
			return m.closeSettings()

		case "up", "k":
			for {
				s.cursor--
				if s.cursor < 0 {
					s.cursor = settingItemCount - 1
				}
				if m.settingVisible(s.cursor) {
					break
				}
			}

		case "down", "j":
			for {
				s.cursor++
				if s.cursor >= settingItemCount {
					s.cursor = 0
				}
				if m.settingVisible(s.cursor) {
					break
				}
			}

		case "enter", " ":
			return m.handleSettingSelect()
		}
	}

	return m, nil
}

// updateKeyEntry handles keystrokes while typing the API key
func (m Model) updateKeyEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.settings

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		s.editingKey = false
		s.keyInput.Reset()
		return m, nil

	case "enter":
		key := strings.TrimSpace(s.keyInput.Value())
		s.editingKey = false
		s.keyInput.Reset()

		if key == "" {
			return m, nil
		}

		if err := config.SaveAPIKey(key); err != nil {
			s.feedback = fmt.Sprintf("Failed to save key: %v", err)
			return m, nil
		}

		// Swap in a client carrying the new key. Session context restarts.
		if m.deps.NewClient != nil {
			m.deps.Client = m.deps.NewClient(key)
			m.sessionA = api.NewChatSession(m.deps.Client, m.sessionA.ModelID())
			if m.sessionB != nil {
				m.sessionB = api.NewChatSession(m.deps.Client, m.sessionB.ModelID())
			}
		}
		m.hasKey = true
		s.hasKey = true
		s.feedback = "API key saved"
		return m, nil
	}

	var cmd tea.Cmd
	s.keyInput, cmd = s.keyInput.Update(msg)
	return m, cmd
}

// settingVisible reports whether a menu row applies in the current mode.
// The B-side rows only exist while arena mode is on.
func (m Model) settingVisible(idx int) bool {
	if idx == settingModelB || idx == settingOrthodoxB {
		return m.cfg.Arena
	}
	return true
}

// handleSettingSelect toggles or cycles the selected item
func (m Model) handleSettingSelect() (tea.Model, tea.Cmd) {
	s := m.settings
	if !m.settingVisible(s.cursor) {
		return m, nil
	}

	switch s.cursor {
	case settingAPIKey:
		s.editingKey = true
		s.keyInput.Focus()
		return m, textinput.Blink

	case settingArena:
		m.cfg.Arena = !m.cfg.Arena

	case settingModelA:
		m.cfg.ModelA = nextModelID(m.cfg.ModelA)
		if !m.cfg.Arena {
			m.cfg.DefaultModel = m.cfg.ModelA
		}

	case settingModelB:
		m.cfg.ModelB = nextModelID(m.cfg.ModelB)

	case settingOrthodoxA:
		if m.cfg.Arena {
			m.cfg.OrthodoxA = !m.cfg.OrthodoxA
		} else {
			m.cfg.Orthodox = !m.cfg.Orthodox
		}

	case settingOrthodoxB:
		m.cfg.OrthodoxB = !m.cfg.OrthodoxB

	case settingDebug:
		m.cfg.Debug = !m.cfg.Debug

	case settingFootnotes:
		m.cfg.Footnotes = !m.cfg.Footnotes

	case settingClose:
		return m.closeSettings()
	}

	if err := config.SaveConfig(m.cfg); err != nil {
		s.feedback = fmt.Sprintf("Failed to save settings: %v", err)
	} else {
		s.feedback = "Saved"
	}

	return m, nil
}

// closeSettings applies the configuration to the live sessions and
// returns to the chat view.
func (m Model) closeSettings() (tea.Model, tea.Cmd) {
	if m.cfg.Arena {
		m.sessionA.SetModelID(m.cfg.ModelA)
		if m.sessionB == nil {
			m.sessionB = api.NewChatSession(m.deps.Client, m.cfg.ModelB)
		} else {
			m.sessionB.SetModelID(m.cfg.ModelB)
		}
	} else {
		m.sessionA.SetModelID(m.cfg.DefaultModel)
	}

	m.settings = nil
	m.updateViewport()
	return m, nil
}

// nextModelID cycles through the model catalog
func nextModelID(current string) string {
	catalog := models.AllModels()
	for i, mdl := range catalog {
		if mdl.ID == current {
			return catalog[(i+1)%len(catalog)].ID
		}
	}
	return catalog[0].ID
}

// renderSettings renders the settings overlay
func (m Model) renderSettings() string {
	s := m.settings

	width := m.width - 8
	if width < 50 {
		width = 50
	}

	var content strings.Builder
	content.WriteString(settingsTitleStyle.Render("⚙ Settings"))
	content.WriteString("\n\n")

	if s.editingKey {
		content.WriteString(settingsItemStyle.Render("Enter OpenRouter API key:"))
		content.WriteString("\n")
		content.WriteString("  " + s.keyInput.View())
		content.WriteString("\n\n")
		content.WriteString(hintStyle.Render("  Enter to save, Esc to cancel"))
	} else {
		for i := 0; i < settingItemCount; i++ {
			if !m.settingVisible(i) {
				continue
			}
			content.WriteString(m.renderSettingItem(i))
			content.WriteString("\n")
		}

		content.WriteString("\n")
		shortcuts := []string{
			statusKeyStyle.Render("↑↓") + statusDescStyle.Render(" Navigate"),
			statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Toggle"),
			statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Back to chat"),
		}
		content.WriteString(strings.Join(shortcuts, "  │  "))
	}

	if s.feedback != "" {
		content.WriteString("\n\n")
		content.WriteString(feedbackStyle.Render("  " + s.feedback))
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(content.String())
}

// renderSettingItem renders one line of the settings menu
func (m Model) renderSettingItem(idx int) string {
	s := m.settings

	cursor := "  "
	style := settingsItemStyle
	if idx == s.cursor {
		cursor = settingsCursorStyle.Render("▸ ")
		style = settingsSelectedStyle
	}

	onOff := func(v bool) string {
		if v {
			return settingsEnabledStyle.Render("on")
		}
		return settingsDisabledStyle.Render("off")
	}

	var label, value string
	switch idx {
	case settingAPIKey:
		label = "API key"
		if s.hasKey {
			value = settingsEnabledStyle.Render("configured")
		} else {
			value = settingsDisabledStyle.Render("not set")
		}
	case settingArena:
		label = "Arena mode"
		value = onOff(m.cfg.Arena)
	case settingModelA:
		if m.cfg.Arena {
			label = "Model A"
		} else {
			label = "Model"
		}
		value = settingsValueStyle.Render(models.ModelFromID(m.cfg.ModelA).Name)
	case settingModelB:
		label = "Model B"
		value = settingsValueStyle.Render(models.ModelFromID(m.cfg.ModelB).Name)
	case settingOrthodoxA:
		if m.cfg.Arena {
			label = "Orthodox context (A)"
			value = onOff(m.cfg.OrthodoxA)
		} else {
			label = "Orthodox context"
			value = onOff(m.cfg.Orthodox)
		}
	case settingOrthodoxB:
		label = "Orthodox context (B)"
		value = onOff(m.cfg.OrthodoxB)
	case settingDebug:
		label = "Debug prompts"
		value = onOff(m.cfg.Debug)
	case settingFootnotes:
		label = "Scripture footnotes"
		value = onOff(m.cfg.Footnotes)
	case settingClose:
		label = "Back to chat"
	}

	line := fmt.Sprintf("%s%s", cursor, style.Render(label))
	if value != "" {
		line += "  " + value
	}
	return line
}
