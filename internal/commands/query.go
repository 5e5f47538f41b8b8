package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dkoulouris/orthochat/internal/api"
	"github.com/dkoulouris/orthochat/internal/command"
	"github.com/dkoulouris/orthochat/internal/config"
	apierrors "github.com/dkoulouris/orthochat/internal/errors"
	"github.com/dkoulouris/orthochat/internal/glossary"
	"github.com/dkoulouris/orthochat/internal/models"
	"github.com/dkoulouris/orthochat/internal/prompt"
	"github.com/dkoulouris/orthochat/internal/render"
	"github.com/dkoulouris/orthochat/internal/scripture"
)

// Gradient colors for the loading animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorPrimary  = lipgloss.Color("#7aa2f7")
	colorAccent   = lipgloss.Color("#7dcfff")
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginBottom(0)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)

	modeIndicatorStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Italic(true)
)

// spinner handles the animated loading indicator
type spinner struct {
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner
func newSpinner(message string) *spinner {
	return &spinner{
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(os.Stderr, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(os.Stderr, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	spinIdx := s.frame % len(chars)
	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 16
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + s.frame) % len(gradientColors)
		charIdx := (i + s.frame/2) % len(barChars)
		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)

	fmt.Fprintf(os.Stderr, "\r\033[K%s %s %s %s", spinnerChar, bar.String(), msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(os.Stderr, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner and shows error
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// runQuery executes a single query and outputs the response.
// If rawOutput is true, only the raw response text is printed without
// decoration.
func runQuery(cfg config.Config, input string, rawOutput bool) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("input cannot be empty")
	}

	apiKey := config.LoadAPIKey()
	if apiKey == "" {
		return fmt.Errorf("no API key configured, run 'orthochat key set' or set %s", config.EnvAPIKey)
	}

	parsed := command.Parse(input)

	var matches []glossary.Match
	if parsed.Kind == command.KindTranslate {
		gloss, err := glossary.LoadDir(cfg.GlossaryDir, cfg.GlossaryMinScore)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: glossary load failed: %v\n", err)
		} else {
			matches = gloss.FindMatches(parsed.Payload)
			if cfg.Verbose && !rawOutput {
				fmt.Fprintf(os.Stderr, "[verbose] Glossary: %d terms loaded, %d matched\n", gloss.Len(), len(matches))
			}
		}
	}

	client := api.NewClient(apiKey)

	if cfg.Arena {
		return runArenaQuery(cfg, client, parsed, input, matches, rawOutput)
	}

	built, mode := prompt.Build(parsed, input, cfg.Orthodox, matches)

	if cfg.Verbose && !rawOutput {
		fmt.Fprintf(os.Stderr, "[verbose] Model: %s\n", cfg.DefaultModel)
		fmt.Fprintf(os.Stderr, "[verbose] Mode: %s\n", mode)
	}
	if cfg.Debug && !rawOutput && built != input {
		dumpPrompt("prompt", built)
	}

	var spin *spinner
	if !rawOutput {
		spin = newSpinner("Waiting for " + models.ModelFromID(cfg.DefaultModel).Name)
		spin.start()
	}

	startTime := time.Now()
	text, err := client.Generate(context.Background(), cfg.DefaultModel, []models.Message{models.UserMessage(built)})
	requestDuration := time.Since(startTime)

	if err != nil {
		if !rawOutput {
			spin.stopWithError()
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Request failed"))
		}
		return fmt.Errorf("request failed: %w", err)
	}
	if !rawOutput {
		spin.stopWithSuccess("Done")
	}

	if cfg.Verbose && !rawOutput {
		fmt.Fprintf(os.Stderr, "[verbose] Request took %s\n", requestDuration.Round(time.Millisecond))
	}

	text = applyFootnotes(cfg, mode, text, rawOutput)

	return writeResponse(cfg, mode, text, rawOutput)
}

// runArenaQuery dispatches the input to both arena models and prints
// the two responses in sequence.
func runArenaQuery(cfg config.Config, client api.ClientInterface, parsed command.Command, input string, matches []glossary.Match, rawOutput bool) error {
	promptA, mode := prompt.Build(parsed, input, cfg.OrthodoxA, matches)
	promptB, _ := prompt.Build(parsed, input, cfg.OrthodoxB, matches)

	if cfg.Verbose && !rawOutput {
		fmt.Fprintf(os.Stderr, "[verbose] Models: %s vs %s\n", cfg.ModelA, cfg.ModelB)
		fmt.Fprintf(os.Stderr, "[verbose] Mode: %s\n", mode)
	}
	// Each side can build a different prompt, so the debug view dumps
	// both as sent.
	if cfg.Debug && !rawOutput {
		if promptA != input {
			dumpPrompt("prompt A", promptA)
		}
		if promptB != input {
			dumpPrompt("prompt B", promptB)
		}
	}

	sessA := api.NewChatSession(client, cfg.ModelA)
	sessB := api.NewChatSession(client, cfg.ModelB)

	var spin *spinner
	if !rawOutput {
		spin = newSpinner(fmt.Sprintf("Arena: %s vs %s", cfg.ModelA, cfg.ModelB))
		spin.start()
	}

	resA, resB := api.DispatchArena(context.Background(), sessA, sessB, promptA, promptB)

	if !rawOutput {
		if resA.Err != nil && resB.Err != nil {
			spin.stopWithError()
		} else {
			spin.stopWithSuccess("Done")
		}
	}

	for _, res := range []api.ArenaResult{resA, resB} {
		if res.Err != nil {
			fmt.Fprintln(os.Stderr, formatErrorMessage(res.Err, res.ModelID))
			continue
		}
		text := applyFootnotes(cfg, mode, res.Text, rawOutput)
		if rawOutput {
			fmt.Printf("=== %s ===\n%s\n", res.ModelID, text)
			continue
		}
		printBubble(res.ModelID, mode, text)
	}

	if resA.Err != nil && resB.Err != nil {
		return fmt.Errorf("both arena models failed")
	}
	return nil
}

// applyFootnotes decorates annotate output with scripture footnotes
// when enabled. Lookup failures fall back to the undecorated text.
func applyFootnotes(cfg config.Config, mode prompt.Mode, text string, rawOutput bool) string {
	if mode != prompt.ModeAnnotate || !cfg.Footnotes {
		return text
	}

	svc := scripture.NewService()
	annotated, footnotes := svc.AppendFootnotes(context.Background(), text)
	if cfg.Verbose && !rawOutput {
		fmt.Fprintf(os.Stderr, "[verbose] Scripture: %d footnotes resolved\n", len(footnotes))
	}
	return annotated + scripture.FormatFootnotes(footnotes)
}

// writeResponse prints or saves the response text
func writeResponse(cfg config.Config, mode prompt.Mode, text string, rawOutput bool) error {
	if rawOutput {
		if outputFlag != "" {
			if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		fmt.Print(text)
		return nil
	}

	fmt.Fprintln(os.Stderr)

	if cfg.CopyToClipboard {
		if err := clipboard.WriteAll(text); err != nil {
			warnMsg := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(os.Stderr, warnMsg)
		} else {
			clipMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard")
			fmt.Fprintln(os.Stderr, clipMsg)
		}
	}

	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Response saved to %s", outputFlag),
		)
		fmt.Fprintln(os.Stderr, successMsg)
		return nil
	}

	printBubble(cfg.DefaultModel, mode, text)
	return nil
}

// printBubble renders one markdown response in a styled terminal bubble
func printBubble(modelID string, mode prompt.Mode, text string) {
	termWidth := getTerminalWidth()
	bubbleWidth := termWidth - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	if indicator := mode.Indicator(); indicator != "" {
		fmt.Println(modeIndicatorStyle.Render(indicator))
	}

	label := assistantLabelStyle.Render("✠ " + models.ModelFromID(modelID).Name)
	fmt.Println(label)

	renderOpts := render.LoadOptionsFromConfigWithWidth(contentWidth)
	rendered, err := render.Markdown(text, renderOpts)
	if err != nil {
		rendered = text
	}
	rendered = strings.TrimRight(rendered, "\n")

	bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
	fmt.Println(bubble)
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// dumpPrompt writes the exact text sent to a model to stderr
func dumpPrompt(label, text string) {
	fmt.Fprintf(os.Stderr, "--- %s ---\n%s\n--- end %s ---\n", label, text, label)
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	// Show response body if available
	if body := apierrors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
	} else {
		switch {
		case apierrors.IsAuthError(err):
			sb.WriteString(dimStyle.Render("\n  Hint: Run 'orthochat key set' to store a valid OpenRouter key"))
		case apierrors.IsRateLimitError(err):
			sb.WriteString(dimStyle.Render("\n  Hint: Free-tier limit reached. Try again later or use a different model"))
		case apierrors.IsNetworkError(err):
			sb.WriteString(dimStyle.Render("\n  Hint: Check your internet connection and try again"))
		case apierrors.IsTimeoutError(err):
			sb.WriteString(dimStyle.Render("\n  Hint: Request timed out. Try again or check your connection"))
		}
	}

	return sb.String()
}
