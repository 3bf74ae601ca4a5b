// Package tui provides the interactive chat interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-chat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-chat/internal/core/domain"
	"github.com/custodia-labs/sercha-chat/internal/core/ports/driving"
)

// Ports holds the services the chat view drives.
type Ports struct {
	Assistant driving.AssistantService
	Library   driving.LibraryService
}

// transcriptEntry is one rendered block in the conversation log.
type transcriptEntry struct {
	speaker string // "you", "assistant" or "error"
	text    string
}

// App is the bubbletea model for the chat session.
type App struct {
	styles *styles.Styles
	ports  *Ports
	ctx    context.Context

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	transcript []transcriptEntry
	waiting    bool
	width      int
	height     int
	ready      bool
}

// NewApp creates the chat application model.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil || ports.Assistant == nil {
		return nil, fmt.Errorf("tui: assistant service is required")
	}

	s := styles.DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask a question about your documents..."
	input.Prompt = "> "
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = s.AssistantLabel

	return &App{
		styles:   s,
		ports:    ports,
		ctx:      context.Background(),
		viewport: viewport.New(80, 20),
		input:    input,
		spin:     spin,
		width:    80,
		height:   24,
	}, nil
}

// WithContext sets the context used for assistant calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init initialises the model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = max(msg.Height-6, 3)
		a.input.Width = max(msg.Width-8, 20)
		a.ready = true
		a.refreshViewport()
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			if a.waiting {
				return a, nil
			}
			question := strings.TrimSpace(a.input.Value())
			if question == "" {
				return a, nil
			}
			a.input.Reset()
			a.transcript = append(a.transcript, transcriptEntry{speaker: "you", text: question})
			a.waiting = true
			a.refreshViewport()
			return a, tea.Batch(a.ask(question), a.spin.Tick)
		}

	case AnswerReceived:
		a.waiting = false
		if msg.Err != nil {
			a.transcript = append(a.transcript, transcriptEntry{speaker: "error", text: friendlyError(msg.Err)})
		} else {
			a.transcript = append(a.transcript, transcriptEntry{speaker: "assistant", text: msg.Answer})
		}
		a.refreshViewport()
		return a, nil

	case spinner.TickMsg:
		if a.waiting {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)

	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// View renders the chat session.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Sercha Chat"))
	b.WriteString("\n")

	if !a.assistantReady() && len(a.transcript) == 0 {
		b.WriteString(a.styles.Muted.Render("No documents indexed yet. Add some with: sercha-chat add <file>"))
		b.WriteString("\n")
	}

	b.WriteString(a.viewport.View())
	b.WriteString("\n")

	if a.waiting {
		b.WriteString(a.spin.View())
		b.WriteString(a.styles.Muted.Render(" thinking..."))
	} else {
		b.WriteString(a.styles.InputBorder.Render(a.input.View()))
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("enter: ask - esc: quit"))

	return b.String()
}

// ask calls the assistant off the UI goroutine.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ports.Assistant.Ask(a.ctx, question)
		return AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

// refreshViewport re-renders the transcript and scrolls to the bottom.
func (a *App) refreshViewport() {
	var b strings.Builder
	wrap := a.styles.Text.Width(max(a.width-2, 20))

	for i, entry := range a.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch entry.speaker {
		case "you":
			b.WriteString(a.styles.UserLabel.Render("You"))
			b.WriteString("\n")
			b.WriteString(wrap.Render(entry.text))
		case "assistant":
			b.WriteString(a.styles.AssistantLabel.Render("Assistant"))
			b.WriteString("\n")
			b.WriteString(wrap.Render(entry.text))
		default:
			b.WriteString(a.styles.ErrorText.Render(entry.text))
		}
	}

	a.viewport.SetContent(b.String())
	a.viewport.GotoBottom()
}

// assistantReady reports whether questions can be answered yet.
func (a *App) assistantReady() bool {
	if a.ports.Library == nil {
		return true
	}
	return a.ports.Library.Ready()
}

// friendlyError maps service errors to messages that make sense in a
// chat transcript.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotReady):
		return "No documents indexed yet. Add some with: sercha-chat add <file>"
	case errors.Is(err, domain.ErrExternalService):
		return "The model service could not be reached. Check your provider configuration and try again."
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}
