package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bizpilot/config"
	appmodel "bizpilot/model"
)

const pingTimeout = 5 * time.Second

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// Speech-to-text collaborator, nil or unavailable when not configured
	dictation appmodel.Dictation

	// UI Components
	viewport viewport.Model
	textarea textarea.Model
	form     ideaForm

	// Window state
	width  int
	height int
	ready  bool

	// Shown while the assistant turn is still empty
	loadingSpinner spinner.Model

	showHelp  bool
	showAbout bool

	// Acknowledge modal (dictation failures, clipboard errors)
	showAcknowledgeModal  bool
	acknowledgeModalTitle string
	acknowledgeModalMsg   string
	acknowledgeModalType  ModalType

	// Provider reachability from the startup Ping
	pinged  bool
	pingErr error

	// Short-lived status bar notice ("Copied roadmap")
	flash      string
	flashTicks int

	version string
	license string
}

func NewAppView(dataModel *appmodel.Model, dict appmodel.Dictation, version, license string) AppView {
	if dataModel.Config.Keybindings == nil {
		dataModel.Config.Keybindings = config.DefaultKeybindings()
	}

	ta := textarea.New()
	ta.Placeholder = "Ask a follow-up question..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Enter sends (handled in Update), Alt+Enter inserts a newline
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = AssistantStyle

	return AppView{
		dataModel:      dataModel,
		dictation:      dict,
		viewport:       viewport.New(0, 0),
		textarea:       ta,
		form:           newIdeaForm(),
		loadingSpinner: s,
		version:        version,
		license:        license,
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		a.loadingSpinner.Tick,
		a.pingProvider(),
	)
}

// pingProvider checks reachability once so a dead backend shows up in the
// status bar before the founder waits out a full generation timeout.
func (a AppView) pingProvider() tea.Cmd {
	p := a.dataModel.Provider()
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		err := p.Ping(ctx)
		if err != nil {
			config.DebugLog.Warnf("[AppView] %s unreachable: %v", p.Name(), err)
		}
		return pingResultMsg{Err: err}
	}
}

// Model exposes the data model to main for shutdown.
func (a AppView) Model() *appmodel.Model {
	return a.dataModel
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading BizPilot..."
	}

	// Modal layers, top first
	if a.showAcknowledgeModal {
		return RenderAcknowledgeModal(
			a.acknowledgeModalTitle,
			a.acknowledgeModalMsg,
			a.acknowledgeModalType,
			a.width,
			a.height,
		)
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.showAbout {
		return renderAboutModal(a, a.width, a.height, a.version, a.license)
	}

	statusBar := a.renderStatusBar()

	if a.dataModel.State() == appmodel.StateIdle {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			a.form.View(a.width, a.height-1),
			statusBar,
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderTitle(),
		"",
		a.viewport.View(),
		a.textarea.View(),
		statusBar,
	)
}

func (a AppView) renderTitle() string {
	title := AssistantStyle.Render("BizPilot") + TitleStyle.Render(" - Business Roadmap")
	if a.listening() {
		title += ErrorStyle.Render("  ● Listening")
	}
	return title
}

func (a AppView) listening() bool {
	return a.dictation != nil && a.dictation.Listening()
}
