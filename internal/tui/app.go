package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jasonKoogler/iqc/internal/config"
	apperrors "github.com/jasonKoogler/iqc/internal/errors"
	"github.com/jasonKoogler/iqc/internal/generation"
	"github.com/jasonKoogler/iqc/internal/history"
	"github.com/jasonKoogler/iqc/internal/logging"
	"github.com/jasonKoogler/iqc/internal/preview"
	"github.com/jasonKoogler/iqc/internal/request"
)

// generator is the part of the generation controller the screen drives
type generator interface {
	Submit(req request.GenerationRequest) error
	Session() generation.Session
}

type keyMap struct {
	Generate key.Binding
	Download key.Binding
	Share    key.Binding
	Reload   key.Binding
	Next     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Generate: key.NewBinding(key.WithKeys("ctrl+g", "ctrl+s"), key.WithHelp("ctrl+g", "generate")),
		Download: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "download")),
		Share:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "share")),
		Reload:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry preview")),
		Next:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Download, k.Share, k.Next, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Generate, k.Download, k.Share}, {k.Reload, k.Next, k.Quit}}
}

// App is the generator screen: the request form beside the preview panel
type App struct {
	controller generator
	panel      *preview.Panel
	logger     logging.Logger
	history    *history.Recorder
	theme      Theme

	form    FormModel
	preview PreviewModel
	toast   ToastModel
	keys    keyMap
	help    help.Model

	session generation.Session
	width   int
	height  int
}

// NewApp creates the TUI application from the app context
func NewApp(ctx *config.AppContext) *App {
	mgr := ctx.ConfigManager
	app := newApp(ctx.Controller, ctx.Panel, ctx.Logger, ThemeFor(mgr.GetString(config.UIThemeKey)), FormDefaults{
		Carrier: mgr.DefaultCarrier(),
		Battery: mgr.DefaultBattery(),
	})
	app.history = ctx.History
	return app
}

func newApp(controller generator, panel *preview.Panel, logger logging.Logger, theme Theme, defaults FormDefaults) *App {
	return &App{
		controller: controller,
		panel:      panel,
		logger:     logger,
		theme:      theme,
		form:       NewForm(defaults),
		preview:    NewPreview(panel),
		keys:       defaultKeyMap(),
		help:       help.New(),
		session:    controller.Session(),
	}
}

// Init initializes the TUI application
func (a *App) Init() tea.Cmd {
	a.logger.Info("Starting generator TUI")
	return a.form.Init()
}

// Update handles messages and updates the application state
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		a.logger.Debug("Key pressed: %s", msg.String())
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Generate):
			return a, a.submit()
		case key.Matches(msg, a.keys.Download):
			return a, a.download()
		case key.Matches(msg, a.keys.Share):
			return a, a.share()
		case key.Matches(msg, a.keys.Reload):
			return a, a.reload()
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case sessionMsg:
		return a, a.applySession(msg.session)

	case previewLoadedMsg:
		if a.panel.MarkDecoded(msg.url, msg.info) {
			a.preview.syncSpinner()
		}
		return a, nil

	case previewFailedMsg:
		a.panel.MarkFailed(msg.url, msg.err)
		a.preview.syncSpinner()
		return a, nil

	case exportDoneMsg:
		return a, a.exportDone(msg)

	case toastExpiredMsg:
		a.toast = a.toast.Update(msg)
		return a, nil

	case tickMsg:
		var cmd tea.Cmd
		a.preview, cmd = a.preview.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// submit hands the form to the controller. Blank messages never reach it.
func (a *App) submit() tea.Cmd {
	if !a.form.CanSubmit() {
		return a.toast.FromError(apperrors.ErrEmptyText)
	}
	req := a.form.Request()
	if err := a.controller.Submit(req); err != nil {
		a.logger.Debug("Submit rejected: %v", err)
		return tea.Batch(a.toast.FromError(err), a.applySession(a.controller.Session()))
	}
	return a.applySession(a.controller.Session())
}

// applySession moves the preview forward to s. Snapshots can arrive out of
// order from the observer bridge, so anything older than the current one is dropped.
func (a *App) applySession(s generation.Session) tea.Cmd {
	if !sessionNewer(s, a.session) {
		return nil
	}
	a.session = s

	var cmds []tea.Cmd
	if a.panel.Sync(s) {
		cmds = append(cmds, loadCmd(a.panel))
	}
	cmds = append(cmds, a.preview.syncSpinner())
	return tea.Batch(cmds...)
}

// sessionNewer orders snapshots by generation, then by status progress
func sessionNewer(candidate, current generation.Session) bool {
	if candidate.Generation != current.Generation {
		return candidate.Generation > current.Generation
	}
	return statusRank(candidate.Status) > statusRank(current.Status)
}

func statusRank(s generation.Status) int {
	switch s {
	case generation.StatusIdle:
		return 0
	case generation.StatusLoading:
		return 1
	default:
		return 2
	}
}

func (a *App) download() tea.Cmd {
	if !a.panel.CanExport() {
		return nil
	}
	return downloadCmd(a.panel)
}

func (a *App) share() tea.Cmd {
	if !a.panel.CanExport() {
		return nil
	}
	return shareCmd(a.panel)
}

func (a *App) reload() tea.Cmd {
	if !a.panel.RetryLoad() {
		return nil
	}
	return tea.Batch(loadCmd(a.panel), a.preview.syncSpinner())
}

func (a *App) exportDone(msg exportDoneMsg) tea.Cmd {
	action := history.ActionDownload
	if msg.kind == exportShare {
		action = history.ActionShare
	}
	if err := a.history.RecordExport(action, a.panel.URL(), msg.path, msg.err); err != nil {
		a.logger.Warn("Failed to record history: %v", err)
	}

	if msg.err != nil {
		return a.toast.FromError(msg.err)
	}
	if msg.kind == exportDownload {
		return a.toast.Success(fmt.Sprintf(SavedMsg, msg.path))
	}
	return a.toast.Success(SharedMsg)
}

func (a *App) resize() {
	layout := NewLayoutManager(a.width, a.height)
	formWidth, _ := layout.FormDimensions()
	previewWidth, previewHeight := layout.PreviewDimensions()

	a.form.SetWidth(formWidth - 2)
	a.preview.SetSize(previewWidth-2, previewHeight)
	a.help.Width = a.width
}

// View renders the current screen
func (a *App) View() string {
	layout := NewLayoutManager(a.width, a.height)
	formWidth, _ := layout.FormDimensions()
	previewWidth, _ := layout.PreviewDimensions()

	title := a.theme.Title.Render("IQC iPhone Chat Generator")
	form := a.theme.ActiveBorder.Width(max(formWidth-2, 0)).Render(a.form.View(a.theme))
	panel := a.theme.InactiveBorder.Width(max(previewWidth-2, 0)).Render(a.preview.View(a.theme))

	var body string
	if layout.Stacked() {
		body = lipgloss.JoinVertical(lipgloss.Left, form, panel)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, form, panel)
	}

	status := RenderStatusLine(a.theme, []string{
		titleCase(a.session.Status.String()),
		fmt.Sprintf("generation %d", a.session.Generation),
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		body,
		a.toast.View(a.theme),
		status,
		a.help.View(a.keys),
	)
}

// RunTUI starts the TUI application
func RunTUI(ctx *config.AppContext) error {
	app := NewApp(ctx)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Observers run on the controller's goroutines, including inside Update
	// during Submit, where a blocking Send would deadlock.
	ctx.Controller.Subscribe(func(s generation.Session) {
		go p.Send(sessionMsg{session: s})
	})

	_, err := p.Run()
	return err
}
