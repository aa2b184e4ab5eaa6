package ui

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"crmsearch/internal/config"
	"crmsearch/internal/domain"
	"crmsearch/internal/eventbus"
	"crmsearch/internal/provider"
	"crmsearch/internal/storage"
	"crmsearch/internal/ui/handlers"
	"crmsearch/internal/ui/input"
	inputtypes "crmsearch/internal/ui/input/types"
	"crmsearch/internal/ui/services/navigation"
	"crmsearch/internal/ui/services/query"
	"crmsearch/internal/ui/services/recency"
	"crmsearch/internal/ui/services/results"
	"crmsearch/internal/ui/services/selection"
	"crmsearch/internal/ui/viewmodels"
	"crmsearch/internal/ui/views"
)

// E2EEnv makes the model print a readiness marker on its first frame
const E2EEnv = "CRMSEARCH_E2E_TEST"

// chrome is the number of overlay rows that are not list entries
const chrome = 14

// listKind tells which list the cursor currently runs over
type listKind int

const (
	listNone listKind = iota
	listRecents
	listResults
)

// Deps are the collaborators the overlay needs
type Deps struct {
	Provider provider.Provider
	Store    storage.Store

	// Scheduler and Post default to real timers and Program.Send
	Scheduler query.Scheduler
	Post      query.Poster

	// OnNavigate is called for every resolved route
	OnNavigate func(target domain.RouteTarget)
}

// Model hosts the search overlay
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	keys   inputtypes.KeyMap

	width       int
	height      int
	help        help.Model
	open        bool
	lastRoute   string
	status      string
	inPagerMode bool
	e2e         bool
	readySent   bool
	onClose     func()
	onNavigate  func(domain.RouteTarget)

	// Visible list identity; the cursor resets when it changes
	listKind    listKind
	listVersion uint64
	listLen     int

	query        *query.Service
	results      *results.Service
	navigator    *navigation.Service
	recents      *recency.Service
	selection    *selection.Service
	inputHandler *input.Handler
	renderer     *views.Renderer
	viewModel    *viewmodels.ViewModel
	eventHandler *handlers.EventHandler
	helpRenderer *HelpRenderer

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the overlay model. The overlay starts open.
func NewModel(bus eventbus.EventBus, cfg *config.Config, deps Deps) *Model {
	if bus == nil {
		bus = eventbus.Nop{}
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	keys := inputtypes.DefaultKeyMap()
	m := &Model{
		bus:          bus,
		config:       cfg,
		keys:         keys,
		help:         help.New(),
		open:         true,
		e2e:          os.Getenv(E2EEnv) == "1",
		onNavigate:   deps.OnNavigate,
		results:      results.NewService(),
		navigator:    navigation.NewService(bus),
		inputHandler: input.New(keys, "Search leads, contacts, companies, opportunities"),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(cfg.Search.MinQueryLength, cfg.UI.FrontendURL),
	}

	post := deps.Post
	if post == nil {
		post = m.send
	}

	m.query = query.NewService(deps.Provider, bus, query.Options{
		Debounce:  cfg.Debounce(),
		MinLength: cfg.Search.MinQueryLength,
		Scheduler: deps.Scheduler,
		Post:      post,
	})
	m.query.SetResultsHandler(func(rs *domain.ResultSet) {
		m.results.Replace(rs)
		m.syncList()
	})
	m.query.SetClearHandler(func() {
		m.results.Clear()
		m.syncList()
	})

	m.recents = recency.NewService(deps.Store, cfg.Storage.Key, cfg.Search.RecentLimit, bus)
	m.selection = selection.NewService(m.recents, selection.NavigatorFunc(m.navigate), bus)

	m.viewModel = viewmodels.NewViewModel(m.query, m.results, m.navigator, m.recents, keys)
	m.viewModel.UpdateTextInput(m.inputHandler.GetTextInput())
	m.eventHandler = handlers.NewEventHandler(func(msg string) { m.status = msg })

	m.syncList()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// SetOnClose registers a callback run every time the overlay closes
func (m *Model) SetOnClose(fn func()) {
	m.onClose = fn
}

// IsOpen reports whether the overlay is showing
func (m *Model) IsOpen() bool {
	return m.open
}

// LastRoute returns the last route opened, prefixed with the frontend URL
func (m *Model) LastRoute() string {
	return m.lastRoute
}

// Recents returns the recency service backing the overlay
func (m *Model) Recents() *recency.Service {
	return m.recents
}

// send hands fn to the running program; without one it is dropped
func (m *Model) send(fn func()) {
	if m.program == nil {
		log.Printf("No program attached, dropping task")
		return
	}
	m.program.Send(TaskMsg{Fn: fn})
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	m.navigator.SetViewportHeight(10) // Will be updated on first WindowSizeMsg
	return tea.Batch(tick(), textinput.Blink)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = views.OverlayWidth(msg.Width)
		m.inputHandler.SetWidth(views.OverlayWidth(msg.Width) - 16)
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case TaskMsg:
		if msg.Fn != nil {
			msg.Fn()
		}
		return m, nil

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		return m, tick()

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed, fall back to the inline help
			log.Printf("Help pager failed: %v", msg.err)
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tick()

	case handlers.ClearStatusMsg:
		m.status = ""
		return m, nil
	}
	return m, nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		m.query.SetQuery(a.Text)
		m.syncList()

	case inputtypes.ClearQueryAction:
		m.query.Reset()
		m.syncList()

	case inputtypes.NavigateAction:
		m.navigator.Navigate(navigation.Direction(a.Direction))

	case inputtypes.SubmitAction:
		m.submit(a.Index)

	case inputtypes.CloseAction:
		m.close(false)

	case inputtypes.OpenAction:
		m.openOverlay()

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			m.help.ShowAll = !m.help.ShowAll
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContentPlain())

	case inputtypes.QuitAction:
		m.query.Close()
		return tea.Quit
	}
	return nil
}

// submit resolves the entry at index in the visible list
func (m *Model) submit(index int) {
	var (
		res selection.Result
		err error
	)

	switch m.listKind {
	case listRecents:
		list := m.recents.List()
		if index < 0 || index >= len(list) {
			return
		}
		res, err = m.selection.ResolveRecent(list[index])
	case listResults:
		entry, ok := m.results.At(index)
		if !ok {
			return
		}
		res, err = m.selection.Resolve(entry, m.query.TrimmedQuery())
	default:
		return
	}

	if err != nil {
		log.Printf("Selection rejected: %v", err)
		return
	}
	log.Printf("Selected %s -> %s", res.Target, m.lastRoute)

	m.inputHandler.SwitchMode(inputtypes.ModeClosed, m)
	m.close(true)
}

func (m *Model) navigate(target domain.RouteTarget) {
	m.lastRoute = strings.TrimSuffix(m.config.UI.FrontendURL, "/") + target.Path()
	if m.onNavigate != nil {
		m.onNavigate(target)
	}
}

func (m *Model) openOverlay() {
	if m.open {
		return
	}
	m.open = true
	m.query.Reset()
	m.syncList()
}

// close dismisses the overlay; pending and in-flight searches are dropped
func (m *Model) close(selected bool) {
	if !m.open {
		return
	}
	m.open = false
	m.query.Reset()
	m.help.ShowAll = false
	m.syncList()
	m.bus.Publish(domain.OverlayClosedEvent{Selected: selected})
	if m.onClose != nil {
		m.onClose()
	}
}

// syncList recomputes the visible list and resets the cursor when it changed
func (m *Model) syncList() {
	kind, version, length := listNone, uint64(0), 0
	switch {
	case !m.open:
	case m.query.TrimmedQuery() == "":
		kind, length = listRecents, m.recents.Len()
	case m.query.TooShort():
	default:
		kind, version, length = listResults, m.results.Version(), m.results.Len()
	}

	if kind == m.listKind && version == m.listVersion && length == m.listLen {
		return
	}
	m.listKind, m.listVersion, m.listLen = kind, version, length
	m.navigator.Reset(length)
}

func (m *Model) updateViewportHeight() {
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.navigator.SetViewportHeight(h)
}

// CurrentIndex implements input context
func (m *Model) CurrentIndex() int {
	return m.navigator.GetCursor()
}

// TotalItems implements input context
func (m *Model) TotalItems() int {
	return m.navigator.Length()
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetHelp(m.help)
	m.viewModel.SetOverlay(m.open, m.listKind == listRecents)
	m.viewModel.SetLastRoute(m.lastRoute)
	m.viewModel.SetStatusMessage(m.status)

	state := m.viewModel.BuildViewState()
	out := m.renderer.Render(state)
	if m.e2e && !m.readySent {
		m.readySent = true
		out += "\n__READY__"
	}
	return out
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := NewHelpOps(m.program).ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
