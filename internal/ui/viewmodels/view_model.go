package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	inputtypes "crmsearch/internal/ui/input/types"
	"crmsearch/internal/ui/services/navigation"
	"crmsearch/internal/ui/services/query"
	"crmsearch/internal/ui/services/recency"
	"crmsearch/internal/ui/services/results"
	"crmsearch/internal/ui/views"
)

// ViewModel transforms service state into view-ready data
type ViewModel struct {
	query     *query.Service
	results   *results.Service
	navigator *navigation.Service
	recents   *recency.Service
	keys      inputtypes.KeyMap

	width        int
	height       int
	help         help.Model
	textInput    *textinput.Model
	open         bool
	showRecents  bool
	lastRoute    string
	statusMessage string
}

// NewViewModel creates a new view model
func NewViewModel(q *query.Service, r *results.Service, n *navigation.Service, rec *recency.Service, keys inputtypes.KeyMap) *ViewModel {
	return &ViewModel{
		query:     q,
		results:   r,
		navigator: n,
		recents:   rec,
		keys:      keys,
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetHelp sets the help model
func (vm *ViewModel) SetHelp(helpModel help.Model) {
	vm.help = helpModel
}

// UpdateTextInput points at the query input
func (vm *ViewModel) UpdateTextInput(textInput *textinput.Model) {
	vm.textInput = textInput
}

// SetOverlay records whether the overlay is open and which list it shows
func (vm *ViewModel) SetOverlay(open, showRecents bool) {
	vm.open = open
	vm.showRecents = showRecents
}

// SetLastRoute sets the route shown on the closed screen
func (vm *ViewModel) SetLastRoute(route string) {
	vm.lastRoute = route
}

// SetStatusMessage sets the status line
func (vm *ViewModel) SetStatusMessage(msg string) {
	vm.statusMessage = msg
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	state := views.ViewState{
		Width:          vm.width,
		Height:         vm.height,
		Open:           vm.open,
		Query:          vm.query.Query(),
		Loading:        vm.query.IsLoading(),
		TooShort:       vm.query.TooShort(),
		MinLength:      vm.query.MinLength(),
		HasResults:     vm.results.HasResults(),
		Sections:       vm.results.Sections(),
		Cursor:         vm.navigator.GetCursor(),
		ViewportOffset: vm.navigator.GetViewportOffset(),
		ViewportHeight: vm.navigator.GetViewportHeight(),
		LastRoute:      vm.lastRoute,
		StatusMessage:  vm.statusMessage,
	}
	if vm.textInput != nil {
		state.InputView = vm.textInput.View()
	}
	if vm.showRecents {
		state.Recents = vm.recents.List()
	}
	if vm.open {
		state.HelpView = vm.help.View(vm.keys)
	} else {
		state.HelpView = vm.help.ShortHelpView(vm.keys.ClosedHelp())
	}
	return state
}
