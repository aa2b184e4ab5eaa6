package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"crmsearch/internal/ui/input/modes"
	"crmsearch/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
	keys        types.KeyMap
}

// New creates a handler starting in overlay mode with a focused input
func New(keys types.KeyMap, placeholder string) *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Focus()

	h := &Handler{
		currentMode: types.ModeOverlay,
		textInput:   &ti,
		keys:        keys,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeOverlay] = modes.NewOverlayMode(keys, h.textInput)
	h.modes[types.ModeClosed] = modes.NewClosedMode(keys)

	return h
}

// HandleKey maps a key to actions. In overlay mode, keys the mode does not
// claim edit the query; an UpdateTextAction is emitted only when the text
// actually changed.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}

		allActions = append(allActions, h.SwitchMode(changeMode.Mode, ctx)...)
		if h.currentMode == types.ModeOverlay {
			cmd = textinput.Blink
		}
	}

	if !consumed && h.currentMode == types.ModeOverlay {
		before := h.textInput.Value()
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		if after := h.textInput.Value(); after != before {
			allActions = append(allActions, types.UpdateTextAction{Text: after})
		}
	}

	return allActions, cmd
}

// SwitchMode changes mode outside of a key press, running exit and enter hooks
func (h *Handler) SwitchMode(mode types.Mode, ctx types.Context) []types.Action {
	if mode == h.currentMode {
		return nil
	}
	var actions []types.Action
	if m := h.modes[h.currentMode]; m != nil {
		actions = append(actions, m.Exit(ctx)...)
	}
	h.currentMode = mode
	if m := h.modes[h.currentMode]; m != nil {
		actions = append(actions, m.Enter(ctx)...)
	}
	return actions
}

// Update handles non-keyboard messages for text input (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeOverlay {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// GetMode returns the current input mode
func (h *Handler) GetMode() types.Mode {
	if h == nil {
		return types.ModeOverlay
	}
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}

// GetTextInput returns the text input model
func (h *Handler) GetTextInput() *textinput.Model {
	if h == nil {
		return nil
	}
	return h.textInput
}

// Keys returns the active key map
func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

// Value returns the current query text
func (h *Handler) Value() string {
	return h.textInput.Value()
}

// SetWidth sets the visible width of the query input
func (h *Handler) SetWidth(width int) {
	h.textInput.Width = width
}
