package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"invtrack/internal/ui/input/types"
)

// FilterMode edits the search term live. Esc puts back the term it started with.
type FilterMode struct {
	TextInputMode
	previous string
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", "Filter: ", ti),
	}
}

// Enter prefills the input with the active term
func (m *FilterMode) Enter(ctx types.Context) []types.Action {
	actions := m.TextInputMode.Enter(ctx)
	m.previous = ctx.SearchTerm()
	if m.textInput != nil {
		m.textInput.SetValue(m.previous)
		m.textInput.CursorEnd()
	}
	return actions
}

func (m *FilterMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.String() == "esc" {
		return []types.Action{
			types.UpdateTextAction{Text: m.previous},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
