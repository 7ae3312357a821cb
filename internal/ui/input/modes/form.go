package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"invtrack/internal/domain"
	"invtrack/internal/ui/input/types"
)

const (
	fieldName = iota
	fieldDescription
	fieldPrice
	fieldQuantity
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Description", "Price", "Quantity"}

// FormField is one rendered line of the create form
type FormField struct {
	Label   string
	Input   string
	Focused bool
}

// FormMode edits the pending fields of a new product
type FormMode struct {
	inputs  [fieldCount]textinput.Model
	focused int
}

func NewFormMode() *FormMode {
	m := &FormMode{}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldLabels[i]
		ti.CharLimit = 256
		m.inputs[i] = ti
	}
	m.inputs[fieldPrice].CharLimit = 32
	m.inputs[fieldQuantity].CharLimit = 16
	return m
}

func (m *FormMode) Name() string {
	return "form"
}

// Enter loads the pending draft so an earlier attempt can be retried
func (m *FormMode) Enter(ctx types.Context) []types.Action {
	d := ctx.Draft()
	m.inputs[fieldName].SetValue(d.Name)
	m.inputs[fieldDescription].SetValue(d.Description)
	m.inputs[fieldPrice].SetValue(d.Price)
	m.inputs[fieldQuantity].SetValue(d.Quantity)
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}
	m.focus(fieldName)
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.UpdateDraftAction{Draft: m.Draft()},
			types.CloseFormAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter":
		return []types.Action{types.SubmitFormAction{Draft: m.Draft()}}, true
	case "tab", "down":
		m.focus((m.focused + 1) % fieldCount)
		return nil, true
	case "shift+tab", "up":
		m.focus((m.focused + fieldCount - 1) % fieldCount)
		return nil, true
	}

	m.inputs[m.focused], _ = m.inputs[m.focused].Update(msg)
	return []types.Action{types.UpdateDraftAction{Draft: m.Draft()}}, true
}

// Draft returns the fields as typed
func (m *FormMode) Draft() domain.ProductDraft {
	return domain.ProductDraft{
		Name:        m.inputs[fieldName].Value(),
		Description: m.inputs[fieldDescription].Value(),
		Price:       m.inputs[fieldPrice].Value(),
		Quantity:    m.inputs[fieldQuantity].Value(),
	}
}

// Fields returns the form for rendering
func (m *FormMode) Fields() []FormField {
	fields := make([]FormField, fieldCount)
	for i := range m.inputs {
		fields[i] = FormField{
			Label:   fieldLabels[i],
			Input:   m.inputs[i].View(),
			Focused: i == m.focused,
		}
	}
	return fields
}

// FocusField moves the cursor to the named field, ignoring unknown names
func (m *FormMode) FocusField(name string) {
	for i, l := range fieldLabels {
		if strings.EqualFold(l, name) {
			m.focus(i)
			return
		}
	}
}

// Reset clears every field
func (m *FormMode) Reset() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.focus(fieldName)
}

func (m *FormMode) focus(i int) {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[m.focused].Focus()
}
