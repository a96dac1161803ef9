package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/agenda/internal/contact"
)

type formKind int

const (
	formAdd formKind = iota
	formEdit
	formSearch
	formPickEdit
	formPickDelete
)

// contactLabels is the field order of the add and edit forms.
var contactLabels = []string{"Name", "Phone", "Email", "Street", "Number", "Postal code", "Municipality"}

func contactValues(c contact.Contact) []string {
	return []string{c.Name, c.Phone, c.Email, c.Address.Street, c.Address.Number, c.Address.PostalCode, c.Address.Municipality}
}

// FormModel is a column of labelled text inputs. Enter on the last field
// submits; the parent model decides what submitting means.
type FormModel struct {
	kind   formKind
	title  string
	id     string // contact being edited
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(kind formKind, title string, labels ...string) FormModel {
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 200
		ti.Width = 40
		ti.PlaceholderStyle = PlaceholderStyle
		ti.TextStyle = ValueStyle
		inputs[i] = ti
	}
	inputs[0].Focus()
	return FormModel{kind: kind, title: title, labels: labels, inputs: inputs}
}

// newEditForm shows the current values as placeholders; a field left blank
// keeps its value.
func newEditForm(id string, c contact.Contact) FormModel {
	f := newForm(formEdit, "Edit contact "+id+" (leave empty to keep)", contactLabels...)
	f.id = id
	for i, v := range contactValues(c) {
		if v == "" {
			v = "(empty)"
		}
		f.inputs[i].Placeholder = v
	}
	return f
}

func (f *FormModel) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f FormModel) onLast() bool {
	return f.focus == len(f.inputs)-1
}

func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			f.move(1)
			return f, nil
		case "shift+tab", "up":
			f.move(-1)
			return f, nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// Values returns the raw input of every field in label order.
func (f FormModel) Values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

func (f FormModel) View() string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render(f.title) + "\n\n")
	for i, label := range f.labels {
		style := LabelStyle
		if i == f.focus {
			style = FocusedLabelStyle
		}
		b.WriteString(style.Render(label) + "\n")
		b.WriteString(f.inputs[i].View() + "\n")
	}
	return BoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// keep turns a blank answer into "leave unchanged".
func keep(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
