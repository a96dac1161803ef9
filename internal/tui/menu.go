package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// action is what a menu entry does. The order matches the console menu.
type action int

const (
	actionAdd action = iota
	actionList
	actionSearch
	actionEdit
	actionDelete
	actionQuit
)

type item struct {
	title, desc string
	action      action
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type MenuModel struct {
	list list.Model
}

func NewMenuModel() MenuModel {
	items := []list.Item{
		item{title: "1. Add contact", desc: "Create a new entry", action: actionAdd},
		item{title: "2. List contacts", desc: "Browse every entry", action: actionList},
		item{title: "3. Search by name", desc: "Find entries by part of the name", action: actionSearch},
		item{title: "4. Edit contact", desc: "Change an entry by id", action: actionEdit},
		item{title: "5. Delete contact", desc: "Remove an entry by id", action: actionDelete},
		item{title: "6. Exit", desc: "Leave the address book", action: actionQuit},
	}

	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Green).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Green).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(DimGreen)

	l := list.New(items, d, 40, 16)
	l.Title = "Address book"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Foreground(Green).Bold(true).MarginLeft(2)
	// esc is reserved for going back, so only q quits from the menu.
	l.KeyMap.Quit = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))

	return MenuModel{list: l}
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Selected returns the highlighted action.
func (m MenuModel) Selected() (action, bool) {
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return 0, false
	}
	return it.action, true
}

func (m *MenuModel) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m MenuModel) View() string {
	return BoxStyle.Render(m.list.View())
}
