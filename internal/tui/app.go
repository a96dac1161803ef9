// Package tui is the full-screen interface of the address book.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/agenda/internal/contact"
	"github.com/jeanpaul/agenda/internal/store"
)

const (
	msgNothing  = "The address book is empty or nothing matched."
	msgNotFound = "ID not found"
)

type view int

const (
	viewMenu view = iota
	viewForm
	viewTable
	viewDetail
	viewConfirm
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarn
	statusError
)

// Options tunes the interface.
type Options struct {
	// GlamourStyle is a glamour standard style name, or "auto".
	GlamourStyle string
	Log          *slog.Logger
}

type Model struct {
	width, height int

	store    store.ContactStore
	log      *slog.Logger
	renderer *glamour.TermRenderer

	view    view
	menu    MenuModel
	form    FormModel
	table   table.Model
	records []store.Record
	detail  string
	pending store.Record // contact awaiting delete confirmation

	status     string
	statusKind statusKind

	err error
}

func NewModel(s store.ContactStore, opts Options) Model {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := Model{
		store:    s,
		log:      log,
		renderer: newRenderer(opts.GlamourStyle, 80),
		menu:     NewMenuModel(),
	}
	if rec, ok := s.Recovered(); ok {
		msg := "The address book could not be loaded; starting empty."
		if rec.Backup != "" {
			msg += " Old file saved as " + rec.Backup
		}
		if rec.ReadOnly {
			msg += " Changes cannot be saved until the file can be read again."
		}
		m.setStatus(statusWarn, msg)
	}
	return m
}

func newRenderer(style string, width int) *glamour.TermRenderer {
	opt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
	if err != nil {
		return nil
	}
	return r
}

// Err returns the persistence error that ended the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width-4, max(msg.Height-6, 8))
		if m.view == viewTable {
			m.table.SetHeight(max(msg.Height-8, 3))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewMenu:
			return m.updateMenu(msg)
		case viewForm:
			return m.updateForm(msg)
		case viewTable:
			return m.updateTable(msg)
		case viewDetail:
			switch msg.String() {
			case "esc", "q", "enter":
				m.view = viewTable
			}
			return m, nil
		case viewConfirm:
			return m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s := msg.String(); s {
	case "1", "2", "3", "4", "5", "6":
		return m.start(action(s[0] - '1'))
	case "enter":
		if a, ok := m.menu.Selected(); ok {
			return m.start(a)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m Model) start(a action) (tea.Model, tea.Cmd) {
	m.status = ""
	switch a {
	case actionAdd:
		m.openForm(newForm(formAdd, "New contact", contactLabels...))
	case actionList:
		m.showTable(m.store.List())
	case actionSearch:
		m.openForm(newForm(formSearch, "Search by name", "Name"))
	case actionEdit:
		m.openForm(newForm(formPickEdit, "Edit contact", "ID"))
	case actionDelete:
		m.openForm(newForm(formPickDelete, "Delete contact", "ID"))
	case actionQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) openForm(f FormModel) {
	m.form = f
	m.view = viewForm
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewMenu
		m.status = ""
		return m, nil
	case "enter":
		if !m.form.onLast() {
			m.form.move(1)
			return m, nil
		}
		return m.submit()
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	vals := m.form.Values()

	switch m.form.kind {
	case formAdd:
		addr := contact.Address{Street: vals[3], Number: vals[4], PostalCode: vals[5], Municipality: vals[6]}
		id, err := m.store.Add(vals[0], vals[1], vals[2], addr)
		if contact.IsValidation(err) {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		if err != nil {
			return m.fail(err)
		}
		m.setStatus(statusInfo, "Contact added with ID "+id)
		m.view = viewMenu

	case formSearch:
		m.showTable(m.store.FindByName(vals[0]))

	case formPickEdit, formPickDelete:
		id := strings.TrimSpace(vals[0])
		c, ok := m.store.Get(id)
		if !ok {
			m.setStatus(statusError, msgNotFound)
			return m, nil
		}
		m.status = ""
		if m.form.kind == formPickEdit {
			m.openForm(newEditForm(id, c))
		} else {
			m.confirmDelete(store.Record{ID: id, Contact: c})
		}

	case formEdit:
		patch := contact.Patch{Name: keep(vals[0]), Phone: keep(vals[1]), Email: keep(vals[2])}
		ap := contact.AddressPatch{Street: keep(vals[3]), Number: keep(vals[4]), PostalCode: keep(vals[5]), Municipality: keep(vals[6])}
		if !ap.Empty() {
			patch.Address = &ap
		}
		if patch.Empty() {
			m.setStatus(statusInfo, "Nothing to change")
			m.view = viewMenu
			return m, nil
		}
		edited, err := m.store.Edit(m.form.id, patch)
		if contact.IsValidation(err) {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		if err != nil {
			return m.fail(err)
		}
		if !edited {
			m.setStatus(statusError, msgNotFound)
		} else {
			m.setStatus(statusInfo, "Contact "+m.form.id+" edited")
		}
		m.view = viewMenu
	}
	return m, nil
}

func (m *Model) showTable(records []store.Record) {
	if len(records) == 0 {
		m.setStatus(statusInfo, msgNothing)
		m.view = viewMenu
		return
	}
	m.records = records
	m.table = newTable(records, m.height)
	m.view = viewTable
	m.setStatus(statusInfo, fmt.Sprintf("%d contact(s)", len(records)))
}

func newTable(records []store.Record, height int) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 24},
		{Title: "Phone", Width: 15},
		{Title: "Email", Width: 24},
		{Title: "Municipality", Width: 16},
	}
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{r.ID, r.Contact.Name, r.Contact.Phone, r.Contact.Email, r.Contact.Address.Municipality})
	}

	h := 10
	if height > 0 {
		h = max(height-8, 3)
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(h),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(DarkGreen).
		BorderBottom(true).
		Foreground(Green).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(Black).
		Background(Green).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m Model) selected() (store.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return store.Record{}, false
	}
	return m.records[i], true
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.view = viewMenu
		m.status = ""
		return m, nil
	case "enter":
		if r, ok := m.selected(); ok {
			m.detail = m.render(r)
			m.view = viewDetail
		}
		return m, nil
	case "e":
		if r, ok := m.selected(); ok {
			m.status = ""
			m.openForm(newEditForm(r.ID, r.Contact))
		}
		return m, nil
	case "d":
		if r, ok := m.selected(); ok {
			m.confirmDelete(r)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) render(r store.Record) string {
	if m.renderer != nil {
		out, err := m.renderer.Render(contact.Markdown(r.ID, r.Contact))
		if err == nil {
			return out
		}
		m.log.Debug("markdown render failed", "err", err)
	}
	return BoxStyle.Render(strings.TrimRight(contact.Card(r.ID, r.Contact), "\n"))
}

func (m *Model) confirmDelete(r store.Record) {
	m.pending = r
	m.view = viewConfirm
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		deleted, err := m.store.Delete(m.pending.ID)
		if err != nil {
			return m.fail(err)
		}
		if deleted {
			m.setStatus(statusInfo, "Contact "+m.pending.ID+" deleted")
		} else {
			m.setStatus(statusError, msgNotFound)
		}
		m.view = viewMenu
	case "n", "N", "esc":
		m.setStatus(statusInfo, "Nothing deleted")
		m.view = viewMenu
	}
	return m, nil
}

// fail ends the program on a store error that is not the user's fault.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.log.Error("address book update failed", "err", err)
	m.err = err
	return m, tea.Quit
}

func (m *Model) setStatus(kind statusKind, msg string) {
	m.statusKind = kind
	m.status = msg
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(BannerStyle.Render("agenda") + "\n\n")

	switch m.view {
	case viewMenu:
		b.WriteString(m.menu.View())
	case viewForm:
		b.WriteString(m.form.View())
	case viewTable:
		b.WriteString(BoxStyle.Render(m.table.View()))
	case viewDetail:
		b.WriteString(m.detail)
	case viewConfirm:
		b.WriteString(ConfirmStyle.Render(fmt.Sprintf("Delete contact %s (%s)? [y/n]", m.pending.ID, m.pending.Contact.Name)))
	}
	b.WriteString("\n")

	if m.status != "" {
		style := StatusStyle
		switch m.statusKind {
		case statusWarn:
			style = WarningStyle
		case statusError:
			style = ErrorStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	b.WriteString(HelpStyle.Render(m.help()))
	return b.String()
}

func (m Model) help() string {
	switch m.view {
	case viewForm:
		return "tab/↓ next field • enter next/submit • esc back"
	case viewTable:
		return "↑/↓ move • enter details • e edit • d delete • esc back"
	case viewDetail:
		return "esc back"
	case viewConfirm:
		return "y delete • n keep"
	}
	return "↑/↓ move • enter select • 1-6 shortcut • q quit"
}
