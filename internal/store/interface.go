package store

import "github.com/jeanpaul/agenda/internal/contact"

// ContactStore is what the interfaces (console, TUI, CLI) need from the
// address book. *Store is the file-backed implementation.
type ContactStore interface {
	// Add validates and stores a new contact, returning its id.
	Add(name, phone, email string, addr contact.Address) (string, error)

	// FindByName returns the contacts whose name contains substring,
	// ignoring case. No match yields an empty slice, not an error.
	FindByName(substring string) []Record

	// List returns every contact in listing order.
	List() []Record

	// Get looks up a single contact.
	Get(id string) (contact.Contact, bool)

	// Edit merges patch into the contact. It reports false when id is unknown.
	Edit(id string, patch contact.Patch) (bool, error)

	// Delete removes a contact. It reports false when id is unknown.
	Delete(id string) (bool, error)

	// Recovered reports whether the backing file was unusable at load time.
	Recovered() (Recovery, bool)
}

var _ ContactStore = (*Store)(nil)
