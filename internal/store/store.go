package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/jeanpaul/agenda/internal/contact"
	"github.com/jeanpaul/agenda/internal/schema"
)

// DefaultPath is the data file used when none is configured.
const DefaultPath = "bd_agenda.json"

// Store is the file-backed address book. Every mutation rewrites the whole
// file before returning. It is meant for a single process; there is no
// protection against another process writing the same file.
type Store struct {
	mu       sync.Mutex
	path     string
	order    []string
	contacts map[string]contact.Contact
	lastID   int

	log           *slog.Logger
	validator     *schema.Validator
	backupCorrupt bool
	recovery      *Recovery
	readErr       error // set when the file exists but could not be read
	now           func() time.Time
	readFile      func(string) ([]byte, error)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings and mutations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithCorruptBackup controls whether an unparseable file is moved aside
// before the store starts empty. Enabled by default.
func WithCorruptBackup(enabled bool) Option {
	return func(s *Store) { s.backupCorrupt = enabled }
}

// WithClock overrides the clock used to name backups.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads the address book at path. It never fails: a missing file gives
// an empty book, and an unreadable or corrupt one is reported through
// Recovered and replaced by an empty book.
func Open(path string, opts ...Option) *Store {
	if path == "" {
		path = DefaultPath
	}
	s := &Store{
		path:          path,
		contacts:      map[string]contact.Contact{},
		log:           slog.New(slog.DiscardHandler),
		validator:     schema.NewValidator(),
		backupCorrupt: true,
		now:           time.Now,
		readFile:      os.ReadFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// LastID returns the highest id allocated so far, 0 for a fresh book.
func (s *Store) LastID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastID
}

// Len returns the number of contacts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Recovered reports whether the backing file was discarded at load time.
func (s *Store) Recovered() (Recovery, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recovery == nil {
		return Recovery{}, false
	}
	return *s.recovery, true
}

func (s *Store) load() {
	data, err := s.readFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("address book not found, starting empty", "path", s.path)
		return
	}
	if err != nil {
		// The file may well be intact; keep it and refuse to write over it.
		s.readErr = fmt.Errorf("read %s: %w", s.path, err)
		s.discard(s.readErr, false)
		return
	}
	if len(bytes.TrimSpace(data)) == 0 {
		s.log.Debug("address book is empty", "path", s.path)
		return
	}

	records, err := decodeBook(data, s.validator)
	if err != nil {
		s.discard(err, true)
		return
	}
	for _, r := range records {
		s.order = append(s.order, r.ID)
		s.contacts[r.ID] = r.Contact
		if n, _ := strconv.Atoi(r.ID); n > s.lastID {
			s.lastID = n
		}
	}
	s.log.Debug("address book loaded", "path", s.path, "contacts", len(s.order), "last_id", s.lastID)
}

// discard records why the file was not loaded and, when asked to, moves it
// aside so the next write does not destroy it.
func (s *Store) discard(reason error, backup bool) {
	rec := &Recovery{Reason: reason, ReadOnly: s.readErr != nil}
	s.recovery = rec

	if backup && s.backupCorrupt {
		name := fmt.Sprintf("%s.corrupt-%s-%s", s.path, s.now().UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
		if err := os.Rename(s.path, name); err != nil {
			s.log.Error("could not back up corrupt address book", "path", s.path, "err", err)
		} else {
			rec.Backup = name
		}
	}
	s.log.Warn("address book discarded, starting empty", "path", s.path, "reason", reason, "backup", rec.Backup)
}

// Add validates the contact and stores it under a fresh id. Invalid input
// returns a *contact.ValidationError and consumes no id.
func (s *Store) Add(name, phone, email string, addr contact.Address) (string, error) {
	c := contact.Contact{Name: name, Phone: phone, Email: email, Address: addr}
	if err := contact.Validate(c); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	id := strconv.Itoa(s.lastID)
	s.contacts[id] = c
	s.order = append(s.order, id)

	if err := s.save(); err != nil {
		delete(s.contacts, id)
		s.order = s.order[:len(s.order)-1]
		s.lastID--
		return "", err
	}
	s.log.Info("contact added", "id", id)
	return id, nil
}

// FindByName matches substring against names using Unicode case folding.
func (s *Store) FindByName(substring string) []Record {
	fold := cases.Fold()
	needle := fold.String(substring)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Record{}
	for _, id := range s.order {
		c := s.contacts[id]
		if strings.Contains(fold.String(c.Name), needle) {
			out = append(out, Record{ID: id, Contact: c})
		}
	}
	return out
}

// List returns a copy of every contact in listing order.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records()
}

// Get returns the contact stored under id.
func (s *Store) Get(id string) (contact.Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	return c, ok
}

// Edit merges patch into the contact stored under id. The fields the patch
// sets are validated with the same rules as Add; a violation leaves the
// contact unchanged. Fields the patch leaves alone are not re-checked, so
// records written by older versions can still be edited.
func (s *Store) Edit(id string, patch contact.Patch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.contacts[id]
	if !ok {
		return false, nil
	}
	updated := old.Apply(patch)
	if err := contact.ValidatePatch(updated, patch); err != nil {
		return false, err
	}

	s.contacts[id] = updated
	if err := s.save(); err != nil {
		s.contacts[id] = old
		return false, err
	}
	s.log.Info("contact edited", "id", id)
	return true, nil
}

// Delete removes the contact stored under id. Its id is not reused.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.contacts[id]
	if !ok {
		return false, nil
	}
	idx := slices.Index(s.order, id)

	delete(s.contacts, id)
	s.order = slices.Delete(s.order, idx, idx+1)
	if err := s.save(); err != nil {
		s.contacts[id] = old
		s.order = slices.Insert(s.order, idx, id)
		return false, err
	}
	s.log.Info("contact deleted", "id", id)
	return true, nil
}

func (s *Store) records() []Record {
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, Record{ID: id, Contact: s.contacts[id]})
	}
	return out
}

// save writes the whole book. Callers hold s.mu.
func (s *Store) save() error {
	if s.readErr != nil {
		return fmt.Errorf("%w: refusing to overwrite unreadable file: %w", ErrPersist, s.readErr)
	}
	data, err := encodeBook(s.records())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		s.log.Error("could not write address book", "path", s.path, "err", err)
		return fmt.Errorf("%w: write %s: %w", ErrPersist, s.path, err)
	}
	return nil
}
