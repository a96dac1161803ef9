package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/agenda/internal/contact"
	"github.com/jeanpaul/agenda/internal/store"
)

func run(t *testing.T, s store.ContactStore, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	r := &Runner{Store: s, In: strings.NewReader(strings.Join(lines, "\n") + "\n"), Out: &out}
	require.NoError(t, r.Run(context.Background()))
	return out.String()
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.Open(filepath.Join(t.TempDir(), "book.json"))
}

func TestAddListSearch(t *testing.T) {
	s := newStore(t)
	out := run(t, s,
		"1", "Ann Smith", "123456789", "ann@x.com", "Main", "42", "28001", "Madrid",
		"1", "Bob", "987654321", "", "", "", "", "",
		"2",
		"3", "ann",
		"6",
	)

	assert.Contains(t, out, "Contact added with ID 1")
	assert.Contains(t, out, "Contact added with ID 2")
	assert.Contains(t, out, "Goodbye")

	c, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, contact.Address{Street: "Main", Number: "42", Municipality: "Madrid", PostalCode: "28001"}, c.Address)

	listing := out[strings.Index(out, "Option: ID: 1"):]
	assert.Contains(t, listing, "Name: Bob")
	assert.Equal(t, 2, strings.Count(out, "Name: Ann Smith"), "listed once and found once")
}

func TestAddInvalid(t *testing.T) {
	s := newStore(t)
	out := run(t, s, "1", "A", "123456789", "", "", "", "", "", "6")

	assert.Contains(t, out, "Error: name: must have at least 2 characters")
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.LastID())
}

func TestEmptyListAndNoMatch(t *testing.T) {
	s := newStore(t)
	out := run(t, s, "2", "3", "zzz", "6")
	assert.Equal(t, 2, strings.Count(out, msgNothing))
}

func TestEdit(t *testing.T) {
	s := newStore(t)
	_, err := s.Add("Ann", "123456789", "", contact.Address{Street: "Main"})
	require.NoError(t, err)

	out := run(t, s, "4", "1", "", "555000111", "  ", "", "7", "", "", "6")

	assert.Contains(t, out, msgKeep)
	assert.Contains(t, out, "Contact edited")
	assert.Contains(t, out, "-Phone: 123456789")
	assert.Contains(t, out, "+Phone: 555000111")

	c, _ := s.Get("1")
	assert.Equal(t, "Ann", c.Name)
	assert.Equal(t, "555000111", c.Phone)
	assert.Equal(t, contact.Address{Street: "Main", Number: "7"}, c.Address)
}

func TestEditUnknownAndInvalid(t *testing.T) {
	s := newStore(t)
	_, err := s.Add("Ann", "123456789", "", contact.Address{})
	require.NoError(t, err)

	out := run(t, s,
		"4", "9",
		"4", "1", "", "12ab", "", "", "", "", "",
		"6",
	)
	assert.Contains(t, out, msgNotFound)
	assert.Contains(t, out, "Error: phone: must contain digits only")

	c, _ := s.Get("1")
	assert.Equal(t, "123456789", c.Phone)
}

func TestDelete(t *testing.T) {
	s := newStore(t)
	_, err := s.Add("Ann", "123456789", "", contact.Address{})
	require.NoError(t, err)

	out := run(t, s, "5", "1", "5", "1", "6")
	assert.Contains(t, out, "Contact deleted")
	assert.Contains(t, out, msgNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestInvalidOption(t *testing.T) {
	out := run(t, newStore(t), "9", "", "6")
	assert.Equal(t, 2, strings.Count(out, msgInvalid))
}

func TestEOFEndsLoop(t *testing.T) {
	s := newStore(t)
	var out bytes.Buffer
	r := &Runner{Store: s, In: strings.NewReader("1\nAnn\n"), Out: &out}
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 0, s.Len())
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	r := &Runner{Store: newStore(t), In: strings.NewReader("2\n"), Out: &out}
	require.NoError(t, r.Run(ctx))
	assert.NotContains(t, out.String(), "Option:")
}

func TestRecoveryWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	s := store.Open(path)

	out := run(t, s, "6")
	rec, ok := s.Recovered()
	require.True(t, ok)
	assert.Contains(t, out, "could not be loaded")
	assert.Contains(t, out, rec.Backup)
	assert.Less(t, strings.Index(out, "Starting with an empty address book."), strings.Index(out, "ADDRESS BOOK"))
}

type failingStore struct {
	*store.Store
}

func (failingStore) Add(string, string, string, contact.Address) (string, error) {
	return "", fmt.Errorf("%w: disk full", store.ErrPersist)
}

func TestPersistErrorIsReturned(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{
		Store: failingStore{newStore(t)},
		In:    strings.NewReader("1\nAnn\n123456789\n\n\n\n\n\n6\n"),
		Out:   &out,
	}
	err := r.Run(context.Background())
	assert.ErrorIs(t, err, store.ErrPersist)
}

// syncBuffer lets a test read output while Run is still writing it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCancelWhileWaitingAtPrompt(t *testing.T) {
	in, feed := io.Pipe()
	t.Cleanup(func() { feed.Close() })

	s := newStore(t)
	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- (&Runner{Store: s, In: in, Out: out}).Run(ctx)
	}()

	// Start adding a contact and stop halfway through the prompts.
	_, err := io.WriteString(feed, "1\nAnn\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Phone: ")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run kept waiting for input after cancellation")
	}
	assert.Equal(t, 0, s.Len())
}

func TestEditWithNothingToChange(t *testing.T) {
	s := newStore(t)
	_, err := s.Add("Ann", "123456789", "", contact.Address{})
	require.NoError(t, err)

	out := run(t, s, "4", "1", "", "", "", "", "", "", "", "6")
	assert.Contains(t, out, "Nothing to change")
	assert.NotContains(t, out, "Contact edited")
}

type unreadableStore struct {
	*store.Store
}

func (unreadableStore) Recovered() (store.Recovery, bool) {
	return store.Recovery{Reason: errors.New("permission denied"), ReadOnly: true}, true
}

func TestReadOnlyWarning(t *testing.T) {
	out := run(t, unreadableStore{newStore(t)}, "6")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "Changes cannot be saved")
}
