// Package console runs the address book as a numbered-menu prompt loop over
// plain text streams.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jeanpaul/agenda/internal/contact"
	"github.com/jeanpaul/agenda/internal/store"
)

const menu = `
ADDRESS BOOK
1. Add contact
2. List contacts
3. Search by name
4. Edit contact
5. Delete contact
6. Exit
`

const (
	msgNothing  = "The address book is empty or nothing matched."
	msgNotFound = "ID not found"
	msgInvalid  = "Invalid option"
	msgKeep     = "(leave empty to keep)"
)

// Runner drives the prompt loop. In and Out are usually stdin and stdout.
type Runner struct {
	Store store.ContactStore
	In    io.Reader
	Out   io.Writer
	Log   *slog.Logger

	lines <-chan line
}

// line is one read from In, or the error that stopped reading.
type line struct {
	text string
	err  error
}

// errEOF ends the loop when input runs out mid-prompt.
var errEOF = errors.New("end of input")

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// Cancellation is noticed while waiting at a prompt. Only store persistence
// failures are returned.
func (r *Runner) Run(ctx context.Context) error {
	if r.Log == nil {
		r.Log = slog.New(slog.DiscardHandler)
	}
	done := make(chan struct{})
	defer close(done)
	r.lines = readLines(r.In, done)

	if rec, ok := r.Store.Recovered(); ok {
		r.printf("Warning: the address book could not be loaded (%v).\n", rec.Reason)
		if rec.Backup != "" {
			r.printf("The old file was saved as %s.\n", rec.Backup)
		}
		r.println("Starting with an empty address book.")
		if rec.ReadOnly {
			r.println("Changes cannot be saved until the file can be read again.")
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			r.Log.Debug("console cancelled", "err", err)
			return nil
		}
		r.printf("%s", menu)
		option, err := r.ask(ctx, "Option: ")
		if err != nil {
			return r.finish(err)
		}

		switch strings.TrimSpace(option) {
		case "1":
			err = r.add(ctx)
		case "2":
			r.show(r.Store.List())
		case "3":
			err = r.search(ctx)
		case "4":
			err = r.edit(ctx)
		case "5":
			err = r.delete(ctx)
		case "6":
			r.println("Goodbye")
			return nil
		default:
			r.println(msgInvalid)
		}
		if err != nil {
			return r.finish(err)
		}
	}
}

func (r *Runner) finish(err error) error {
	switch {
	case errors.Is(err, errEOF):
		r.Log.Debug("console input closed")
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		r.Log.Debug("console cancelled", "err", err)
		return nil
	}
	return err
}

func (r *Runner) add(ctx context.Context) error {
	fields, err := r.askAll(ctx, "Name: ", "Phone: ", "Email: ", "Street: ", "Number: ", "Postal code: ", "Municipality: ")
	if err != nil {
		return err
	}
	addr := contact.Address{Street: fields[3], Number: fields[4], PostalCode: fields[5], Municipality: fields[6]}

	id, err := r.Store.Add(fields[0], fields[1], fields[2], addr)
	if contact.IsValidation(err) {
		r.printf("Error: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	r.printf("Contact added with ID %s\n", id)
	return nil
}

func (r *Runner) search(ctx context.Context) error {
	text, err := r.ask(ctx, "Name to search: ")
	if err != nil {
		return err
	}
	r.show(r.Store.FindByName(text))
	return nil
}

func (r *Runner) edit(ctx context.Context) error {
	id, err := r.ask(ctx, "Contact ID: ")
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	before, ok := r.Store.Get(id)
	if !ok {
		r.println(msgNotFound)
		return nil
	}

	r.println(msgKeep)
	person, err := r.askAll(ctx, "New name: ", "New phone: ", "New email: ")
	if err != nil {
		return err
	}
	r.println("-- Address --")
	addr, err := r.askAll(ctx, "Street: ", "Number: ", "Municipality: ", "Postal code: ")
	if err != nil {
		return err
	}

	patch := contact.Patch{Name: keep(person[0]), Phone: keep(person[1]), Email: keep(person[2])}
	ap := contact.AddressPatch{Street: keep(addr[0]), Number: keep(addr[1]), Municipality: keep(addr[2]), PostalCode: keep(addr[3])}
	if !ap.Empty() {
		patch.Address = &ap
	}
	if patch.Empty() {
		r.println("Nothing to change")
		return nil
	}

	edited, err := r.Store.Edit(id, patch)
	if contact.IsValidation(err) {
		r.printf("Error: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	if !edited {
		r.println("Could not edit contact")
		return nil
	}

	r.println("Contact edited")
	after, _ := r.Store.Get(id)
	if diff := contact.Diff(contact.Card(id, before), contact.Card(id, after)); diff != "" {
		r.printf("%s", diff)
	}
	return nil
}

func (r *Runner) delete(ctx context.Context) error {
	id, err := r.ask(ctx, "ID to delete: ")
	if err != nil {
		return err
	}
	deleted, err := r.Store.Delete(strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if deleted {
		r.println("Contact deleted")
	} else {
		r.println(msgNotFound)
	}
	return nil
}

func (r *Runner) show(records []store.Record) {
	if len(records) == 0 {
		r.println(msgNothing)
		return
	}
	for _, rec := range records {
		r.println(contact.Card(rec.ID, rec.Contact))
	}
}

// readLines scans in in its own goroutine so a prompt can give up on
// cancellation. The channel is closed at end of input; the goroutine stops
// sending once done is closed.
func readLines(in io.Reader, done <-chan struct{}) <-chan line {
	ch := make(chan line)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- line{text: sc.Text()}:
			case <-done:
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case ch <- line{err: err}:
			case <-done:
			}
		}
	}()
	return ch
}

// ask prints prompt and returns the next input line without its newline.
func (r *Runner) ask(ctx context.Context, prompt string) (string, error) {
	r.printf("%s", prompt)
	select {
	case <-ctx.Done():
		r.println("")
		return "", ctx.Err()
	case l, ok := <-r.lines:
		if !ok {
			r.println("")
			return "", errEOF
		}
		if l.err != nil {
			return "", fmt.Errorf("read input: %w", l.err)
		}
		return strings.TrimRight(l.text, "\r"), nil
	}
}

func (r *Runner) askAll(ctx context.Context, prompts ...string) ([]string, error) {
	out := make([]string, len(prompts))
	for i, p := range prompts {
		v, err := r.ask(ctx, p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.Out, format, args...)
}

func (r *Runner) println(s string) {
	fmt.Fprintln(r.Out, s)
}

// keep turns a blank answer into "leave unchanged".
func keep(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
