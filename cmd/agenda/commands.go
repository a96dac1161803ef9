package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jeanpaul/agenda/internal/config"
	"github.com/jeanpaul/agenda/internal/contact"
	"github.com/jeanpaul/agenda/internal/exchange"
	"github.com/jeanpaul/agenda/internal/store"
)

const msgNothing = "The address book is empty or nothing matched."

var errNotFound = errors.New("ID not found")

// runCommand executes a one-shot subcommand against the store.
func runCommand(s store.ContactStore, args []string, out io.Writer) error {
	switch args[0] {
	case "list":
		printRecords(out, s.List())
		return nil
	case "search":
		printRecords(out, s.FindByName(strings.Join(args[1:], " ")))
		return nil
	case "show":
		return cmdShow(s, args[1:], out)
	case "add":
		return cmdAdd(s, args[1:], out)
	case "delete":
		return cmdDelete(s, args[1:], out)
	case "export":
		return cmdExport(s, args[1:], out)
	case "import":
		return cmdImport(s, args[1:], out)
	}
	return fmt.Errorf("unknown command %q, run 'agenda help'", args[0])
}

func printRecords(out io.Writer, records []store.Record) {
	if len(records) == 0 {
		fmt.Fprintln(out, msgNothing)
		return
	}
	for _, r := range records {
		fmt.Fprintln(out, contact.Card(r.ID, r.Contact))
	}
}

func cmdShow(s store.ContactStore, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: agenda show <id>")
	}
	c, ok := s.Get(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", errNotFound, args[0])
	}
	fmt.Fprint(out, contact.Card(args[0], c))
	return nil
}

func cmdAdd(s store.ContactStore, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(out)
	name := fs.String("name", "", "Contact name (at least 2 characters)")
	phone := fs.String("phone", "", "Phone number (9 to 15 digits)")
	email := fs.String("email", "", "Email address")
	street := fs.String("street", "", "Street")
	number := fs.String("number", "", "Street number")
	municipality := fs.String("municipality", "", "Municipality")
	postalCode := fs.String("postal-code", "", "Postal code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	addr := contact.Address{Street: *street, Number: *number, Municipality: *municipality, PostalCode: *postalCode}
	id, err := s.Add(*name, *phone, *email, addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Contact added with ID %s\n", id)
	return nil
}

func cmdDelete(s store.ContactStore, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: agenda delete <id>")
	}
	deleted, err := s.Delete(args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", errNotFound, args[0])
	}
	fmt.Fprintf(out, "Contact %s deleted\n", args[0])
	return nil
}

func cmdExport(s store.ContactStore, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: agenda export <file.xlsx|file.yaml|->")
	}
	records := s.List()
	if args[0] == "-" {
		return exchange.WriteYAML(out, records)
	}
	if err := exchange.Write(args[0], records); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(out, "Exported %d contact(s) to %s\n", len(records), args[0])
	return nil
}

func cmdImport(s store.ContactStore, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: agenda import <file|pattern>...")
	}
	paths, err := exchange.Expand(args...)
	if err != nil {
		return err
	}
	rep, err := exchange.Import(s, paths...)
	fmt.Fprintf(out, "Imported %d contact(s)\n", len(rep.Added))
	for _, r := range rep.Rejected {
		fmt.Fprintf(out, "  skipped %s\n", r)
	}
	return err
}

func cmdConfig(args []string, out io.Writer) error {
	if len(args) == 0 || args[0] != "init" || len(args) > 2 {
		return errors.New("usage: agenda config init [path]")
	}
	path := config.DefaultPath()
	if len(args) == 2 {
		path = args[1]
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	if _, err := config.ReadFile(path); err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}
	fmt.Fprintf(out, "Wrote default config to %s\n", path)
	return nil
}
