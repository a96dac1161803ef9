package exchange

import (
	"fmt"
	"os"

	"github.com/jeanpaul/agenda/internal/contact"
	"github.com/jeanpaul/agenda/internal/store"
)

// Adder is the part of the store an import needs.
type Adder interface {
	Add(name, phone, email string, addr contact.Address) (string, error)
}

// Rejected is a source entry the store refused.
type Rejected struct {
	Source string
	Entry  int // 1-based position in the source
	Err    error
}

func (r Rejected) String() string {
	return fmt.Sprintf("%s entry %d: %v", r.Source, r.Entry, r.Err)
}

// Report summarises an import.
type Report struct {
	Added    []string
	Rejected []Rejected
}

// Read loads contacts from an XLSX or YAML file, chosen by extension.
func Read(path string) ([]contact.Contact, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return ReadXLSX(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadYAML(f)
	}
}

// Write exports records to an XLSX or YAML file, chosen by extension.
func Write(path string, records []store.Record) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if format == FormatXLSX {
		return WriteXLSX(path, records)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteYAML(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Import adds every contact found in paths. Invalid entries are collected in
// the report; any other error stops the import.
func Import(s Adder, paths ...string) (Report, error) {
	var rep Report
	for _, path := range paths {
		contacts, err := Read(path)
		if err != nil {
			return rep, fmt.Errorf("import %s: %w", path, err)
		}
		for i, c := range contacts {
			id, err := s.Add(c.Name, c.Phone, c.Email, c.Address)
			if contact.IsValidation(err) {
				rep.Rejected = append(rep.Rejected, Rejected{Source: path, Entry: i + 1, Err: err})
				continue
			}
			if err != nil {
				return rep, fmt.Errorf("import %s: %w", path, err)
			}
			rep.Added = append(rep.Added, id)
		}
	}
	return rep, nil
}
