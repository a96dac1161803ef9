package exchange

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/agenda/internal/contact"
	"github.com/jeanpaul/agenda/internal/store"
)

type yamlContact struct {
	ID              string `yaml:"id,omitempty"`
	contact.Contact `yaml:",inline"`
}

// WriteYAML writes records as a YAML list.
func WriteYAML(w io.Writer, records []store.Record) error {
	list := make([]yamlContact, 0, len(records))
	for _, r := range records {
		list = append(list, yamlContact{ID: r.ID, Contact: r.Contact})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return err
	}
	return enc.Close()
}

// ReadYAML reads a YAML list of contacts. Ids in the document are ignored;
// the store assigns new ones on import.
func ReadYAML(r io.Reader) ([]contact.Contact, error) {
	var list []yamlContact
	if err := yaml.NewDecoder(r).Decode(&list); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]contact.Contact, 0, len(list))
	for _, c := range list {
		out = append(out, c.Contact)
	}
	return out, nil
}
