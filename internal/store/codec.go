package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/jeanpaul/agenda/internal/contact"
	"github.com/jeanpaul/agenda/internal/schema"
)

// Record is a contact together with its id.
type Record struct {
	ID      string
	Contact contact.Contact
}

var prettyOptions = &pretty.Options{Width: 80, Indent: "    "}

// decodeBook parses the persisted document, keeping key order.
func decodeBook(data []byte, v *schema.Validator) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrCorrupt)
	}
	if err := v.Validate(schema.BookSchema, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	var (
		records []Record
		index   = map[string]int{}
		err     error
	)
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		id := key.String()
		if _, convErr := strconv.Atoi(id); convErr != nil {
			err = fmt.Errorf("%w: id %q: %w", ErrCorrupt, id, convErr)
			return false
		}
		var c contact.Contact
		if jsonErr := json.Unmarshal([]byte(value.Raw), &c); jsonErr != nil {
			err = fmt.Errorf("%w: contact %s: %w", ErrCorrupt, id, jsonErr)
			return false
		}
		// Duplicate keys: the last value wins, the first position is kept.
		if i, ok := index[id]; ok {
			records[i].Contact = c
			return true
		}
		index[id] = len(records)
		records = append(records, Record{ID: id, Contact: c})
		return true
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// encodeBook renders records as an indented JSON object in slice order.
// Non-ASCII text is written as is and HTML characters are not escaped.
func encodeBook(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, r := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(r.ID); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := enc.Encode(r.Contact); err != nil {
			return nil, fmt.Errorf("encode contact %s: %w", r.ID, err)
		}
	}
	buf.WriteByte('}')

	out := pretty.PrettyOptions(buf.Bytes(), prettyOptions)
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}

// writeFileAtomic replaces path with data through a temp file and a rename
// in the same directory, so readers never see a half-written book.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".agenda-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
