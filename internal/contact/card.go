package contact

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Card renders a contact as plain text, one field per line.
func Card(id string, c Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %s\n", id)
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	b.WriteString("Address:\n")
	fmt.Fprintf(&b, "  Street: %s\n", c.Address.Street)
	fmt.Fprintf(&b, "  Number: %s\n", c.Address.Number)
	fmt.Fprintf(&b, "  Municipality: %s\n", c.Address.Municipality)
	fmt.Fprintf(&b, "  Postal code: %s\n", c.Address.PostalCode)
	return b.String()
}

// Markdown renders a contact for a markdown renderer.
func Markdown(id string, c Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", orDash(c.Name))
	fmt.Fprintf(&b, "| Field | Value |\n| --- | --- |\n")
	row := func(k, v string) {
		fmt.Fprintf(&b, "| %s | %s |\n", k, strings.ReplaceAll(orDash(v), "|", "\\|"))
	}
	row("ID", id)
	row("Phone", c.Phone)
	row("Email", c.Email)
	row("Street", c.Address.Street)
	row("Number", c.Address.Number)
	row("Municipality", c.Address.Municipality)
	row("Postal code", c.Address.PostalCode)
	return b.String()
}

// Diff returns a unified diff between two renderings of a contact, or ""
// when they are identical.
func Diff(before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath("contact"), before, after)
	return fmt.Sprint(gotextdiff.ToUnified("before", "after", before, edits))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
