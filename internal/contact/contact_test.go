package contact

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		field   string
	}{
		{"valid", Contact{Name: "Ann", Phone: "123456789"}, ""},
		{"valid 15 digits", Contact{Name: "Ann", Phone: "123456789012345"}, ""},
		{"name too short", Contact{Name: "A", Phone: "123456789"}, "name"},
		{"name blank after trim", Contact{Name: "  A  ", Phone: "123456789"}, "name"},
		{"name empty", Contact{Name: "", Phone: "123456789"}, "name"},
		{"non ascii name counts runes", Contact{Name: "Úa", Phone: "123456789"}, ""},
		{"phone too short", Contact{Name: "Valid Name", Phone: "12345"}, "phone"},
		{"phone too long", Contact{Name: "Valid Name", Phone: "12345678901234567"}, "phone"},
		{"phone with symbols", Contact{Name: "Valid Name", Phone: "+34123456789"}, "phone"},
		{"phone with spaces", Contact{Name: "Valid Name", Phone: "123 456 789"}, "phone"},
		{"phone empty", Contact{Name: "Valid Name", Phone: ""}, "phone"},
		{"phone arabic-indic digits", Contact{Name: "Valid Name", Phone: "١٢٣٤٥٦٧٨٩"}, "phone"},
		{"phone fullwidth digits", Contact{Name: "Valid Name", Phone: "１２３４５６７８９"}, "phone"},
		{"phone mixed ascii and devanagari", Contact{Name: "Valid Name", Phone: "1234567८९"}, "phone"},
		{"both invalid reports name", Contact{Name: "A", Phone: "1"}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.contact)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidate_EmailIsFreeForm(t *testing.T) {
	assert.NoError(t, Validate(Contact{Name: "Ann", Phone: "123456789", Email: "not an email"}))
}

func TestValidationErrorMessages(t *testing.T) {
	err := Validate(Contact{Name: "Ann", Phone: "12ab56789"})
	require.Error(t, err)
	assert.Equal(t, "phone: must contain digits only", err.Error())

	err = Validate(Contact{Name: "Ann", Phone: "12345"})
	require.Error(t, err)
	assert.Equal(t, "phone: must have between 9 and 15 digits", err.Error())
}

func TestValidatePatch_ChecksOnlyTouchedFields(t *testing.T) {
	legacy := Contact{Name: "Ann", Phone: "555-1234"}

	tests := []struct {
		name  string
		patch Patch
		field string
	}{
		{"email only", Patch{Email: Set("ann@x.com")}, ""},
		{"address only", Patch{Address: &AddressPatch{Street: Set("Main")}}, ""},
		{"empty", Patch{}, ""},
		{"valid name", Patch{Name: Set("Anne")}, ""},
		{"invalid name", Patch{Name: Set("A")}, "name"},
		{"fixed phone", Patch{Phone: Set("555123456")}, ""},
		{"invalid phone", Patch{Phone: Set("12")}, "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatch(legacy.Apply(tt.patch), tt.patch)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestApply_MergesAddress(t *testing.T) {
	c := Contact{Name: "Ann", Phone: "123456789", Address: Address{Street: "Main"}}
	got := c.Apply(Patch{Address: &AddressPatch{Number: Set("42")}})

	assert.Equal(t, "Main", got.Address.Street)
	assert.Equal(t, "42", got.Address.Number)
	assert.Equal(t, "Ann", got.Name)
	// the receiver is untouched
	assert.Equal(t, "", c.Address.Number)
}

func TestApply_ReplacesScalars(t *testing.T) {
	c := Contact{Name: "Ann", Phone: "123456789", Email: "a@x.com"}
	got := c.Apply(Patch{Name: Set("Ann Smith"), Email: Set("")})

	assert.Equal(t, "Ann Smith", got.Name)
	assert.Equal(t, "", got.Email)
	assert.Equal(t, "123456789", got.Phone)
}

func TestPatchEmpty(t *testing.T) {
	assert.True(t, Patch{}.Empty())
	assert.True(t, Patch{Address: &AddressPatch{}}.Empty())
	assert.False(t, Patch{Phone: Set("123456789")}.Empty())
	assert.False(t, Patch{Address: &AddressPatch{PostalCode: Set("28001")}}.Empty())
}

func TestCardAndDiff(t *testing.T) {
	before := Contact{Name: "José Núñez", Phone: "123456789", Address: Address{Street: "Main"}}
	after := before.Apply(Patch{Phone: Set("987654321")})

	card := Card("7", before)
	assert.Contains(t, card, "ID: 7\n")
	assert.Contains(t, card, "Name: José Núñez\n")
	assert.Contains(t, card, "  Street: Main\n")

	diff := Diff(Card("7", before), Card("7", after))
	assert.Contains(t, diff, "-Phone: 123456789")
	assert.Contains(t, diff, "+Phone: 987654321")
	assert.NotContains(t, diff, "-Name:")

	assert.Empty(t, Diff(card, card))
}

func TestMarkdown(t *testing.T) {
	md := Markdown("3", Contact{Name: "Ann", Phone: "123456789", Email: "a|b"})
	assert.True(t, strings.HasPrefix(md, "# Ann\n"))
	assert.Contains(t, md, "| ID | 3 |")
	assert.Contains(t, md, `a\|b`)
	assert.Contains(t, md, "| Street | - |")
}
