package contact

// Address is the postal address of a contact. Every field is optional.
type Address struct {
	Street       string `json:"calle" yaml:"street"`
	Number       string `json:"numero" yaml:"number"`
	Municipality string `json:"municipio" yaml:"municipality"`
	PostalCode   string `json:"cp" yaml:"postal_code"`
}

// Contact is a single address book entry. The identifier is not part of the
// record: the store keys records by id.
type Contact struct {
	Name    string  `json:"nombre" yaml:"name" validate:"trimmed_min=2"`
	Phone   string  `json:"telefono" yaml:"phone" validate:"number,min=9,max=15"`
	Email   string  `json:"email" yaml:"email"`
	Address Address `json:"direccion" yaml:"address"`
}

// AddressPatch lists address fields to overwrite. Nil fields keep their
// current value.
type AddressPatch struct {
	Street       *string
	Number       *string
	Municipality *string
	PostalCode   *string
}

// Empty reports whether the patch changes nothing.
func (p AddressPatch) Empty() bool {
	return p.Street == nil && p.Number == nil && p.Municipality == nil && p.PostalCode == nil
}

// Patch is a partial edit of a contact. Nil fields are left unchanged; the
// address patch is merged field by field instead of replacing the address.
type Patch struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *AddressPatch
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Email == nil && (p.Address == nil || p.Address.Empty())
}

// Apply returns a copy of c with the patch merged in.
func (c Contact) Apply(p Patch) Contact {
	out := c
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Phone != nil {
		out.Phone = *p.Phone
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Address != nil {
		a := p.Address
		if a.Street != nil {
			out.Address.Street = *a.Street
		}
		if a.Number != nil {
			out.Address.Number = *a.Number
		}
		if a.Municipality != nil {
			out.Address.Municipality = *a.Municipality
		}
		if a.PostalCode != nil {
			out.Address.PostalCode = *a.PostalCode
		}
	}
	return out
}

// Set is a helper for building patches from literal values.
func Set(s string) *string { return &s }
