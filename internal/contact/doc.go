// Package contact defines the address book record, its validation rules and
// text renderings.
package contact
