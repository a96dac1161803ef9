// Package exchange moves contacts in and out of the address book as XLSX
// workbooks or YAML documents.
package exchange
