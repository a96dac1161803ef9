package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/agenda/internal/config"
	"github.com/jeanpaul/agenda/internal/contact"
	"github.com/jeanpaul/agenda/internal/store"
)

func runArgs(t *testing.T, s store.ContactStore, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := runCommand(s, args, &out)
	return out.String(), err
}

func TestAddShowListDelete(t *testing.T) {
	s := store.Open(filepath.Join(t.TempDir(), "book.json"))

	out, err := runArgs(t, s, "add", "--name", "Ann", "--phone", "123456789", "--municipality", "Lugo")
	require.NoError(t, err)
	assert.Equal(t, "Contact added with ID 1\n", out)

	out, err = runArgs(t, s, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Ann")
	assert.Contains(t, out, "  Municipality: Lugo")

	out, err = runArgs(t, s, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID: 1")

	out, err = runArgs(t, s, "search", "zz")
	require.NoError(t, err)
	assert.Equal(t, msgNothing+"\n", out)

	out, err = runArgs(t, s, "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "Contact 1 deleted\n", out)

	_, err = runArgs(t, s, "delete", "1")
	assert.ErrorIs(t, err, errNotFound)
	_, err = runArgs(t, s, "show", "1")
	assert.ErrorIs(t, err, errNotFound)
}

func TestAddInvalid(t *testing.T) {
	s := store.Open(filepath.Join(t.TempDir(), "book.json"))

	_, err := runArgs(t, s, "add", "--name", "Ann", "--phone", "12")
	assert.True(t, contact.IsValidation(err))
	assert.Equal(t, 0, s.Len())
}

func TestUsageErrors(t *testing.T) {
	s := store.Open(filepath.Join(t.TempDir(), "book.json"))

	for _, args := range [][]string{{"show"}, {"delete"}, {"export"}, {"import"}, {"frobnicate"}} {
		_, err := runArgs(t, s, args...)
		assert.Error(t, err, strings.Join(args, " "))
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	src := store.Open(filepath.Join(dir, "src.json"))
	_, err := src.Add("José", "123456789", "jose@example.com", contact.Address{Street: "Gran Vía"})
	require.NoError(t, err)
	_, err = src.Add("Ann", "987654321", "", contact.Address{})
	require.NoError(t, err)

	out, err := runArgs(t, src, "export", filepath.Join(dir, "out", "book.yaml"))
	require.Error(t, err, "export does not create directories")
	assert.Empty(t, out)

	_, err = runArgs(t, src, "export", filepath.Join(dir, "book.yaml"))
	require.NoError(t, err)
	_, err = runArgs(t, src, "export", filepath.Join(dir, "book.xlsx"))
	require.NoError(t, err)

	out, err = runArgs(t, src, "export", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "name: José")

	dst := store.Open(filepath.Join(dir, "dst.json"))
	out, err = runArgs(t, dst, "import", filepath.Join(dir, "book.*"))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 4 contact(s)")
	assert.Equal(t, 4, dst.Len())
}

func TestImportReportsRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: A\n  phone: \"123456789\"\n"), 0644))

	s := store.Open(filepath.Join(dir, "book.json"))
	out, err := runArgs(t, s, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 contact(s)")
	assert.Contains(t, out, "skipped "+path+" entry 1")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda", "config.yaml")
	var out bytes.Buffer

	require.NoError(t, cmdConfig([]string{"init", path}, &out))
	assert.Contains(t, out.String(), path)

	cfg, err := config.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	assert.Error(t, cmdConfig([]string{"init", path}, &out), "existing file is kept")
	assert.Error(t, cmdConfig(nil, &out))
}
