package store

// withReadFile replaces the function used to read the book at load time.
func withReadFile(fn func(string) ([]byte, error)) Option {
	return func(s *Store) { s.readFile = fn }
}
