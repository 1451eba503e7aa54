package storage

// Memory is an in-process Blob. It backs ephemeral sessions and tests; a
// non-nil write error makes every Set fail, which simulates a full disk.
type Memory struct {
	values   map[string]string
	writeErr error
	writes   int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value for key or ErrNotFound.
func (m *Memory) Get(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key unless a write error has been injected.
func (m *Memory) Set(key, value string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.values[key] = value
	m.writes++
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// FailWrites makes subsequent Set calls return err. Pass nil to recover.
func (m *Memory) FailWrites(err error) {
	m.writeErr = err
}

// Writes returns the number of successful Set calls.
func (m *Memory) Writes() int {
	return m.writes
}
