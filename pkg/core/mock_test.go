package core_test

import (
	"context"
	"io/fs"
)

// MockRepository implements core.Repository in memory.
// Errors can be injected per operation to simulate disk failures.
// It deliberately does NOT implement core.Watchable.
type MockRepository struct {
	name string
	path string

	data   []byte
	exists bool

	initErr   error
	loadErr   error
	saveErr   error
	deleteErr error

	saves   int
	deletes int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		name: "gestor-classes-data.json",
		path: "/data/gestor-classes-data.json",
	}
}

// seed places a document on the fake disk.
func (m *MockRepository) seed(doc string) {
	m.data = []byte(doc)
	m.exists = true
}

func (m *MockRepository) Name() string { return m.name }
func (m *MockRepository) Path() string { return m.path }

func (m *MockRepository) Initialize(ctx context.Context) error { return m.initErr }

func (m *MockRepository) Exists(ctx context.Context) bool { return m.exists }

func (m *MockRepository) Load(ctx context.Context) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if !m.exists {
		return nil, &fs.PathError{Op: "open", Path: m.path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MockRepository) Save(ctx context.Context, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data = append([]byte(nil), data...)
	m.exists = true
	return nil
}

func (m *MockRepository) Delete(ctx context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletes++
	m.data = nil
	m.exists = false
	return nil
}
