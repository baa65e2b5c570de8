package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartRequiresInitialize(t *testing.T) {
	m := NewManager()

	_, err := m.Start(Options{Headless: true})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestSessionWithoutStart(t *testing.T) {
	m := NewManager()

	_, err := m.Session()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no active session")
}

func TestCloseWithoutSession(t *testing.T) {
	m := NewManager()
	assert.NoError(t, m.Close())
}

func TestShutdownWithoutInitialize(t *testing.T) {
	m := NewManager()
	assert.NoError(t, m.Shutdown())
}
