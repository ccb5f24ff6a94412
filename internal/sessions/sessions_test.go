package sessions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry()
	assert.False(t, reg.IsOpen("r1"))

	s := reg.Open("r1")
	assert.Equal(t, "r1", s.RecordID)
	assert.True(t, reg.IsOpen("r1"))

	reg.Close("r1")
	assert.False(t, reg.IsOpen("r1"))

	// Closing twice is harmless.
	reg.Close("r1")
	assert.False(t, reg.IsOpen("r1"))
}
