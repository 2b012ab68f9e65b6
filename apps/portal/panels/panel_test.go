package panels

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifecycle_transitions(t *testing.T) {
	var l lifecycle
	assert.Equal(t, Idle, l.State())

	gen := l.begin()
	assert.Equal(t, Loading, l.State())

	applied := 0
	assert.True(t, l.commit(gen, nil, "", func() { applied++ }))
	assert.Equal(t, Ready, l.State())
	assert.Equal(t, 1, applied)

	gen = l.begin()
	assert.False(t, l.commit(gen, errors.New("boom"), "Failed to load", func() { applied++ }))
	assert.Equal(t, Failed, l.State())
	assert.Equal(t, "Failed to load", l.Failure())
	assert.Equal(t, 1, applied)

	// recovery clears the failure
	gen = l.begin()
	assert.True(t, l.commit(gen, nil, "", nil))
	assert.Equal(t, Ready, l.State())
	assert.Empty(t, l.Failure())
}

func TestLifecycle_staleGenerationDiscarded(t *testing.T) {
	var l lifecycle

	stale := l.begin()
	fresh := l.begin()

	// the newer fetch resolves first
	applied := ""
	assert.True(t, l.commit(fresh, nil, "", func() { applied = "fresh" }))
	assert.Equal(t, Ready, l.State())

	// the older response arrives late and is dropped, success or failure
	assert.False(t, l.commit(stale, nil, "", func() { applied = "stale" }))
	assert.Equal(t, "fresh", applied)
	assert.Equal(t, Ready, l.State())

	stale = l.begin()
	fresh = l.begin()
	assert.True(t, l.commit(fresh, nil, "", nil))
	assert.False(t, l.commit(stale, errors.New("boom"), "Failed to load", nil))
	assert.Equal(t, Ready, l.State())
	assert.Empty(t, l.Failure())
}
