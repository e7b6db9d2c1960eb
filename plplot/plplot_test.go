//go:build cgo && plplot

package plplot

import (
	"testing"

	"github.com/diamondburned/plstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistered(t *testing.T) {
	assert.Equal(t, Library{}, plstream.Lookup(plstream.LibraryPLplot))
	assert.Equal(t, Library{}, plstream.Default(), "PLplot takes precedence")
}

func TestStreams(t *testing.T) {
	a, err := plstream.New()
	require.NoError(t, err)
	defer a.Close()

	b, err := plstream.New()
	require.NoError(t, err)
	defer b.Close()

	aID, err := a.ID()
	require.NoError(t, err)
	bID, err := b.ID()
	require.NoError(t, err)
	assert.NotEqual(t, aID, bID)

	require.NoError(t, b.CopyState(a, false))

	b.End()
	_, err = b.ID()
	assert.ErrorIs(t, err, plstream.ErrEnded)
}
