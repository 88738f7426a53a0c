package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillMatches(t *testing.T) {
	b := make([]byte, 64)
	Fill(b, 7)
	assert.True(t, Matches(b, 7))
	assert.False(t, Matches(b, 8))

	b[10] ^= 1
	assert.False(t, Matches(b, 7))
}

func TestFillDeterministic(t *testing.T) {
	a := make([]byte, 32)
	b := make([]byte, 32)
	Fill(a, 42)
	Fill(b, 42)
	assert.Equal(t, a, b)
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestMatchesEmpty(t *testing.T) {
	assert.True(t, Matches(nil, 1))
}
