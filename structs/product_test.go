package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("Dark Desire")
	assert.True(t, ok)
	assert.Equal(t, CategoryDarkDesire, c)

	// Caller casing never matters; the canonical form comes back.
	c, ok = ParseCategory("dark desire")
	assert.True(t, ok)
	assert.Equal(t, CategoryDarkDesire, c)

	c, ok = ParseCategory("VANILLA LUST")
	assert.True(t, ok)
	assert.Equal(t, CategoryVanillaLust, c)

	_, ok = ParseCategory("White Chocolate")
	assert.False(t, ok)

	_, ok = ParseCategory("")
	assert.False(t, ok)
}
