package lib

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{13}-[A-Z0-9]{9}$`)

func TestGenerateOrderNumberFormat(t *testing.T) {
	for range 50 {
		assert.Regexp(t, orderNumberPattern, GenerateOrderNumber())
	}
}

func TestGenerateOrderNumberUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		n := GenerateOrderNumber()
		assert.False(t, seen[n], "generated a duplicate order number: %s", n)
		seen[n] = true
	}
}
