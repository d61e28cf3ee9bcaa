package lib

import (
	"fmt"
	"math/rand"
	"time"
)

const orderNumberChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const orderNumberRandomLen = 9

// GenerateOrderNumber generates a customer-facing order number in the format
// ORD-<unix millis>-<9 random uppercase alphanumerics>. The millisecond
// prefix keeps numbers sortable by creation time; the random suffix breaks
// same-millisecond collisions.
func GenerateOrderNumber() string {
	// Local rand.Source for thread safety
	src := rand.NewSource(time.Now().UnixNano())
	r := rand.New(src)

	randomPart := make([]byte, orderNumberRandomLen)
	for i := range randomPart {
		randomPart[i] = orderNumberChars[r.Intn(len(orderNumberChars))]
	}

	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), string(randomPart))
}
