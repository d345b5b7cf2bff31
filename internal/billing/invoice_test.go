package billing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInvoiceNumber(t *testing.T) {
	t.Run("Format", func(t *testing.T) {
		inv := GenerateInvoiceNumber()
		// Expected format: INV-YYYYMMDD-RRRR
		// Example: INV-20250901-4567

		assert.True(t, strings.HasPrefix(inv, "INV-"), "Should start with INV-")

		parts := strings.Split(inv, "-")
		if assert.Len(t, parts, 3, "Should have 3 parts separated by hyphens") {
			assert.Equal(t, "INV", parts[0])
			assert.Len(t, parts[1], 8, "Date part YYYYMMDD should be 8 chars")
			assert.Len(t, parts[2], 4, "Random part should be 4 chars")
		}
	})

	t.Run("DatePartIsToday", func(t *testing.T) {
		inv := GenerateInvoiceNumber()
		parts := strings.Split(inv, "-")
		assert.Equal(t, time.Now().UTC().Format("20060102"), parts[1])
	})

	t.Run("RandomSuffixVaries", func(t *testing.T) {
		// 4 random digits can collide; over a handful of draws at least
		// two distinct values should appear.
		seen := map[string]bool{}
		for i := 0; i < 16; i++ {
			seen[GenerateInvoiceNumber()] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}
