package billing

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateInvoiceNumber returns INV-YYYYMMDD-RRRR with a 4-digit
// cryptographic random suffix. Same-day collisions are left to the
// uniqueness constraint at the persistence layer.
func GenerateInvoiceNumber() string {
	now := time.Now().UTC()
	datePart := now.Format("20060102")

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf("INV-%s-%04d", datePart, n.Int64())
}
