package classroom

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	joinCodeLen      = 6
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	alphabetLen = big.NewInt(int64(len(joinCodeAlphabet)))

	randReader = rand.Reader // mockable
)

// generateJoinCode returns a random 6 characters uppercase alphanumeric code.
// Uniqueness is not checked: colliding codes resolve to the first class created.
func generateJoinCode() (string, error) {
	var sb strings.Builder
	sb.Grow(joinCodeLen)
	for i := 0; i < joinCodeLen; i++ {
		n, err := rand.Int(randReader, alphabetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(joinCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeJoinCode makes join code lookups case-insensitive.
func NormalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
