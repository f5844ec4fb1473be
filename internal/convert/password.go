package convert

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const passwordLength = 24

// passwordCharset excludes ambiguous characters (0/O, 1/l/I).
const passwordCharset = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789!@#$%^&*-_=+"

// GeneratePassword returns a random password of the given length drawn
// from a mixed character set. Rotated passwords are never shown or stored;
// the goal is making the old credential unusable.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("password length must be positive, got %d", length)
	}
	max := big.NewInt(int64(len(passwordCharset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		out[i] = passwordCharset[n.Int64()]
	}
	return string(out), nil
}
