package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
	digitAlphabet    = "0123456789"

	// PINLength is the number of digits in a voucher PIN
	PINLength = 12
)

// GeneratePassword returns a random password drawn from letters, digits and !@#$%^&*
func GeneratePassword(length int) (string, error) {
	return randomString(passwordAlphabet, length)
}

// GeneratePIN returns a random numeric voucher PIN
func GeneratePIN() (string, error) {
	return randomString(digitAlphabet, PINLength)
}

func randomString(alphabet string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", length)
	}
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
