package utils

import (
	"crypto/rand"
	"math/big"
)

const randomChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns a random string of the given length drawn from
// letters and digits. It uses crypto/rand so output is safe to use for
// generated credentials.
func GenerateRandomString(length int) string {
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomChars))))
		if err != nil {
			// crypto/rand failure means the platform RNG is broken
			panic(err)
		}
		result[i] = randomChars[n.Int64()]
	}
	return string(result)
}
