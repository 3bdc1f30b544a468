package registry

import "math/rand/v2"

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// IDGenerator produces candidate timer ids.
type IDGenerator func() string

// RandomIDs returns a generator of fixed-length alphanumeric ids.
func RandomIDs(length int) IDGenerator {
	return func() string {
		buf := make([]byte, length)
		for i := range buf {
			buf[i] = idAlphabet[rand.IntN(len(idAlphabet))]
		}
		return string(buf)
	}
}
