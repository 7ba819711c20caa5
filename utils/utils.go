package utils

import (
	"crypto/md5"
	"encoding/hex"
	"math/rand"
	"path/filepath"
	"time"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

func init() {
	// Temp DB names must differ across test binaries running in parallel.
	rand.Seed(time.Now().UnixNano())
}

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// BytesToMd5Hash returns the hex md5 digest of data, used as content-derived
// file store keys.
func BytesToMd5Hash(data []byte) string {
	digest := md5.Sum(data)
	return hex.EncodeToString(digest[:])
}

// GetFileExtNameWithDot returns the extension of fileName including the
// leading dot, or empty string if there is none.
func GetFileExtNameWithDot(fileName string) string {
	return filepath.Ext(fileName)
}

// RandomAlphabetString returns a random lower-case string of the given length.
func RandomAlphabetString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}
