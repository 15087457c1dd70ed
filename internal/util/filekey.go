package util

import (
	"crypto/sha1"
	"fmt"
)

// HashBytes returns the hex SHA1 of data.
// Stored with every game so a re-upload can be told apart from a corrected sheet.
func HashBytes(data []byte) string {
	return fmt.Sprintf("%x", sha1.Sum(data))
}

// ShortHash trims a hex digest for display
func ShortHash(sum string) string {
	if len(sum) <= 10 {
		return sum
	}
	return sum[:10]
}
