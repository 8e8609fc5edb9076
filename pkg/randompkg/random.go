// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// ID generates a random record identifier.
func ID() string {
	return String(12)
}

// AmountBetween generates a random whole-unit amount between min and max.
func AmountBetween(min, max int64) int64 {
	return min + Intn(int(max-min))
}

// Category generates a random expense category.
func Category() string {
	categories := []string{"食費", "日用品", "交通費", "光熱費", "その他"}
	return categories[Intn(len(categories))]
}

// DateBetween generates a random calendar date between from and to.
func DateBetween(from, to time.Time) time.Time {
	span := int(to.Sub(from) / (24 * time.Hour))
	if span <= 0 {
		return from
	}

	return from.AddDate(0, 0, int(Intn(span)))
}
