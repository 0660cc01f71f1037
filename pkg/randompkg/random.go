// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/vporoshin/bank-ledger/pkg/moneypkg"
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

// Name generates a random account holder name.
func Name() string {
	return String(6)
}

// UUID generates a random account id.
func UUID() uuid.UUID {
	return uuid.New()
}

// MoneyBetween generates a random amount between min and max whole units.
func MoneyBetween(min, max int64) moneypkg.Money {
	units := min*1000 + Intn(int((max-min)*1000))

	return moneypkg.FromUnits(units)
}
