package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const referenceAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// FormatPhoneNumber normalizes a phone number to E.164: a leading plus
// followed by digits only. An empty input stays empty.
func FormatPhoneNumber(n string) string {
	if n == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range n {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return ""
	}

	return "+" + digits
}

// GenerateRandomString generates a random string of the specified length
// sampled from the base36 alphabet
func GenerateRandomString(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	for i := range b {
		b[i] = referenceAlphabet[int(b[i])%len(referenceAlphabet)]
	}

	return string(b), nil
}

// GeneratePurchaseReference builds a unique purchase reference of the form
// TXN-<millis>-<9 alphanumerics>. Collisions are treated as negligible, not
// eliminated.
func GeneratePurchaseReference() string {
	suffix, err := GenerateRandomString(9)
	if err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back to a
		// time-derived suffix rather than aborting a paying customer.
		suffix = fmt.Sprintf("%09d", time.Now().UnixNano()%1_000_000_000)
	}
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), suffix)
}

// GenerateUpsellReference builds the level-specific reference
// UPSELL<level>-<parentTxn>-<millis>
func GenerateUpsellReference(level int, parentTxn string) string {
	return fmt.Sprintf("UPSELL%d-%s-%d", level, parentTxn, time.Now().UnixMilli())
}
