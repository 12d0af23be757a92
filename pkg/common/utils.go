package common

import (
	"math/rand"
	"time"
)

const codeCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCode(length int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	result := make([]byte, length)
	for i := range result {
		result[i] = codeCharacters[r.Intn(len(codeCharacters))]
	}
	return string(result)
}

// GenerateTrxNo produces a reference for internal audit rows.
func GenerateTrxNo() string {
	return randomCode(7)
}

// GenerateRefCode produces a shareable referral code.
func GenerateRefCode() string {
	return "REF" + randomCode(7)
}
