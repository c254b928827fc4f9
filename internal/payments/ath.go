package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strings"
)

const (
	ATHSignatureHeader = "X-ATH-Signature"
	ATHStatusCompleted = "completed"
)

// ATHCallback is the body ATH Móvil posts once a payment settles.
type ATHCallback struct {
	ReferenceNumber string  `json:"reference_number" binding:"required"`
	BookingID       string  `json:"booking_id" binding:"required"`
	Status          string  `json:"status" binding:"required"`
	Total           float64 `json:"total"`
}

func (c ATHCallback) TotalCents() int64 {
	return int64(math.Round(c.Total * 100))
}

func (c ATHCallback) Completed() bool {
	return strings.EqualFold(c.Status, ATHStatusCompleted)
}

// SignATH returns the hex HMAC-SHA256 of body under secret.
func SignATH(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyATH checks the callback signature. An empty secret rejects everything.
func VerifyATH(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	want, _ := hex.DecodeString(SignATH(secret, body))
	return hmac.Equal(got, want)
}
