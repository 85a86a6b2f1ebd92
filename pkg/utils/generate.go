package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GenerateReservationCode creates the human-facing reservation code.
// Format: RSV-YYYYMMDD-RANDOM
func GenerateReservationCode() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	datePart := time.Now().Format("20060102")
	randomPart := fmt.Sprintf("%06d", rand.Intn(1000000))

	return fmt.Sprintf("RSV-%s-%s", datePart, randomPart)
}

// GenerateConfirmationToken creates the single-use opaque confirmation credential.
func GenerateConfirmationToken() string {
	return uuid.New().String()
}

// LastFourDigits returns the last 4 characters of a phone number, or the whole
// number when shorter.
func LastFourDigits(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return phone[len(phone)-4:]
}
