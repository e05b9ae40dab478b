package crypto

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const (
	// OTPLength is the number of digits in a verification code.
	OTPLength = 8

	// OTPTTL is how long an issued code stays valid.
	OTPTTL = 10 * time.Minute

	otpMin = 10_000_000
	otpMax = 99_999_999
)

// GenerateOTP returns a fresh 8-digit verification code and its expiry.
// The code is drawn uniformly from [10000000, 99999999], so it never
// needs zero padding.
func GenerateOTP() (string, time.Time) {
	code := otpMin + rand.IntN(otpMax-otpMin+1)
	return strconv.Itoa(code), time.Now().Add(OTPTTL)
}
