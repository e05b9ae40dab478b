package crypto

import (
	"strconv"
	"testing"
	"time"
)

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, _ := GenerateOTP()

		if len(code) != OTPLength {
			t.Fatalf("GenerateOTP() code %q has length %d, want %d", code, len(code), OTPLength)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("GenerateOTP() code %q is not numeric", code)
		}
		if n < otpMin || n > otpMax {
			t.Fatalf("GenerateOTP() code %d outside [%d, %d]", n, otpMin, otpMax)
		}
	}
}

func TestGenerateOTPExpiry(t *testing.T) {
	before := time.Now()
	_, expiresAt := GenerateOTP()
	after := time.Now()

	if expiresAt.Before(before.Add(OTPTTL)) || expiresAt.After(after.Add(OTPTTL)) {
		t.Errorf("GenerateOTP() expiry %v not %v from now", expiresAt, OTPTTL)
	}
}

func TestGenerateOTPVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, _ := GenerateOTP()
		seen[code] = true
	}
	// 100 draws over 90 million values colliding down to a handful
	// would indicate a broken generator.
	if len(seen) < 95 {
		t.Errorf("GenerateOTP() produced only %d distinct codes in 100 draws", len(seen))
	}
}
