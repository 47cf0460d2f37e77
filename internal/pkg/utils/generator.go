package utils

import (
	"crypto/rand"
	"fmt"
	"learnhub-service/internal/pkg/constvars"
	"math/big"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateOTP(otpLength int) (string, error) {
	const otpDigits = "0123456789"
	max := big.NewInt(int64(len(otpDigits)))

	otp := make([]byte, otpLength)
	for i := range otp {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		otp[i] = otpDigits[num.Int64()]
	}

	return string(otp), nil
}

// GenerateOrderReceipt builds a gateway receipt from truncated course and user
// ids plus a unix timestamp. The ids are cut to 8 characters each so the
// result always stays within the gateway's 40 character receipt limit.
func GenerateOrderReceipt(courseID, userID string) string {
	shortCourse := courseID
	if len(shortCourse) > 8 {
		shortCourse = shortCourse[:8]
	}
	shortUser := userID
	if len(shortUser) > 8 {
		shortUser = shortUser[:8]
	}
	receipt := fmt.Sprintf("rcpt_%s_%s_%d", shortCourse, shortUser, time.Now().Unix())
	if len(receipt) > constvars.RazorpayReceiptMaxLength {
		receipt = receipt[:constvars.RazorpayReceiptMaxLength]
	}
	return receipt
}

func GenerateObjectName(prefix, ownerID, fileExtension string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s_%s_%s%s", prefix, ownerID, timestamp, fileExtension)
}
