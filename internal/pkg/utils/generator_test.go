package utils

import (
	"strings"
	"testing"

	"learnhub-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	otp, err := GenerateOTP(constvars.OTP_LENGTH)
	require.NoError(t, err)
	assert.Len(t, otp, constvars.OTP_LENGTH)
	for _, c := range otp {
		assert.True(t, c >= '0' && c <= '9', "otp must be numeric, got %q", otp)
	}
}

func TestGenerateOrderReceipt(t *testing.T) {
	t.Run("short ids", func(t *testing.T) {
		receipt := GenerateOrderReceipt("c1", "u1")
		assert.True(t, strings.HasPrefix(receipt, "rcpt_c1_u1_"))
		assert.LessOrEqual(t, len(receipt), constvars.RazorpayReceiptMaxLength)
	})

	t.Run("mongo object ids stay within the gateway limit", func(t *testing.T) {
		receipt := GenerateOrderReceipt("64fa1b2c3d4e5f6a7b8c9d0e", "64fa1b2c3d4e5f6a7b8c9d0f")
		assert.LessOrEqual(t, len(receipt), constvars.RazorpayReceiptMaxLength)
		assert.Contains(t, receipt, "64fa1b2c")
	})
}

func TestGenerateRequestID(t *testing.T) {
	requestID := GenerateRequestID()
	assert.True(t, strings.HasPrefix(requestID, constvars.REQUEST_ID_PREFIX))
	assert.NotEqual(t, requestID, GenerateRequestID())
}
