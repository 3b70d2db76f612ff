package mail

import (
	"testing"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestOtpMessage(t *testing.T) {
	t.Run("signup issue", func(t *testing.T) {
		msg, err := OtpMessage("alice@example.com", "123456", domain.OtpPurposeSignup, false)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", msg.To)
		require.Equal(t, "Verify Your Email - Nimbus OTP", msg.Subject)
		require.Contains(t, msg.HTMLBody, "123456")
		require.Contains(t, msg.HTMLBody, "3 minutes")
	})

	t.Run("signup resend uses distinct subject", func(t *testing.T) {
		msg, err := OtpMessage("alice@example.com", "654321", domain.OtpPurposeSignup, true)
		require.NoError(t, err)
		require.Equal(t, "Your New OTP - Nimbus Email Verification", msg.Subject)
	})

	t.Run("password reset", func(t *testing.T) {
		msg, err := OtpMessage("alice@example.com", "111111", domain.OtpPurposePasswordReset, false)
		require.NoError(t, err)
		require.Equal(t, "Reset Your Password - Nimbus OTP", msg.Subject)

		resent, err := OtpMessage("alice@example.com", "222222", domain.OtpPurposePasswordReset, true)
		require.NoError(t, err)
		require.Equal(t, "Your New OTP - Nimbus Password Reset", resent.Subject)
	})
}

func TestPasswordChangedMessage(t *testing.T) {
	msg, err := PasswordChangedMessage("alice@example.com", "Alice")
	require.NoError(t, err)
	require.Equal(t, "Password Changed Successfully - Nimbus", msg.Subject)
	require.Contains(t, msg.HTMLBody, "Alice")
	require.Contains(t, msg.HTMLBody, "sessions have been signed out")
}

func TestNewSenderFallsBackToLogSender(t *testing.T) {
	s := NewSender(Config{Host: "smtp.example.com", Port: "587"})
	_, ok := s.(*LogSender)
	require.True(t, ok)
}
