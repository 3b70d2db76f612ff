package http

import (
	"github.com/nimbuslabs/nimbus/internal/auth/domain"
	"github.com/nimbuslabs/nimbus/pkg/authsdk"
)

func toUserInfo(u domain.User) authsdk.UserInfo {
	return authsdk.UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func otpPending(message, email string) authsdk.OtpPendingResponse {
	return authsdk.OtpPendingResponse{
		Message:     message,
		Email:       email,
		ExpiresIn:   int(domain.OtpTTL.Seconds()),
		ResendAfter: int(domain.OtpResendCooldown.Seconds()),
	}
}
