package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
)

// Subjects per flow step.
const (
	subjectSignupOtp       = "Verify Your Email - Nimbus OTP"
	subjectSignupResend    = "Your New OTP - Nimbus Email Verification"
	subjectResetOtp        = "Reset Your Password - Nimbus OTP"
	subjectResetResend     = "Your New OTP - Nimbus Password Reset"
	subjectPasswordChanged = "Password Changed Successfully - Nimbus"
)

var otpTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f5f5f5;">
  <table width="100%" border="0" cellspacing="0" cellpadding="0" bgcolor="#f5f5f5">
    <tr><td align="center" style="padding:40px 0;">
      <table width="600" border="0" cellspacing="0" cellpadding="0" bgcolor="#ffffff" style="border-radius:12px;overflow:hidden;">
        <tr><td height="6" bgcolor="#4F46E5" style="line-height:6px;font-size:6px;">&nbsp;</td></tr>
        <tr><td style="padding:35px 40px;"><h1 style="margin:0;color:#4F46E5;font-size:22px;">Nimbus</h1></td></tr>
        <tr><td style="padding:0 40px 40px 40px;">
          <h2 style="color:#111111;margin:0 0 10px 0;">{{.Title}}</h2>
          <p style="color:#444444;">Your verification code is below. It expires in {{.ExpiresMinutes}} minutes.</p>
          <table width="100%" bgcolor="#fafafa" style="border:2px dashed #4F46E5;border-radius:8px;">
            <tr><td align="center" style="padding:25px;">
              <p style="font-size:40px;font-weight:bold;color:#4F46E5;letter-spacing:10px;margin:0;">{{.Code}}</p>
            </td></tr>
          </table>
          <p style="margin-top:25px;color:#999999;font-size:13px;">If you did not request this, please ignore this email.</p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

var passwordChangedTemplate = template.Must(template.New("changed").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f5f5f5;">
  <table width="100%" border="0" cellspacing="0" cellpadding="0" bgcolor="#f5f5f5">
    <tr><td align="center" style="padding:40px 0;">
      <table width="600" border="0" cellspacing="0" cellpadding="0" bgcolor="#ffffff" style="border-radius:12px;overflow:hidden;">
        <tr><td height="6" bgcolor="#4F46E5" style="line-height:6px;font-size:6px;">&nbsp;</td></tr>
        <tr><td style="padding:35px 40px;"><h1 style="margin:0;color:#4F46E5;font-size:22px;">Nimbus</h1></td></tr>
        <tr><td style="padding:0 40px 40px 40px;">
          <h2 style="color:#111111;margin:0 0 10px 0;">Password Changed</h2>
          <p style="color:#444444;">Hello {{.Name}}, the password for your account was just changed and all your sessions have been signed out.</p>
          <p style="color:#444444;">If this was you, no action is needed. If not, reset your password immediately.</p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

type otpTemplateData struct {
	Title          string
	Code           string
	ExpiresMinutes int
}

// OtpMessage builds the email carrying a freshly issued code. The resend
// variants use distinct subjects so a user can tell a reissue apart.
func OtpMessage(to, code string, purpose domain.OtpPurpose, resend bool) (Message, error) {
	var subject, title string
	switch {
	case purpose == domain.OtpPurposeSignup && !resend:
		subject, title = subjectSignupOtp, "Verify your email"
	case purpose == domain.OtpPurposeSignup && resend:
		subject, title = subjectSignupResend, "Your new verification code"
	case purpose == domain.OtpPurposePasswordReset && !resend:
		subject, title = subjectResetOtp, "Reset your password"
	default:
		subject, title = subjectResetResend, "Your new reset code"
	}

	var buf bytes.Buffer
	err := otpTemplate.Execute(&buf, otpTemplateData{
		Title:          title,
		Code:           code,
		ExpiresMinutes: int(domain.OtpTTL.Minutes()),
	})
	if err != nil {
		return Message{}, fmt.Errorf("render otp email: %w", err)
	}

	return Message{To: to, Subject: subject, HTMLBody: buf.String()}, nil
}

// PasswordChangedMessage builds the security notification sent after a
// completed password reset.
func PasswordChangedMessage(to, name string) (Message, error) {
	var buf bytes.Buffer
	err := passwordChangedTemplate.Execute(&buf, struct{ Name string }{Name: name})
	if err != nil {
		return Message{}, fmt.Errorf("render password changed email: %w", err)
	}

	return Message{To: to, Subject: subjectPasswordChanged, HTMLBody: buf.String()}, nil
}
