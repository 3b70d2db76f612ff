// Package mail delivers the transactional emails of the auth flows: OTP
// codes and the password-changed security notification.
package mail

import "context"

// Message is a single outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender delivers messages. The orchestrator awaits delivery; a send failure
// fails the request, since the user needs the code to proceed.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
