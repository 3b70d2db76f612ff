// Package authsdk provides the request/response types for the nimbus auth
// service's HTTP API, the APIError type shared between server handlers and
// clients, and a small typed client for driving the API from Go code.
//
// The server's HTTP handlers encode and decode these same types, so the SDK
// is always in lockstep with the wire format.
//
// Basic usage:
//
//	client := authsdk.NewClient("http://localhost:8080")
//
//	_, err := client.Signup(ctx, authsdk.SignupRequest{
//		Name:            "Alice",
//		Email:           "alice@example.com",
//		Password:        "secret1",
//		ConfirmPassword: "secret1",
//	})
//
//	auth, err := client.VerifyOtp(ctx, authsdk.VerifyOtpRequest{
//		Email: "alice@example.com",
//		Otp:   "123456",
//	})
//
// Errors returned by the API are *APIError values and can be inspected for
// the HTTP status, message, and machine-readable reason:
//
//	var apiErr *authsdk.APIError
//	if errors.As(err, &apiErr) && apiErr.Reason == authsdk.ReasonTokenExpired {
//		// refresh and retry
//	}
package authsdk
