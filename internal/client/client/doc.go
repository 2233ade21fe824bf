// Package client is the transport layer between the onboarding client and
// the auth backend.
//
// # Overview
//
//  1. Transport: a generic JSON request function (method, path, optional
//     body, optional headers) returning the status code and the raw JSON body.
//  2. HTTPClient: the net/http implementation of Transport.
//  3. API: typed wrappers for the auth endpoints (send-otp, signup, login,
//     reset-password-token, reset-password).
//
// # Error Handling
//
// Transport failures are reported with sentinel errors matched via
// errors.Is: ErrUnavailable and ErrMalformedResponse. A non-2xx status is not
// an error at this layer; interpreting the reply is up to the caller.
//
// There is no retry and no timeout besides the configured per-request one.
package client
