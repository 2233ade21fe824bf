package client

import "errors"

var (
	// ErrUnavailable means the request could not be completed: DNS, connect,
	// TLS, timeout, or a broken body stream.
	ErrUnavailable = errors.New("server unavailable")
	// ErrMalformedResponse means the server answered with something that is
	// not a JSON document.
	ErrMalformedResponse = errors.New("malformed response")
)
