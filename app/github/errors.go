package github

import (
	"fmt"
	"strings"
)

// TransportError covers everything that prevented a well-formed GraphQL
// envelope from coming back: connection failures, non-2xx responses,
// undecodable payloads.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("github: transport error: HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("github: transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is a well-formed response whose envelope carries a GraphQL
// error list. Treated as fatal for the current run.
type ProtocolError struct {
	Messages []string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("github: protocol error: %s", strings.Join(e.Messages, "; "))
}
