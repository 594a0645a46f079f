package client

import (
	"fmt"
	"net/http"
)

// Kind is the user-facing category of a failed submission
type Kind string

const (
	KindNetwork     Kind = "network"
	KindInvalid     Kind = "invalid"
	KindRateLimited Kind = "rate_limited"
	KindUnavailable Kind = "unavailable"
	KindServer      Kind = "server"
	KindUnknown     Kind = "unknown"
)

var kindMessages = map[Kind]string{
	KindNetwork:     "Network error. Please check your connection and try again.",
	KindInvalid:     "Invalid data. Please check your information and try again.",
	KindRateLimited: "Too many requests. Please wait a moment and try again.",
	KindUnavailable: "Service temporarily unavailable. Please try again later.",
	KindServer:      "Server error. Please try again later.",
	KindUnknown:     "Something went wrong. Please try again.",
}

// Message returns the fixed text shown to the user for k
func (k Kind) Message() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return kindMessages[KindUnknown]
}

// KindForStatus maps a non-2xx HTTP status to its failure kind
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusBadRequest:
		return KindInvalid
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusServiceUnavailable:
		return KindUnavailable
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// SubmitError is a failed submission. Message is safe to show to the user;
// ServerMessage and FieldErrors carry what the server said, when anything.
type SubmitError struct {
	Kind          Kind
	Status        int
	Message       string
	ServerMessage string
	FieldErrors   map[string]string
	Err           error
}

func newStatusError(status int, serverMessage string, fieldErrors map[string]string) *SubmitError {
	kind := KindForStatus(status)
	return &SubmitError{
		Kind:          kind,
		Status:        status,
		Message:       kind.Message(),
		ServerMessage: serverMessage,
		FieldErrors:   fieldErrors,
	}
}

func newNetworkError(err error) *SubmitError {
	return &SubmitError{
		Kind:    KindNetwork,
		Message: KindNetwork.Message(),
		Err:     err,
	}
}

func (e *SubmitError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("submission failed (%s): %v", e.Kind, e.Err)
	case e.ServerMessage != "":
		return fmt.Sprintf("submission failed (%s, status %d): %s", e.Kind, e.Status, e.ServerMessage)
	default:
		return fmt.Sprintf("submission failed (%s, status %d)", e.Kind, e.Status)
	}
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
