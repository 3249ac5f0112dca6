package ssc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signalsfoundry/ssc-conjunctions/model"
)

var (
	// ErrTransport marks failures to reach the service at all.
	ErrTransport = errors.New("ssc: transport failure")
	// ErrDecode marks response bodies that are not the expected document.
	ErrDecode = errors.New("ssc: decode response")
	// ErrEncode marks request documents that could not be serialized.
	ErrEncode = errors.New("ssc: encode request")
	// ErrRemoteStatus marks non-2xx HTTP responses and, via CheckStatus,
	// result documents whose StatusCode is not Success.
	ErrRemoteStatus = errors.New("ssc: remote status")
)

// StatusError is returned for HTTP responses outside the 2xx range.
type StatusError struct {
	StatusCode int
	// Title is the XHTML page title when the service answered with one.
	Title string
	Body  []byte
}

func (e *StatusError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("ssc: HTTP %d: %s", e.StatusCode, e.Title)
	}
	return fmt.Sprintf("ssc: HTTP %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrRemoteStatus }

// Stage identifies which diagnostic dump failed.
type Stage string

const (
	StageRequest  Stage = "request"
	StageResponse Stage = "response"
)

// DiagnosticError reports a failure to write the request or response dump.
// The call's result is discarded; RemoteCompleted says whether the service
// had already answered.
type DiagnosticError struct {
	Stage           Stage
	RemoteCompleted bool
	Err             error
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("ssc: diagnostic %s dump failed (remote completed: %t): %v",
		e.Stage, e.RemoteCompleted, e.Err)
}

func (e *DiagnosticError) Unwrap() error { return e.Err }

// CheckStatus returns nil for a Success result and an ErrRemoteStatus error
// carrying the service's status text otherwise. Results are returned to
// callers regardless; failed results may still carry partial data.
func CheckStatus(s model.ResultStatus) error {
	if s.StatusCode.IsSuccess() {
		return nil
	}
	msg := string(s.StatusCode)
	if s.StatusSubCode != "" {
		msg += "/" + s.StatusSubCode
	}
	if len(s.StatusText) > 0 {
		msg += ": " + strings.Join(s.StatusText, "; ")
	}
	return fmt.Errorf("%w: %s", ErrRemoteStatus, msg)
}
