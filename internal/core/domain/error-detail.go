package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Generic message shown for transport failures and undecodable responses.
const NetworkProblemMessage = "network problem, try again later"

type DetailKind int

const (
	DetailNone DetailKind = iota
	DetailString
	DetailValidationList
)

type ValidationIssue struct {
	Msg  string        `json:"msg"`
	Loc  []interface{} `json:"loc,omitempty"`
	Type string        `json:"type,omitempty"`
}

// ErrorDetail is the `detail` field of a backend error payload: either a plain
// string or a list of validation issues.
type ErrorDetail struct {
	Kind   DetailKind
	Text   string
	Issues []ValidationIssue
}

func (d *ErrorDetail) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*d = ErrorDetail{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = ErrorDetail{Kind: DetailString, Text: s}
		return nil
	case '[':
		var issues []ValidationIssue
		if err := json.Unmarshal(b, &issues); err != nil {
			return err
		}
		*d = ErrorDetail{Kind: DetailValidationList, Issues: issues}
		return nil
	default:
		// Unknown shapes are kept verbatim so nothing the server said is lost.
		*d = ErrorDetail{Kind: DetailString, Text: string(b)}
		return nil
	}
}

// Message normalizes the detail into a single display string.
func (d ErrorDetail) Message() string {
	switch d.Kind {
	case DetailString:
		return strings.TrimSpace(d.Text)
	case DetailValidationList:
		msgs := make([]string, 0, len(d.Issues))
		for _, issue := range d.Issues {
			if m := strings.TrimSpace(issue.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	default:
		return ""
	}
}

// ServerError is a non-2xx backend response.
type ServerError struct {
	StatusCode int
	Detail     ErrorDetail
}

func (e *ServerError) Error() string {
	if msg := e.Detail.Message(); msg != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

func (e *ServerError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// DisplayMessage maps any error returned by the client into the one line shown
// to the user. fallback is used when the server gave no detail.
func DisplayMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var msgErr interface{ UserMessage() string }
	if errors.As(err, &msgErr) {
		return msgErr.UserMessage()
	}

	var srvErr *ServerError
	switch {
	case errors.As(err, &srvErr):
		if msg := srvErr.Detail.Message(); msg != "" {
			return msg
		}
		return fallback
	case errors.Is(err, ErrNotAuthenticated),
		errors.Is(err, ErrUnknownCategory):
		return err.Error()
	case errors.Is(err, ErrNetwork),
		errors.Is(err, ErrMalformedResponse),
		errors.Is(err, ErrProtocolViolation):
		return NetworkProblemMessage
	default:
		return fallback
	}
}
