package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	KindNetwork      Kind = "network"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindServer       Kind = "server"
	KindDecode       Kind = "decode"
)

// Error is returned by every client operation that did not succeed.
// Message carries the text the backend sent, if any.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	default:
		return KindServer
	}
}

const maxPlainMessage = 200

// serverMessage extracts msg, message or error from a JSON body and falls
// back to a short plain-text body.
func serverMessage(body []byte) string {
	var fields struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &fields); err == nil {
		switch {
		case fields.Msg != "":
			return fields.Msg
		case fields.Message != "":
			return fields.Message
		default:
			return fields.Error
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" || len(text) > maxPlainMessage || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}
