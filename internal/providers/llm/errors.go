package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type Kind int

const (
	KindOther Kind = iota
	KindQuota
	KindInvalidCredential
	KindModelUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindQuota:
		return "quota_exceeded"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindModelUnavailable:
		return "model_unavailable"
	default:
		return "other"
	}
}

// Error is a classified provider failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("llm %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Classify wraps err with its Kind. Structured API codes win; otherwise the
// error text is scanned for status markers.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var le *Error
	if errors.As(err, &le) {
		return err
	}
	return &Error{Kind: kindOf(err), Err: err}
}

func kindOf(err error) Kind {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if k, ok := kindFromCode(apiErr.Code); ok {
			return k
		}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		if k, ok := kindFromCode(apiErrPtr.Code); ok {
			return k
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindOther
	}

	msg := strings.ToUpper(err.Error())
	switch {
	case strings.Contains(msg, "429"), strings.Contains(msg, "RESOURCEEXHAUSTED"), strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return KindQuota
	case strings.Contains(msg, "400"), strings.Contains(msg, "INVALID"):
		return KindInvalidCredential
	case strings.Contains(msg, "404"), strings.Contains(msg, "NOTFOUND"), strings.Contains(msg, "NOT_FOUND"):
		return KindModelUnavailable
	}
	return KindOther
}

func kindFromCode(code int) (Kind, bool) {
	switch code {
	case 429:
		return KindQuota, true
	case 400, 401, 403:
		return KindInvalidCredential, true
	case 404:
		return KindModelUnavailable, true
	case 0:
		return KindOther, false
	}
	return KindOther, true
}

// UserMessage renders the message shown to the end user for a provider error.
func UserMessage(err error, model string) string {
	if model == "" {
		model = DefaultModel
	}
	kind := KindOther
	var le *Error
	if errors.As(err, &le) {
		kind = le.Kind
	} else if err != nil {
		kind = kindOf(err)
	}

	switch kind {
	case KindQuota:
		return "⚠️ API quota exceeded. Please try again later or add billing to your Google Cloud project."
	case KindInvalidCredential:
		return "⚠️ Invalid API key. Please check your .env file and ensure the key is valid."
	case KindModelUnavailable:
		return fmt.Sprintf("⚠️ Model not found. The %s model may not be available.", model)
	}

	msg := ""
	if err != nil {
		if le != nil && le.Err != nil {
			msg = le.Err.Error()
		} else {
			msg = err.Error()
		}
	}
	if r := []rune(msg); len(r) > 200 {
		msg = string(r[:200])
	}
	return "⚠️ API Error: " + msg
}
