package llm

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"api 429", genai.APIError{Code: 429, Message: "quota"}, KindQuota},
		{"api 403", genai.APIError{Code: 403, Message: "denied"}, KindInvalidCredential},
		{"api 404", genai.APIError{Code: 404, Message: "no model"}, KindModelUnavailable},
		{"api 500", genai.APIError{Code: 500, Message: "boom"}, KindOther},
		{"text 429", errors.New("googleapi: Error 429: Too Many Requests"), KindQuota},
		{"text invalid", errors.New("API key not valid. Please pass a valid API key. [invalid_argument]"), KindInvalidCredential},
		{"grpc exhausted", errors.New("rpc error: code = ResourceExhausted desc = quota"), KindQuota},
		{"text 404", errors.New("models/foo is not found for API version v1beta, 404"), KindModelUnavailable},
		{"unknown", errors.New("connection reset by peer"), KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.err)
			var le *Error
			assert.True(t, errors.As(err, &le))
			assert.Equal(t, tt.want, le.Kind)
			assert.Equal(t, tt.err, le.Err)
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	first := Classify(errors.New("429"))
	assert.Same(t, first, Classify(first))
	assert.Nil(t, Classify(nil))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t,
		"⚠️ API quota exceeded. Please try again later or add billing to your Google Cloud project.",
		UserMessage(Classify(errors.New("status 429")), ""))
	assert.Equal(t,
		"⚠️ Invalid API key. Please check your .env file and ensure the key is valid.",
		UserMessage(&Error{Kind: KindInvalidCredential, Err: errors.New("x")}, ""))
	assert.Equal(t,
		"⚠️ Model not found. The gemini-2.5-flash model may not be available.",
		UserMessage(&Error{Kind: KindModelUnavailable, Err: errors.New("x")}, ""))

	long := strings.Repeat("a", 300)
	msg := UserMessage(Classify(fmt.Errorf("upstream: %s", long)), "")
	assert.True(t, strings.HasPrefix(msg, "⚠️ API Error: upstream: "))
	assert.Len(t, []rune(strings.TrimPrefix(msg, "⚠️ API Error: ")), 200)
}
