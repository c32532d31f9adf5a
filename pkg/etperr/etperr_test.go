package etperr

import (
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "schema error",
			code:    "E100",
			wantMsg: "No schema registered for message",
			wantCat: CategorySchema,
		},
		{
			name:    "transport error",
			code:    "E200",
			wantMsg: "WebSocket transport failed",
			wantCat: CategoryTransport,
		},
		{
			name:    "protocol error",
			code:    "E301",
			wantMsg: "Unsupported websocket message received",
			wantCat: CategoryProtocol,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
		})
	}
}

func TestEtpError_Error(t *testing.T) {
	err := New("E100").WithDetail("(99, 1)")
	if got, want := err.Error(), "E100: No schema registered for message: (99, 1)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := Newf(CategoryConfig, "bad value %d", 3)
	if got := plain.Error(); got != "bad value 3" {
		t.Errorf("Error() = %q", got)
	}
}

func TestEtpError_IsByCode(t *testing.T) {
	err := New("E100").WithDetailf("no schema for %v", "(99, 1)")
	wrapped := fmt.Errorf("send: %w", err)

	if !Is(wrapped, ErrNoSchema) {
		t.Error("wrapped E100 should match ErrNoSchema")
	}
	if Is(wrapped, ErrDecode) {
		t.Error("E100 should not match ErrDecode")
	}
}

func TestEtpError_Wrap(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := New("E200").Wrap(cause)

	if !Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("Error() = %q, should mention cause", err.Error())
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		err  error
		want Category
	}{
		{New("E101"), CategorySchema},
		{fmt.Errorf("x: %w", New("E200")), CategoryTransport},
		{NewProtocolException(5, "nope"), CategoryProtocol},
		{fmt.Errorf("plain"), ""},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.err); got != tt.want {
			t.Errorf("CategoryOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestProtocolException_Error(t *testing.T) {
	pe := NewProtocolException(245, "some Error Message")
	if got, want := pe.Error(), "E300: ProtocolException: 245, some Error Message"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	batch := &ProtocolException{
		Errors: map[string]ErrorDetail{
			"b": {Code: 11, Message: "not found"},
			"a": {Code: 12, Message: "denied"},
		},
	}
	if got := batch.Error(); !strings.Contains(got, "[a=12 denied; b=11 not found]") {
		t.Errorf("Error() = %q, want sorted per-item errors", got)
	}
}

func TestEmptyProtocolException(t *testing.T) {
	pe := NewEmptyProtocolException()
	if !pe.IsEmpty() {
		t.Error("IsEmpty() = false")
	}
	if pe.Message != EmptyExceptionMessage {
		t.Errorf("Message = %q", pe.Message)
	}

	var target *ProtocolException
	if !As(fmt.Errorf("open: %w", pe), &target) {
		t.Fatal("As should find the exception")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E400").WithDetail("missing scheme")
	if got, want := err.FormatCompact(), "E400: Invalid endpoint URL (missing scheme)"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestSentinelsMatchRegistry(t *testing.T) {
	sentinels := []*EtpError{
		ErrNoSchema, ErrEncode, ErrDecode, ErrCatalog, ErrTransport,
		ErrCompression, ErrProtocolException, ErrUnsupportedMessage, ErrURL, ErrConfig,
	}
	for _, sentinel := range sentinels {
		tmpl, ok := registry[sentinel.Code]
		if !ok {
			t.Errorf("%s is not registered", sentinel.Code)
			continue
		}
		if tmpl.Category != sentinel.Category || tmpl.Message != sentinel.Message {
			t.Errorf("%s sentinel = %q/%q, registry = %q/%q", sentinel.Code,
				sentinel.Category, sentinel.Message, tmpl.Category, tmpl.Message)
		}
		if !Is(New(sentinel.Code), sentinel) {
			t.Errorf("New(%q) does not match its sentinel", sentinel.Code)
		}
	}
}

func TestProtocolException_Is(t *testing.T) {
	wrapped := fmt.Errorf("handshake: %w", NewEmptyProtocolException())
	if !Is(wrapped, ErrEmptyException) {
		t.Error("empty exception should match ErrEmptyException")
	}
	if !Is(wrapped, ErrProtocolException) {
		t.Error("empty exception should match ErrProtocolException")
	}

	pe := NewProtocolException(4, "invalid argument")
	if Is(pe, ErrEmptyException) {
		t.Error("non-empty exception matched ErrEmptyException")
	}
	if Is(pe, ErrUnsupportedMessage) {
		t.Error("exception matched an unrelated code")
	}
}
