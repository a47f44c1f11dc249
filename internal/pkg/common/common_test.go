package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestCustomErrorMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrInvalidImage.Wrap(errors.New("bad header")))

	if !errors.Is(wrapped, ErrInvalidImage) {
		t.Error("wrapped error should match its sentinel")
	}
	if errors.Is(wrapped, ErrInvalidImageSize) {
		t.Error("different code must not match")
	}
	ce := AsCustomError(wrapped)
	if ce == nil || ce.Status != http.StatusBadRequest {
		t.Fatalf("AsCustomError = %+v", ce)
	}
	if !strings.Contains(ce.Error(), "bad header") {
		t.Errorf("cause missing from %q", ce.Error())
	}
	if AsCustomError(errors.New("plain")) != nil {
		t.Error("plain error is not a CustomError")
	}
}

func TestRetryOnce(t *testing.T) {
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{"success", []error{nil}, 1, false},
		{"retried then ok", []error{errors.New("503"), nil}, 2, false},
		{"retried twice fails", []error{errors.New("503"), errors.New("503")}, 2, true},
		{"not retryable", []error{NoRetry(errors.New("400"))}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryOnce(context.Background(), func(context.Context) error {
				err := tt.errs[calls]
				calls++
				return err
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v", err)
			}
		})
	}
}

func TestRetryOnceStopsOnDoneContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_ = RetryOnce(ctx, func(context.Context) error {
		calls++
		cancel()
		return errors.New("slow")
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestNoRetryKeepsCause(t *testing.T) {
	sentinel := errors.New("quota")
	if !errors.Is(NoRetry(fmt.Errorf("wrap: %w", sentinel)), sentinel) {
		t.Error("cause lost")
	}
	if NoRetry(nil) != nil {
		t.Error("NoRetry(nil) should be nil")
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"Sure! Here you go: {\"a\":{\"b\":2}} enjoy", `{"a":{"b":2}}`, true},
		{"no json here", "", false},
		{"} backwards {", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractJSONObject(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ExtractJSONObject(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestQuoteJSONKeys(t *testing.T) {
	var v struct {
		Title string   `json:"title"`
		Steps []string `json:"steps"`
	}
	if err := ParseJSON(QuoteJSONKeys(`{title: "Dal", steps: ["rinse"]}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Title != "Dal" || len(v.Steps) != 1 {
		t.Errorf("got %+v", v)
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	var v map[string]int
	if err := DecodeJSON(strings.NewReader(`{"a":1} {"b":2}`), &v); err == nil {
		t.Error("trailing value should fail")
	}
	if err := ParseJSONBytes([]byte(" {\"a\":1}\n"), &v); err != nil || v["a"] != 1 {
		t.Errorf("v = %v, err = %v", v, err)
	}
}

func TestScrubDropsImagePayloads(t *testing.T) {
	got := scrub([]zap.Field{
		zap.String("image", "xxx"),
		zap.String("imageBase64", "xxx"),
		zap.String("image_data", "xxx"),
		zap.Bool("has_image", true),
		zap.String("request_id", "r1"),
	})
	if len(got) != 2 || got[0].Key != "has_image" || got[1].Key != "request_id" {
		t.Errorf("kept %v", got)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	} {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
