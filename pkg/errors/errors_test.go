package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingSupply, "no supply blocks in network")

	if err.Code != ErrCodeMissingSupply {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingSupply)
	}
	if !strings.Contains(err.Error(), "MISSING_SUPPLY") {
		t.Errorf("Error() should contain code: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "no supply blocks") {
		t.Errorf("Error() should contain message: %s", err.Error())
	}
}

func TestNewFormatting(t *testing.T) {
	err := New(ErrCodeMissingEquipment, "conductor %q (id %d) has no cable assigned", "feeder", 7)
	want := `conductor "feeder" (id 7) has no cable assigned`
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("read failed")
	err := Wrap(ErrCodeInvalidNetwork, cause, "load network.json")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "read failed") {
		t.Errorf("Error() should contain cause: %s", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeVoltageMismatch, "transformer T1 fed with 48V")

	if !Is(err, ErrCodeVoltageMismatch) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeCatalogExhausted) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeVoltageMismatch) {
		t.Error("Is should not match a plain error")
	}
}

func TestIsUnwrapsChain(t *testing.T) {
	inner := New(ErrCodeCatalogExhausted, "no conductor within 1.25 V/(A km)")
	outer := fmt.Errorf("calculate: %w", inner)

	if !Is(outer, ErrCodeCatalogExhausted) {
		t.Error("Is should unwrap wrapped errors")
	}
	if GetCode(outer) != ErrCodeCatalogExhausted {
		t.Errorf("GetCode = %v, want %v", GetCode(outer), ErrCodeCatalogExhausted)
	}
}

func TestGetCodePlainError(t *testing.T) {
	if code := GetCode(fmt.Errorf("plain")); code != "" {
		t.Errorf("GetCode(plain) = %q, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeTopologyViolation, "supplies 1 and 4 share block 12")
	if got := UserMessage(err); got != "supplies 1 and 4 share block 12" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := fmt.Errorf("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestIsModelingError(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeMissingSupply, true},
		{ErrCodeMissingEquipment, true},
		{ErrCodeTopologyViolation, true},
		{ErrCodeVoltageMismatch, true},
		{ErrCodeCatalogExhausted, true},
		{ErrCodeInvalidInput, false},
		{ErrCodeNotFound, false},
		{ErrCodeInternal, false},
	}

	for _, tt := range tests {
		err := New(tt.code, "x")
		if got := IsModelingError(err); got != tt.want {
			t.Errorf("IsModelingError(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}

	if IsModelingError(fmt.Errorf("plain")) {
		t.Error("plain errors are not modeling errors")
	}
}
