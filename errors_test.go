package hywire

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelHelpers(t *testing.T) {
	wrapped := fmt.Errorf("%w: %q", ErrUnknownComponent, "missing")
	if !IsUnknownComponent(wrapped) {
		t.Error("IsUnknownComponent(wrapped) = false, want true")
	}
	if IsUnknownComponent(ErrNilRender) {
		t.Error("IsUnknownComponent(ErrNilRender) = true, want false")
	}

	wrapped = fmt.Errorf("%w: %q", ErrNilRender, "broken")
	if !IsNilRender(wrapped) {
		t.Error("IsNilRender(wrapped) = false, want true")
	}
	if IsNilRender(errors.New("other")) {
		t.Error("IsNilRender(other) = true, want false")
	}
}
