package errors

import (
	"fmt"
	"testing"
)

func TestClassifyHTTPError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		want   ErrorCategory
	}{
		{400, Irrecoverable},
		{401, Irrecoverable},
		{404, Irrecoverable},
		{408, Recoverable},
		{429, Recoverable},
		{500, Recoverable},
		{503, Recoverable},
		{302, Recoverable},
	}
	for _, c := range cases {
		got := ClassifyHTTPError(c.status, "", fmt.Errorf("status %d", c.status))
		if got.Category != c.want {
			t.Fatalf("status %d: got %s, want %s", c.status, got.Category, c.want)
		}
	}
}

func TestIsIrrecoverable(t *testing.T) {
	t.Parallel()
	if !IsIrrecoverable(NewHTTPError(404, "", "get document")) {
		t.Fatal("404 should be irrecoverable")
	}
	if IsIrrecoverable(NewNetworkError("list documents", fmt.Errorf("conn reset"))) {
		t.Fatal("network errors should be recoverable")
	}
	if IsIrrecoverable(fmt.Errorf("plain")) {
		t.Fatal("unclassified errors are not irrecoverable")
	}
}
