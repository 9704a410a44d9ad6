package repo

import (
	"testing"
	"time"
)

func TestSetQueryTimeout(t *testing.T) {
	defaultTimeout := queryTimeout
	t.Cleanup(func() { queryTimeout = defaultTimeout })

	SetQueryTimeout(10 * time.Second)
	if queryTimeout != 10*time.Second {
		t.Errorf("queryTimeout = %v, want 10s", queryTimeout)
	}

	// Zero and negative values must not disable the deadline.
	SetQueryTimeout(0)
	if queryTimeout != 10*time.Second {
		t.Errorf("queryTimeout changed on zero value: %v", queryTimeout)
	}
	SetQueryTimeout(-time.Second)
	if queryTimeout != 10*time.Second {
		t.Errorf("queryTimeout changed on negative value: %v", queryTimeout)
	}
}
