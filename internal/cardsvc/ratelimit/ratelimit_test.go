package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowOncePerWindow(t *testing.T) {
	now := time.Now()
	l := New(60 * time.Second)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))

	// just inside the window
	now = now.Add(59 * time.Second)
	assert.False(t, l.Allow("1.2.3.4"))

	// window elapsed
	now = now.Add(time.Second)
	assert.True(t, l.Allow("1.2.3.4"))
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(60 * time.Second)

	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"))
	assert.False(t, l.Allow("1.2.3.4"))
}

func TestRejectionDoesNotExtendWindow(t *testing.T) {
	now := time.Now()
	l := New(60 * time.Second)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("k"))

	// rejected attempts must not refresh the stamp
	now = now.Add(30 * time.Second)
	assert.False(t, l.Allow("k"))
	now = now.Add(31 * time.Second)
	assert.True(t, l.Allow("k"))
}
