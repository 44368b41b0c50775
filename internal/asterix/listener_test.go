package asterix

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probeReport struct {
	N int
}

func TestCategoryHandler_FanOut_DeliversToLiveListeners(t *testing.T) {
	diag := &Diagnostics{}
	h := NewCategoryHandler[probeReport](diag)

	var got []int
	l := &Listener[probeReport]{OnReportDecoded: func(r *probeReport) {
		got = append(got, r.N)
	}}
	h.AddListener(l)

	h.FanOut(&probeReport{N: 1})
	h.FanOut(&probeReport{N: 2})

	assert.Equal(t, []int{1, 2}, got)
}

func TestCategoryHandler_FanOut_MultipleListeners(t *testing.T) {
	diag := &Diagnostics{}
	h := NewCategoryHandler[probeReport](diag)

	var a, b int
	l1 := &Listener[probeReport]{OnReportDecoded: func(r *probeReport) { a = r.N }}
	l2 := &Listener[probeReport]{OnReportDecoded: func(r *probeReport) { b = r.N }}
	h.AddListener(l1)
	h.AddListener(l2)

	h.FanOut(&probeReport{N: 7})

	assert.Equal(t, 7, a)
	assert.Equal(t, 7, b)
}

func TestCategoryHandler_RemoveListener(t *testing.T) {
	diag := &Diagnostics{}
	h := NewCategoryHandler[probeReport](diag)

	calls := 0
	l := &Listener[probeReport]{OnReportDecoded: func(r *probeReport) { calls++ }}
	h.AddListener(l)
	h.FanOut(&probeReport{N: 1})
	require.Equal(t, 1, calls)

	h.RemoveListener(l)
	h.FanOut(&probeReport{N: 2})
	assert.Equal(t, 1, calls)
}

func TestCategoryHandler_AddListener_DuplicateIsNoOp(t *testing.T) {
	diag := &Diagnostics{}
	h := NewCategoryHandler[probeReport](diag)

	calls := 0
	l := &Listener[probeReport]{OnReportDecoded: func(r *probeReport) { calls++ }}
	h.AddListener(l)
	h.AddListener(l)

	h.FanOut(&probeReport{N: 1})
	assert.Equal(t, 1, calls)
}

func TestCategoryHandler_FanOut_ExpiredListenerDoesNotPanic(t *testing.T) {
	diag := &Diagnostics{}
	h := NewCategoryHandler[probeReport](diag)

	func() {
		l := &Listener[probeReport]{OnReportDecoded: func(r *probeReport) {}}
		h.AddListener(l)
	}()

	// Drop the only strong reference and force a collection, so the
	// registry may now hold an expired weak pointer with no explicit
	// Remove call having been made.
	runtime.GC()
	runtime.GC()

	// FanOut must not panic even though the listener may have expired.
	h.FanOut(&probeReport{N: 1})
}
