package rx_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/minrx/minrx-go/rx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestWhereSelect(t *testing.T) {
	even := rx.Where(rx.MustRange(1, 4, rx.Immediate()), func(n int) bool {
		return n%2 == 0
	})
	scaled := rx.Select(even, func(n int) int {
		return n * 10
	})
	got := record(scaled)
	assert.Equal(t, []int{20, 40}, values(got))
	assert.Equal(t, rx.KindCompleted, got[len(got)-1].Kind())

	got = record(rx.Where(rx.MustRange(1, 4, rx.Immediate()), func(int) bool {
		return false
	}))
	require.Len(t, got, 1)
	assert.Equal(t, rx.KindCompleted, got[0].Kind())
}

func TestBind_Flatten(t *testing.T) {
	p := rx.Bind(rx.MustRange(1, 3, rx.Immediate()), func(n int) rx.Producer[int] {
		return rx.Repeat(n, n, rx.Immediate())
	})
	got := record(p)
	assert.Equal(t, []int{1, 2, 2, 3, 3, 3}, values(got))
	require.Len(t, got, 7)
	for i, o := range got[:6] {
		idx, ok := o.Index()
		assert.True(t, ok)
		assert.Equal(t, i, idx, "indices keep increasing across inner sequences")
	}
	assert.Equal(t, rx.CompletedAt[int](6), got[6])
}

func TestBind_WaitsForInner(t *testing.T) {
	s := rx.NewWorker()
	defer s.Close()
	p := rx.Bind(rx.MustRange(0, 10, rx.Immediate()), func(n int) rx.Producer[int] {
		return rx.MustRange(n*10, 3, s)
	})
	vs, err := await(p, 3*time.Second)
	require.NoError(t, err)
	assert.Len(t, vs, 30, "completed only after every inner sequence")
	sort.Ints(vs)
	assert.Equal(t, []int{0, 1, 2}, vs[:3])
	assert.Equal(t, []int{90, 91, 92}, vs[27:])
}

func TestBind_InnerFailed(t *testing.T) {
	fakeErr := errors.New("fake error")
	p := rx.Bind(rx.MustRange(0, 3, rx.Immediate()), func(n int) rx.Producer[int] {
		if n == 1 {
			return rx.Throw[int](fakeErr, rx.Immediate())
		}
		return rx.Return(n, rx.Immediate())
	})
	assert.Equal(t, []rx.Outcome[int]{
		rx.NextAt(0, 0),
		rx.Failed[int](fakeErr),
	}, record(p), "nothing after the failure")
}

func TestBind_SourceFailed(t *testing.T) {
	fakeErr := errors.New("fake error")
	source := rx.Create(func(ctx context.Context, o rx.Observer[int]) rx.Disposer {
		o(rx.Next(1))
		o(rx.Failed[int](fakeErr))
		o(rx.Next(2))
		o(rx.Completed[int]())
		return rx.Nop
	})
	p := rx.Select(source, func(n int) int {
		return -n
	})
	assert.Equal(t, []rx.Outcome[int]{
		rx.NextAt(-1, 0),
		rx.Failed[int](fakeErr),
	}, record(p))
}

func TestBind_Dispose(t *testing.T) {
	s := rx.NewWorker()
	received := atomic.NewInt64(0)
	started := make(chan struct{})
	p := rx.Bind(rx.Return(0, rx.Immediate()), func(int) rx.Producer[int] {
		return rx.SubscribeOn(rx.Naturals[int](rx.Immediate()), s)
	})
	dispose := p(context.Background(), func(o rx.Outcome[int]) {
		if o.HasValue() && received.Inc() == 100 {
			close(started)
		}
		assert.False(t, o.IsTerminal())
	})
	<-started
	dispose()
	dispose()

	closed := make(chan struct{})
	go func() {
		_ = s.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(3 * time.Second):
		assert.Fail(t, "disposal did not reach the inner generator")
	}
}
