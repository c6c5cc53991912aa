package worker

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(3)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		p.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	p.Stop()
	require.Equal(t, 5, count)
}

func TestPoolDefaultsToOneWorker(t *testing.T) {
	p := NewPool(0)
	done := make(chan struct{})
	p.Submit(func() { close(done) })
	<-done
	p.Stop()
}

func TestSubmitContext(t *testing.T) {
	p := NewPool(1)
	defer p.Stop()

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.SubmitContext(context.Background(), func() {
		close(started)
		<-release
	}))
	<-started

	// 唯一的 worker 忙碌中，已取消的 ctx 應立即返回
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.SubmitContext(ctx, func() { t.Error("must not run") })
	require.ErrorIs(t, err, context.Canceled)

	close(release)
	ran := make(chan struct{})
	require.NoError(t, p.SubmitContext(context.Background(), func() { close(ran) }))
	<-ran
}
