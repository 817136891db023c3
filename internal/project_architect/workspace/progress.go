package workspace

import (
	"sync"
	"sync/atomic"
	"time"
)

// Rotator cycles through progress messages on a fixed period until stopped.
type Rotator struct {
	messages []string
	idx      atomic.Int64
	stop     chan struct{}
	once     sync.Once
	done     chan struct{}
}

// StartRotator begins the rotation. The caller must Stop it.
func StartRotator(messages []string, interval time.Duration) *Rotator {
	r := &Rotator{
		messages: messages,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if len(messages) < 2 || interval <= 0 {
		close(r.done)
		return r
	}

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.advance()
			}
		}
	}()
	return r
}

func (r *Rotator) advance() {
	n := int64(len(r.messages))
	for {
		cur := r.idx.Load()
		if r.idx.CompareAndSwap(cur, (cur+1)%n) {
			return
		}
	}
}

// Current returns the message being shown.
func (r *Rotator) Current() string {
	if r == nil || len(r.messages) == 0 {
		return ""
	}
	return r.messages[r.idx.Load()]
}

// Stop ends the rotation and waits for the ticker goroutine. Safe to call twice.
func (r *Rotator) Stop() {
	if r == nil {
		return
	}
	r.once.Do(func() { close(r.stop) })
	<-r.done
}
