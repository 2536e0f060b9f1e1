package schedule

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeTask struct {
	keys []string

	mu        sync.Mutex
	calls     int
	seenKeys  map[string]int
	blockUnti chan struct{} // if non-nil, RunFor blocks until this is closed
	waitCtx   bool          // if true, RunFor blocks on ctx.Done() instead
}

func (t *fakeTask) Keys(ctx context.Context) ([]string, error) {
	return t.keys, nil
}

func (t *fakeTask) RunFor(ctx context.Context, key string) error {
	t.mu.Lock()
	t.calls++
	if t.seenKeys == nil {
		t.seenKeys = make(map[string]int)
	}
	t.seenKeys[key]++
	t.mu.Unlock()

	if t.waitCtx {
		<-ctx.Done()
		return ctx.Err()
	}
	if t.blockUnti != nil {
		<-t.blockUnti
	}
	return nil
}

func (t *fakeTask) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func TestScheduler_NonOverlapSkipsWhileRunning(t *testing.T) {
	task := &fakeTask{keys: []string{"m1"}, blockUnti: make(chan struct{})}
	sched := NewScheduler(nil, time.Second)
	sched.Register(Job{Name: "collect", Interval: 10 * time.Millisecond, Enabled: true}, task)

	ctx, cancel := context.WithCancel(context.Background())
	sched.Start(ctx)

	// Give several ticks time to fire while RunFor is still blocked.
	time.Sleep(80 * time.Millisecond)
	if got := task.callCount(); got != 1 {
		t.Fatalf("expected exactly one in-flight invocation while blocked, got %d", got)
	}

	close(task.blockUnti)
	time.Sleep(40 * time.Millisecond)
	if got := task.callCount(); got < 2 {
		t.Fatalf("expected a second invocation after unblocking, got %d", got)
	}

	cancel()
	if err := sched.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestScheduler_FansOutPerKey(t *testing.T) {
	task := &fakeTask{keys: []string{"m1", "m2", "m3"}}
	sched := NewScheduler(nil, time.Second)
	sched.Register(Job{Name: "collect", Interval: 10 * time.Millisecond, Enabled: true}, task)

	ctx, cancel := context.WithCancel(context.Background())
	sched.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()
	if err := sched.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	task.mu.Lock()
	defer task.mu.Unlock()
	for _, key := range task.keys {
		if task.seenKeys[key] == 0 {
			t.Fatalf("expected key %q to have been run at least once", key)
		}
	}
}

func TestScheduler_DisabledJobNeverFires(t *testing.T) {
	task := &fakeTask{keys: []string{"m1"}}
	sched := NewScheduler(nil, time.Second)
	sched.Register(Job{Name: "collect", Interval: 5 * time.Millisecond, Enabled: false}, task)

	ctx, cancel := context.WithCancel(context.Background())
	sched.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()
	if err := sched.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if got := task.callCount(); got != 0 {
		t.Fatalf("expected disabled job never to fire, got %d calls", got)
	}
}

func TestScheduler_ShutdownCancelsInFlightAfterGrace(t *testing.T) {
	task := &fakeTask{keys: []string{"m1"}, waitCtx: true}
	sched := NewScheduler(nil, 20*time.Millisecond)
	sched.Register(Job{Name: "collect", Interval: 5 * time.Millisecond, Enabled: true}, task)

	ctx, cancel := context.WithCancel(context.Background())
	sched.Start(ctx)
	time.Sleep(15 * time.Millisecond)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	if err := sched.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("expected shutdown to drain after grace period, got: %v", err)
	}
}
