package fetch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// DeviceResult is one device's outcome within a tick: either Raw text to
// hand to the Parser, or Err to record as a CollectionError (spec.md
// §4.2 step 3).
type DeviceResult struct {
	Target DeviceTarget
	Raw    string
	Err    error
}

// DefaultConcurrency is the semaphore bound on in-flight requests per tick
// (spec.md §4.2/§5).
const DefaultConcurrency = 10

// Run executes f against every target, respecting BatchMode: PerDevice
// fetchers run concurrently under a semaphore of size concurrency; Bulk
// fetchers issue exactly one request and fan the response back out per
// target. A single device's failure never aborts the others.
func Run(ctx context.Context, f Fetcher, targets []DeviceTarget, concurrency int64) []DeviceResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	switch f.BatchMode() {
	case Bulk:
		return runBulk(ctx, f.(BulkFetcher), targets)
	default:
		return runPerDevice(ctx, f.(PerDeviceFetcher), targets, concurrency)
	}
}

func runPerDevice(ctx context.Context, f PerDeviceFetcher, targets []DeviceTarget, concurrency int64) []DeviceResult {
	results := make([]DeviceResult, len(targets))
	sem := semaphore.NewWeighted(concurrency)
	var wg sync.WaitGroup

	for i, target := range targets {
		i, target := i, target
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = DeviceResult{Target: target, Err: err}
				return
			}
			defer sem.Release(1)

			raw, err := f.FetchOne(ctx, target)
			results[i] = DeviceResult{Target: target, Raw: raw, Err: err}
		}()
	}
	wg.Wait()
	return results
}

func runBulk(ctx context.Context, f BulkFetcher, targets []DeviceTarget) []DeviceResult {
	byIP, err := f.FetchBulk(ctx, targets)
	results := make([]DeviceResult, len(targets))
	for i, target := range targets {
		if err != nil {
			results[i] = DeviceResult{Target: target, Err: err}
			continue
		}
		raw, ok := byIP[target.IP]
		if !ok {
			results[i] = DeviceResult{Target: target, Err: fmt.Errorf("no response for %s in bulk result", target.IP)}
			continue
		}
		results[i] = DeviceResult{Target: target, Raw: raw}
	}
	return results
}
