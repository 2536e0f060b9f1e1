package schedule

import "context"

// Task is one schedulable unit of work. Collection pipelines fan out over
// every active maintenance (spec.md §4.4: "a job fires for every active
// maintenance found at the moment of firing"); the retention sweeper,
// case-state sweeper, and change-flag refresher run globally and report a
// single key so they still fit the scheduler's non-overlap bookkeeping.
type Task interface {
	// Keys lists the fan-out keys for one tick. Collection tasks return
	// active maintenance IDs; global sweepers return a single "" key.
	Keys(ctx context.Context) ([]string, error)
	// RunFor executes the task for one key. The scheduler guarantees that
	// (job name, key) never has two invocations in flight at once.
	RunFor(ctx context.Context, key string) error
}

// MaintenanceFanOutTask adapts a CollectionPipeline into a Task by sourcing
// its per-tick maintenance list and device targets from a DeviceRepo.
type MaintenanceFanOutTask[T any] struct {
	devices  *DeviceRepo
	pipeline *CollectionPipeline[T]
}

func NewMaintenanceFanOutTask[T any](devices *DeviceRepo, pipeline *CollectionPipeline[T]) *MaintenanceFanOutTask[T] {
	return &MaintenanceFanOutTask[T]{devices: devices, pipeline: pipeline}
}

func (t *MaintenanceFanOutTask[T]) Keys(ctx context.Context) ([]string, error) {
	return t.devices.ActiveMaintenanceIDs(ctx)
}

func (t *MaintenanceFanOutTask[T]) RunFor(ctx context.Context, maintenanceID string) error {
	targets, err := t.devices.ActiveDeviceTargets(ctx, maintenanceID)
	if err != nil {
		return err
	}
	return t.pipeline.RunForDevices(ctx, maintenanceID, targets)
}

// GlobalTask adapts a plain no-argument function (a sweeper) into a Task
// that always reports the single key "".
type GlobalTask struct {
	fn func(ctx context.Context) error
}

func NewGlobalTask(fn func(ctx context.Context) error) *GlobalTask {
	return &GlobalTask{fn: fn}
}

func (t *GlobalTask) Keys(ctx context.Context) ([]string, error) {
	return []string{""}, nil
}

func (t *GlobalTask) RunFor(ctx context.Context, _ string) error {
	return t.fn(ctx)
}
