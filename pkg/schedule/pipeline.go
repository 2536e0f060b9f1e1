package schedule

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/fetch"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/metrics"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/parse"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/store"
)

// CollectionPipeline wires one collection type's Fetcher, parser Registry
// lookup, and typed Store together, recording a CollectionError instead of
// aborting whenever a single device's fetch or parse fails (spec.md §4.2
// steps 3-4). One instance exists per collection_type; T is that type's
// parsed-item/row shape, mirroring pkg/store's Store[T] generic.
type CollectionPipeline[T any] struct {
	collectionType models.CollectionType
	fetcher        fetch.Fetcher
	parsers        *parse.Registry
	store          *store.Store[T]
	errors         *store.ErrorStore
	concurrency    int64
	logger         *zap.Logger
}

func NewCollectionPipeline[T any](
	collectionType models.CollectionType,
	fetcher fetch.Fetcher,
	parsers *parse.Registry,
	st *store.Store[T],
	errs *store.ErrorStore,
	concurrency int64,
	logger *zap.Logger,
) *CollectionPipeline[T] {
	if concurrency <= 0 {
		concurrency = fetch.DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectionPipeline[T]{
		collectionType: collectionType,
		fetcher:        fetcher,
		parsers:        parsers,
		store:          st,
		errors:         errs,
		concurrency:    concurrency,
		logger:         logger,
	}
}

func (p *CollectionPipeline[T]) Name() string { return string(p.collectionType) }

// RunForDevices fetches every target (bounded by the runner's semaphore),
// then parses and stores each device's result independently. Results are
// fanned out with errgroup purely for join semantics — no single device's
// error is allowed to cancel the others, so returned errors are always
// recorded via ErrorStore rather than propagated.
func (p *CollectionPipeline[T]) RunForDevices(ctx context.Context, maintenanceID string, targets []fetch.DeviceTarget) error {
	if len(targets) == 0 {
		return nil
	}
	start := time.Now()
	outcome := "ok"

	results := fetch.Run(ctx, p.fetcher, targets, p.concurrency)

	var g errgroup.Group
	for _, res := range results {
		res := res
		g.Go(func() error {
			p.handleResult(ctx, maintenanceID, res)
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		outcome = "error"
	}
	metrics.CollectionDuration.WithLabelValues(string(p.collectionType), outcome).Observe(time.Since(start).Seconds())
	return err
}

func (p *CollectionPipeline[T]) handleResult(ctx context.Context, maintenanceID string, res fetch.DeviceResult) {
	if res.Err != nil {
		p.recordError(ctx, maintenanceID, res.Target.Hostname, res.Err)
		return
	}

	parser, err := p.parsers.Get(p.collectionType, res.Target.VendorOS)
	if err != nil {
		p.recordError(ctx, maintenanceID, res.Target.Hostname, err)
		return
	}

	rawItems, err := parser.Parse(res.Raw)
	if err != nil {
		p.recordError(ctx, maintenanceID, res.Target.Hostname, fmt.Errorf("parsing %s: %w", p.collectionType, err))
		return
	}

	items := make([]T, 0, len(rawItems))
	for _, raw := range rawItems {
		typed, ok := raw.(T)
		if !ok {
			p.recordError(ctx, maintenanceID, res.Target.Hostname,
				fmt.Errorf("parser for %s returned unexpected item type %T", p.collectionType, raw))
			return
		}
		items = append(items, typed)
	}

	saveResult, err := p.store.SaveBatch(ctx, maintenanceID, res.Target.Hostname, res.Raw, items)
	if err != nil {
		p.recordError(ctx, maintenanceID, res.Target.Hostname, fmt.Errorf("saving %s: %w", p.collectionType, err))
		return
	}
	changed := "false"
	if saveResult.Changed {
		changed = "true"
	}
	metrics.BatchChangeRate.WithLabelValues(string(p.collectionType), changed).Inc()
}

func (p *CollectionPipeline[T]) recordError(ctx context.Context, maintenanceID, switchHostname string, cause error) {
	if err := p.errors.RecordError(ctx, maintenanceID, p.collectionType, switchHostname, cause.Error()); err != nil {
		p.logger.Error("failed to record collection error",
			zap.String("maintenance_id", maintenanceID),
			zap.String("collection_type", string(p.collectionType)),
			zap.String("switch_hostname", switchHostname),
			zap.Error(err))
	}
}
