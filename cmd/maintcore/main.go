// Command maintcore is the process entry point: it wires the
// configuration, database pool, fetchers/parsers/stores, the scheduler's
// collection and case-engine jobs, the Case Engine and Read-Model
// services, and the HTTP API together, then runs until signalled to stop.
// There is no teacher cmd/* source in the retrieval pack (control-plane
// mains were filtered out of it), so the wiring order and graceful
// shutdown shape below follow the teacher's broader idiom of "construct
// leaf dependencies first, start servers last, stop them in reverse".
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coolguazitech/network-dashboard-sub002/internal/config"
	"github.com/coolguazitech/network-dashboard-sub002/internal/database"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/api"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/cases"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/fetch"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/indicators"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/maintenance"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/notify"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/parse"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/readmodel"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/retention"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/schedule"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/store"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/syslog"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(logger); err != nil {
		logger.Fatal("maintcore exited with error", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	configPath := os.Getenv("MAINTCORE_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxLifetime,
	}
	db, err := database.Connect(dbConfig, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db.DB); err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	defer rdb.Close()

	breakers := fetch.NewBreakers()
	fetchRegistry := buildFetchRegistry(cfg, breakers)

	parseRegistry := parse.NewRegistry()
	parse.RegisterAll(parseRegistry)

	errorStore := store.NewErrorStore(db)
	devices := schedule.NewDeviceRepo(db)
	scheduler := schedule.NewScheduler(logger, cfg.GracefulShutdown())

	transceiverStore := store.New[parse.TransceiverItem](db, models.CollectionTransceiver, "transceiver_records", store.TransceiverInserter)
	portChannelStore := store.New[parse.PortChannelItem](db, models.CollectionPortChannel, "port_channel_records", store.PortChannelInserter)
	neighborStore := store.New[parse.NeighborItem](db, models.CollectionNeighbor, "neighbor_records", store.NeighborInserter)
	interfaceErrorStore := store.New[parse.InterfaceErrorItem](db, models.CollectionInterfaceError, "interface_error_records", store.InterfaceErrorInserter)
	staticAclStore := store.New[parse.StaticAclItem](db, models.CollectionStaticAcl, "static_acl_records", store.StaticAclInserter)
	dynamicAclStore := store.New[parse.DynamicAclItem](db, models.CollectionDynamicAcl, "dynamic_acl_records", store.DynamicAclInserter)
	macTableStore := store.New[parse.MacTableItem](db, models.CollectionMacTable, "mac_table_records", store.MacTableInserter)
	fanStore := store.New[parse.FanItem](db, models.CollectionFan, "fan_records", store.FanInserter)
	powerStore := store.New[parse.PowerItem](db, models.CollectionPower, "power_records", store.PowerInserter)
	versionStore := store.New[parse.VersionItem](db, models.CollectionVersion, "version_records", store.VersionInserter)
	pingStore := store.New[parse.PingItem](db, models.CollectionPing, "ping_records", store.PingInserter)
	clientPingStore := store.New[parse.PingItem](db, models.CollectionClientPing, "ping_records", store.PingInserter)
	interfaceStatusStore := store.New[parse.InterfaceStatusItem](db, models.CollectionInterfaceStatus, "interface_status_records", store.InterfaceStatusInserter)
	arpSourceStore := store.New[parse.ArpSourceItem](db, models.CollectionArpSource, "arp_source_records", store.ArpSourceInserter)

	registerCollectionJob(scheduler, cfg, "transceiver", devices, newPipeline(models.CollectionTransceiver, fetchRegistry, parseRegistry, transceiverStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "port_channel", devices, newPipeline(models.CollectionPortChannel, fetchRegistry, parseRegistry, portChannelStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "neighbor", devices, newPipeline(models.CollectionNeighbor, fetchRegistry, parseRegistry, neighborStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "interface_error", devices, newPipeline(models.CollectionInterfaceError, fetchRegistry, parseRegistry, interfaceErrorStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "static_acl", devices, newPipeline(models.CollectionStaticAcl, fetchRegistry, parseRegistry, staticAclStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "dynamic_acl", devices, newPipeline(models.CollectionDynamicAcl, fetchRegistry, parseRegistry, dynamicAclStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "mac_table", devices, newPipeline(models.CollectionMacTable, fetchRegistry, parseRegistry, macTableStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "fan", devices, newPipeline(models.CollectionFan, fetchRegistry, parseRegistry, fanStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "power", devices, newPipeline(models.CollectionPower, fetchRegistry, parseRegistry, powerStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "version", devices, newPipeline(models.CollectionVersion, fetchRegistry, parseRegistry, versionStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "ping", devices, newPipeline(models.CollectionPing, fetchRegistry, parseRegistry, pingStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "interface_status", devices, newPipeline(models.CollectionInterfaceStatus, fetchRegistry, parseRegistry, interfaceStatusStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "arp_source", devices, newPipeline(models.CollectionArpSource, fetchRegistry, parseRegistry, arpSourceStore, errorStore, cfg, logger))
	registerCollectionJob(scheduler, cfg, "client_ping", devices, newPipeline(models.CollectionClientPing, fetchRegistry, parseRegistry, clientPingStore, errorStore, cfg, logger))

	// Indicator evaluators read typed rows back out as models.*Record, not
	// the parse.*Item shape the collection pipelines write with, so each
	// gets its own read-only Store[T] bound to the same table.
	transceiverReadStore := store.New[models.TransceiverRecord](db, models.CollectionTransceiver, "transceiver_records", nil)
	fanReadStore := store.New[models.FanRecord](db, models.CollectionFan, "fan_records", nil)
	powerReadStore := store.New[models.PowerRecord](db, models.CollectionPower, "power_records", nil)
	portChannelReadStore := store.New[models.PortChannelRecord](db, models.CollectionPortChannel, "port_channel_records", nil)
	portChannelMemberReadStore := store.New[models.PortChannelMemberRecord](db, models.CollectionPortChannel, "port_channel_member_records", nil)
	neighborReadStore := store.New[models.NeighborRecord](db, models.CollectionNeighbor, "neighbor_records", nil)
	versionReadStore := store.New[models.VersionRecord](db, models.CollectionVersion, "version_records", nil)
	interfaceErrorReadStore := store.New[models.InterfaceErrorRecord](db, models.CollectionInterfaceError, "interface_error_records", nil)
	pingReadStore := store.New[models.PingRecord](db, models.CollectionPing, "ping_records", nil)
	clientPingReadStore := store.New[models.PingRecord](db, models.CollectionClientPing, "ping_records", nil)

	var notifier notify.Notifier = notify.NoopNotifier{}
	if webhook := cfg.Notify.WebhookURL(); webhook != "" {
		notifier = notify.NewSlackNotifier(webhook, cfg.Notify.Channel)
	}

	permissionCtx, cancelPermission := context.WithTimeout(context.Background(), 5*time.Second)
	permissionChecker, err := cases.NewPermissionChecker(permissionCtx)
	cancelPermission()
	if err != nil {
		return err
	}

	logSink := syslog.New(db, logger)
	caseService := cases.NewService(db, permissionChecker, logSink, notifier)

	registerMaintenanceTask(scheduler, cfg, "case_sync", devices, func(ctx context.Context, maintenanceID string) error {
		_, err := caseService.SyncCases(ctx, maintenanceID)
		return err
	})
	registerMaintenanceTask(scheduler, cfg, "case_ping_state", devices, caseService.UpdatePingStatus)
	registerMaintenanceTask(scheduler, cfg, "case_sweep", devices, func(ctx context.Context, maintenanceID string) error {
		if _, err := caseService.AutoResolveReachable(ctx, maintenanceID); err != nil {
			return err
		}
		_, err := caseService.AutoReopenUnreachable(ctx, maintenanceID)
		return err
	})
	registerMaintenanceTask(scheduler, cfg, "change_flag_refresh", devices, func(ctx context.Context, maintenanceID string) error {
		_, err := caseService.UpdateChangeFlags(ctx, maintenanceID)
		return err
	})
	registerMaintenanceTask(scheduler, cfg, "client_ingest", devices, func(ctx context.Context, maintenanceID string) error {
		_, err := caseService.IngestClientRecords(ctx, maintenanceID)
		return err
	})

	sweeper := retention.New(db, cfg.Retention.Grace(), logger)
	registerGlobalJob(scheduler, cfg, "retention_sweep", func(ctx context.Context) error {
		_, err := sweeper.CleanupDeactivated(ctx)
		return err
	})

	thresholdService := indicators.NewThresholdService(db, rdb, cfg.Thresholds)
	evaluators := []indicators.Evaluator{
		indicators.NewTransceiverEvaluator(transceiverReadStore, thresholdService),
		indicators.NewFanEvaluator(fanReadStore, thresholdService),
		indicators.NewPowerEvaluator(powerReadStore, thresholdService),
		indicators.NewPortChannelEvaluator(portChannelReadStore, portChannelMemberReadStore),
		indicators.NewUplinkEvaluator(neighborReadStore),
		indicators.NewVersionEvaluator(versionReadStore),
		indicators.NewErrorCountEvaluator(interfaceErrorReadStore),
		indicators.NewPingEvaluator(pingReadStore, models.CollectionPing),
		indicators.NewPingEvaluator(clientPingReadStore, models.CollectionClientPing),
	}

	dashboardService := readmodel.NewDashboardService(evaluators, caseService)
	rawDataService := readmodel.NewRawDataService(db)
	maintenanceService := maintenance.New(db)
	listsService := api.NewListsService(db)
	expectationsService := api.NewExpectationsService(db)
	thresholdsService := api.NewThresholdsService(db, thresholdService)

	router := api.NewRouter(api.Deps{
		Maintenances: maintenanceService,
		Cases:        caseService,
		Dashboard:    dashboardService,
		RawData:      rawDataService,
		Lists:        listsService,
		Expectations: expectationsService,
		Thresholds:   thresholdsService,
		Logs:         logSink,
		Logger:       logger,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)

	serverErrs := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrs <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrs:
		logger.Error("http server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdown())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}
	if err := scheduler.Shutdown(shutdownCtx); err != nil {
		logger.Error("scheduler shutdown error", zap.Error(err))
	}

	return nil
}

// buildFetchRegistry wires one Fetcher per collection type, grouped by
// source family per spec.md §6.1 (FNA: transceiver/port_channel/arp_source/
// static+dynamic acl; DNA: version/uplink/fan/power/error_count/mac_table/
// interface_status; GNMS-Ping: ping/client_ping).
func buildFetchRegistry(cfg *config.Config, breakers *fetch.Breakers) *fetch.Registry {
	registry := fetch.NewRegistry()

	fna := cfg.Sources["fna"]
	fnaClient := fetch.NewClient(fetch.ClientConfig{Timeout: fna.Timeout(), MaxIdleConns: 10, IdleConnTimeout: 90 * time.Second, TLSHandshakeTimeout: 10 * time.Second, ResponseHeaderTimeout: 15 * time.Second})
	registry.Register(fetch.NewFNAFetcher(models.CollectionTransceiver, fna.BaseURL, "transceiver/{ip}", fna.Token(), fnaClient, breakers))
	registry.Register(fetch.NewFNAFetcher(models.CollectionPortChannel, fna.BaseURL, "port_channel/{ip}", fna.Token(), fnaClient, breakers))
	registry.Register(fetch.NewFNAFetcher(models.CollectionArpSource, fna.BaseURL, "arp_table/{ip}", fna.Token(), fnaClient, breakers))
	registry.Register(fetch.NewFNAFetcher(models.CollectionStaticAcl, fna.BaseURL, "acl/static/{ip}", fna.Token(), fnaClient, breakers))
	registry.Register(fetch.NewFNAFetcher(models.CollectionDynamicAcl, fna.BaseURL, "acl/dynamic/{ip}", fna.Token(), fnaClient, breakers))

	dna := cfg.Sources["dna"]
	dnaClient := fetch.NewClient(fetch.ClientConfig{Timeout: dna.Timeout(), MaxIdleConns: 10, IdleConnTimeout: 90 * time.Second, TLSHandshakeTimeout: 10 * time.Second, ResponseHeaderTimeout: 15 * time.Second})
	registry.Register(fetch.NewDNAFetcher(models.CollectionVersion, dna.BaseURL, "{vendor_os}/version/{ip}", dna.Token(), dnaClient, breakers))
	registry.Register(fetch.NewDNAFetcher(models.CollectionNeighbor, dna.BaseURL, "{vendor_os}/uplink/{ip}", dna.Token(), dnaClient, breakers))
	registry.Register(fetch.NewDNAFetcher(models.CollectionFan, dna.BaseURL, "{vendor_os}/fan/{ip}", dna.Token(), dnaClient, breakers))
	registry.Register(fetch.NewDNAFetcher(models.CollectionPower, dna.BaseURL, "{vendor_os}/power/{ip}", dna.Token(), dnaClient, breakers))
	registry.Register(fetch.NewDNAFetcher(models.CollectionInterfaceError, dna.BaseURL, "{vendor_os}/error_count/{ip}", dna.Token(), dnaClient, breakers))
	registry.Register(fetch.NewDNAFetcher(models.CollectionMacTable, dna.BaseURL, "{vendor_os}/mac_table/{ip}", dna.Token(), dnaClient, breakers))
	registry.Register(fetch.NewDNAFetcher(models.CollectionInterfaceStatus, dna.BaseURL, "{vendor_os}/interface_status/{ip}", dna.Token(), dnaClient, breakers))

	gnms := cfg.Sources["gnms_ping"]
	gnmsClient := fetch.NewClient(fetch.GNMSPingClientConfig(gnms.Timeout()))
	registry.Register(fetch.NewGNMSPingFetcher(models.CollectionPing, gnms.BaseURL, "maintcore", gnms.Token(), gnmsClient, breakers))
	registry.Register(fetch.NewGNMSPingFetcher(models.CollectionClientPing, gnms.BaseURL, "maintcore-client", gnms.Token(), gnmsClient, breakers))

	return registry
}

func newPipeline[T any](collectionType models.CollectionType, fetchRegistry *fetch.Registry, parseRegistry *parse.Registry, st *store.Store[T], errs *store.ErrorStore, cfg *config.Config, logger *zap.Logger) *schedule.CollectionPipeline[T] {
	fetcher, err := fetchRegistry.Get(collectionType)
	if err != nil {
		logger.Fatal("missing fetcher for collection type", zap.String("collection_type", string(collectionType)), zap.Error(err))
	}
	return schedule.NewCollectionPipeline(collectionType, fetcher, parseRegistry, st, errs, int64(cfg.FetchConcurrency), logger)
}

func jobConfig(cfg *config.Config, name string) config.JobConfig {
	for _, j := range cfg.Jobs {
		if j.Name == name {
			return j
		}
	}
	return config.JobConfig{Name: name, Enabled: false}
}

func registerCollectionJob[T any](scheduler *schedule.Scheduler, cfg *config.Config, name string, devices *schedule.DeviceRepo, pipeline *schedule.CollectionPipeline[T]) {
	jc := jobConfig(cfg, name)
	task := schedule.NewMaintenanceFanOutTask(devices, pipeline)
	scheduler.Register(schedule.Job{Name: name, Interval: jc.Interval(), Enabled: jc.Enabled}, task)
}

// maintenanceTask adapts a per-maintenance function (a Case Engine sweep)
// into a schedule.Task, fanning out over every active maintenance the
// same way a collection pipeline does.
type maintenanceTask struct {
	devices *schedule.DeviceRepo
	fn      func(ctx context.Context, maintenanceID string) error
}

func (t *maintenanceTask) Keys(ctx context.Context) ([]string, error) {
	return t.devices.ActiveMaintenanceIDs(ctx)
}

func (t *maintenanceTask) RunFor(ctx context.Context, maintenanceID string) error {
	return t.fn(ctx, maintenanceID)
}

func registerMaintenanceTask(scheduler *schedule.Scheduler, cfg *config.Config, name string, devices *schedule.DeviceRepo, fn func(ctx context.Context, maintenanceID string) error) {
	jc := jobConfig(cfg, name)
	scheduler.Register(schedule.Job{Name: name, Interval: jc.Interval(), Enabled: jc.Enabled}, &maintenanceTask{devices: devices, fn: fn})
}

func registerGlobalJob(scheduler *schedule.Scheduler, cfg *config.Config, name string, fn func(ctx context.Context) error) {
	jc := jobConfig(cfg, name)
	scheduler.Register(schedule.Job{Name: name, Interval: jc.Interval(), Enabled: jc.Enabled}, schedule.NewGlobalTask(fn))
}
