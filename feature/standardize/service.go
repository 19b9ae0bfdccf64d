package standardize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop-transformer/core/batch"
	"shop-transformer/core/catalog"
	"shop-transformer/core/entitycache"
	"shop-transformer/core/logger"
	"shop-transformer/core/matching"
	"shop-transformer/core/queue"
	"shop-transformer/feature/shop"
	"shop-transformer/feature/standardize/vindecode"

	"go.uber.org/zap"
)

// ErrNoDatabase is returned by entity operations when the service was built
// without a shop database connection. Catalog lookups and single-descriptor
// matches stay available.
var ErrNoDatabase = errors.New("shop database is not connected")

// Config bundles the tuning sections a transformation run reads.
type Config struct {
	Matching matching.Config
	Batch    batch.Config
	Cache    entitycache.Config
}

// Service runs the standardization pipeline: admit an entity through the
// FIFO queue, bulk-load its shop records, match units and part lines against
// the catalog, and write the assembled output through the sink.
type Service struct {
	store   *catalog.Store
	repo    *shop.Repository
	cache   *shop.Cache
	decoder vindecode.Decoder
	sink    Sink
	queue   *queue.Queue
	cfg     Config
	logger  *zap.Logger
}

// NewService wires the pipeline. repo may be nil when no shop database is
// configured; sink may be Discard for dry runs.
func NewService(store *catalog.Store, repo *shop.Repository, decoder vindecode.Decoder, sink Sink, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if sink == nil {
		sink = Discard{}
	}
	s := &Service{
		store:   store,
		repo:    repo,
		decoder: decoder,
		sink:    sink,
		queue:   queue.New(log),
		cfg:     cfg,
		logger:  log,
	}
	if repo != nil {
		s.cache = shop.NewCache(cfg.Cache, repo, log)
	}
	return s
}

// Run standardizes the given entities in order. Entities are admitted one
// at a time through the queue; a failed entity is recorded in the report and
// the run moves on. Only context cancellation or a missing catalog stops the
// run early.
func (s *Service) Run(ctx context.Context, entityIDs []int) (*RunReport, error) {
	runID := logger.NewRunID()
	log := logger.WithRunID(s.logger, runID)
	started := time.Now()

	// A catalog that cannot load fails the run before any entity is touched.
	if _, err := s.store.Index(ctx); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	report := &RunReport{RunID: runID, StartedAt: started.UTC()}
	log.Info("transformation run started", zap.Int("entities", len(entityIDs)))

	for _, entityID := range entityIDs {
		er, err := s.processEntity(ctx, runID, entityID)
		if err != nil {
			if ctx.Err() != nil {
				report.Entities = len(report.Reports)
				report.ElapsedMS = time.Since(started).Milliseconds()
				return report, err
			}
			log.Error("entity failed", zap.Int("entity_id", entityID), zap.Error(err))
			report.Failed++
			report.Reports = append(report.Reports, EntityReport{EntityID: entityID, Error: err.Error()})
			continue
		}
		report.Reports = append(report.Reports, *er)
		report.Vehicles.Merge(er.Vehicles)
		report.Parts.Merge(er.Parts)
	}

	report.Entities = len(report.Reports)
	report.ElapsedMS = time.Since(started).Milliseconds()
	log.Info("transformation run finished",
		zap.Int("entities", report.Entities),
		zap.Int("failed", report.Failed),
		zap.Float64("vehicle_match_rate", report.Vehicles.MatchRate),
		zap.Float64("part_match_rate", report.Parts.MatchRate),
		zap.Duration("elapsed", time.Since(started)))
	return report, nil
}

// ProcessEntity standardizes a single entity under its own run id.
func (s *Service) ProcessEntity(ctx context.Context, entityID int) (*EntityReport, error) {
	return s.processEntity(ctx, logger.NewRunID(), entityID)
}

func (s *Service) processEntity(ctx context.Context, runID string, entityID int) (*EntityReport, error) {
	if s.repo == nil {
		return nil, ErrNoDatabase
	}

	ticket, err := s.queue.Enqueue(fmt.Sprintf("entity-%d", entityID))
	if err != nil {
		return nil, err
	}
	if err := ticket.Wait(ctx); err != nil {
		return nil, err
	}
	defer ticket.Release()

	log := logger.WithRunID(s.logger, runID).With(zap.Int("entity_id", entityID))
	started := time.Now()

	idx, err := s.store.Index(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	ids, err := s.repo.CustomerIDs(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("entity %d: customer ids: %w", entityID, err)
	}
	log.Info("entity admitted",
		zap.Int("customers", len(ids)),
		zap.Duration("queue_wait", ticket.Waited()))

	s.cache.Manager.Initialize(entityID, ids, entitycache.MethodBulk)
	defer s.cache.Manager.Clear()

	if err := s.cache.Manager.BulkLoad(ctx); err != nil {
		return nil, fmt.Errorf("entity %d: bulk load: %w", entityID, err)
	}
	for _, issue := range s.cache.Manager.CheckConsistency() {
		log.Warn("cache consistency issue",
			zap.String("table", issue.Table),
			zap.String("detail", issue.Detail))
	}

	vehicleItems, partItems := s.collectItems(ctx, ids)

	vm := matching.NewVehicleMatcher(idx, idx, s.cfg.Matching, log)
	pm := matching.NewPartsMatcher(idx, s.cfg.Matching, log)

	vehicleRunner := batch.New[matching.VehicleDescriptor, matching.CanonicalVehicle]("vehicles", vm, s.cfg.Batch, log).
		WithPrematcher(matching.NewVehiclePrematcher(vm))
	partRunner := batch.New[matching.PartDescriptor, matching.CanonicalPart]("parts", pm, s.cfg.Batch, log).
		WithPrematcher(matching.NewPartsPrematcher(pm))

	vehicleResults, vehicleStats, err := vehicleRunner.Run(ctx, vehicleItems)
	if err != nil {
		return nil, fmt.Errorf("entity %d: vehicles: %w", entityID, err)
	}
	partResults, partStats, err := partRunner.Run(ctx, partItems)
	if err != nil {
		return nil, fmt.Errorf("entity %d: parts: %w", entityID, err)
	}

	// Re-validate coverage before assembling; any gap goes through the
	// bounded fallback fetch.
	if ok, missing := s.cache.Manager.ValidateForIDs(ids); !ok {
		if err := s.cache.Manager.EnsureCached(ctx, missing); err != nil {
			return nil, fmt.Errorf("entity %d: %w", entityID, err)
		}
	}

	out := s.assemble(runID, entityID, ids, vehicleResults, partResults)
	if err := s.sink.WriteEntity(ctx, out); err != nil {
		return nil, fmt.Errorf("entity %d: write output: %w", entityID, err)
	}

	er := &EntityReport{
		EntityID:    entityID,
		Customers:   len(ids),
		Units:       len(vehicleItems),
		PartLines:   len(partItems),
		Vehicles:    vehicleStats.Snapshot(),
		Parts:       partStats.Snapshot(),
		QueueWaitMS: ticket.Waited().Milliseconds(),
		ElapsedMS:   time.Since(started).Milliseconds(),
	}
	log.Info("entity standardized",
		zap.Int("units", er.Units),
		zap.Int("part_lines", er.PartLines),
		zap.Float64("vehicle_match_rate", er.Vehicles.MatchRate),
		zap.Float64("part_match_rate", er.Parts.MatchRate),
		zap.Duration("elapsed", time.Since(started)))
	return er, nil
}

// collectItems builds the matcher inputs from the cached records, keyed by
// their database ids so results can be joined back onto the rows.
func (s *Service) collectItems(ctx context.Context, ids []int) ([]batch.Item[matching.VehicleDescriptor], []batch.Item[matching.PartDescriptor]) {
	var vehicles []batch.Item[matching.VehicleDescriptor]
	var parts []batch.Item[matching.PartDescriptor]
	for _, id := range ids {
		for _, u := range s.cache.Units.Get(id) {
			vehicles = append(vehicles, batch.Item[matching.VehicleDescriptor]{
				ID:         u.UnitID,
				Descriptor: s.decodeFill(ctx, u.Descriptor()),
			})
		}
		for _, p := range s.cache.PartLines.Get(id) {
			parts = append(parts, batch.Item[matching.PartDescriptor]{
				ID:         p.PartLineID,
				Descriptor: p.Descriptor(),
			})
		}
	}
	return vehicles, parts
}

// decodeFill completes a descriptor from its VIN where the shop record left
// fields blank. Decode failures are left for the matcher to classify.
func (s *Service) decodeFill(ctx context.Context, d matching.VehicleDescriptor) matching.VehicleDescriptor {
	if s.decoder == nil || d.VIN == "" || d.Complete() {
		return d
	}
	dec, err := s.decoder.Decode(ctx, d.VIN)
	if err != nil {
		return d
	}
	if d.Make == "" {
		d.Make = dec.Make
	}
	if d.Year == 0 {
		d.Year = dec.ModelYear
	}
	return d
}

// assemble joins match results back onto the cached shop records, grouped
// per customer in the order the ids were fetched.
func (s *Service) assemble(runID string, entityID int, ids []int, vr map[int]matching.Result[matching.CanonicalVehicle], pr map[int]matching.Result[matching.CanonicalPart]) *EntityOutput {
	out := &EntityOutput{
		EntityID:    entityID,
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
	}
	for _, id := range ids {
		for _, c := range s.cache.Customers.Get(id) {
			co := CustomerOutput{
				Customer:  c,
				Addresses: s.cache.Addresses.Get(id),
				Notes:     s.cache.Notes.Get(id),
				History:   s.cache.History.Get(id),
			}
			for _, u := range s.cache.Units.Get(id) {
				co.Units = append(co.Units, StandardizedUnit{Unit: u, Match: vr[u.UnitID]})
			}
			for _, p := range s.cache.PartLines.Get(id) {
				co.Parts = append(co.Parts, StandardizedPartLine{PartLine: p, Match: pr[p.PartLineID]})
			}
			out.Customers = append(out.Customers, co)
		}
	}
	return out
}

// EntityIDs lists the entities present in the shop database.
func (s *Service) EntityIDs(ctx context.Context) ([]int, error) {
	if s.repo == nil {
		return nil, ErrNoDatabase
	}
	return s.repo.EntityIDs(ctx)
}

// MatchVehicle resolves one descriptor against the current catalog, running
// the VIN decoder first when the descriptor is incomplete.
func (s *Service) MatchVehicle(ctx context.Context, d matching.VehicleDescriptor) (matching.Result[matching.CanonicalVehicle], error) {
	idx, err := s.store.Index(ctx)
	if err != nil {
		return matching.Result[matching.CanonicalVehicle]{}, err
	}
	d = s.decodeFill(ctx, d)
	return matching.NewVehicleMatcher(idx, idx, s.cfg.Matching, s.logger).Match(ctx, d), nil
}

// MatchPart resolves one part descriptor against the current catalog.
func (s *Service) MatchPart(ctx context.Context, d matching.PartDescriptor) (matching.Result[matching.CanonicalPart], error) {
	idx, err := s.store.Index(ctx)
	if err != nil {
		return matching.Result[matching.CanonicalPart]{}, err
	}
	return matching.NewPartsMatcher(idx, s.cfg.Matching, s.logger).Match(ctx, d), nil
}

// CatalogStats reports the dimension counts of the loaded index.
func (s *Service) CatalogStats(ctx context.Context) (catalog.Stats, error) {
	idx, err := s.store.Index(ctx)
	if err != nil {
		return catalog.Stats{}, err
	}
	return idx.Stats(), nil
}

// ReloadCatalog rebuilds the index from its source and reports the new
// counts. Concurrent reloads collapse into a single rebuild.
func (s *Service) ReloadCatalog(ctx context.Context) (catalog.Stats, error) {
	idx, err := s.store.Reload(ctx)
	if err != nil {
		return catalog.Stats{}, err
	}
	return idx.Stats(), nil
}

// CatalogLoadedAt reports when the current index was built.
func (s *Service) CatalogLoadedAt() time.Time {
	return s.store.LoadedAt()
}

// QueueSnapshot reports the holder and waiters of the admission queue.
func (s *Service) QueueSnapshot() queue.Snapshot {
	return s.queue.Snapshot()
}

// Close shuts the admission queue down. Waiting tickets fail immediately.
func (s *Service) Close() {
	s.queue.Close()
}
