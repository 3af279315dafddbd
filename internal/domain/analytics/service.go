package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"herdboard/internal/core/apperror"
	"herdboard/internal/core/id"
	"herdboard/internal/core/types"
	"herdboard/internal/domain/herd"
	"herdboard/internal/domain/ledger"
	"herdboard/pkg/logger"
)

// GenerateRequest is a fully-specified report request. Nothing is resolved
// from ambient state mid-computation: period, filters and the reference time
// all arrive explicitly, so the same request against the same snapshot
// produces the same report.
type GenerateRequest struct {
	Types   []ReportType
	Period  Period
	Filters *FilterSet

	// TopN overrides the configured ranking size when positive.
	TopN int

	// Now is the reference timestamp for relative periods, age cohorts and
	// report metadata. Zero means the wall clock; tests inject a fixed value.
	Now time.Time
}

// Service generates reports. It holds no cross-call state: every call
// fetches a fresh snapshot and computes from scratch, so concurrent calls
// need no locking.
type Service struct {
	source ledger.Source
	cfg    Config
	rules  *RuleEngine
	log    *logger.Logger
}

// NewService creates the report service, compiling the configured alert
// rules up front. A rule that does not compile fails construction rather
// than every later report.
func NewService(source ledger.Source, cfg Config, log *logger.Logger) (*Service, error) {
	cfg = cfg.normalized()
	rules, err := NewRuleEngine(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("compile alert rules: %w", err)
	}
	return &Service{
		source: source,
		cfg:    cfg,
		rules:  rules,
		log:    log.WithComponent("analytics"),
	}, nil
}

// Generate resolves the period, fetches the snapshot and assembles the
// requested report sections. A snapshot fetch failure aborts the whole
// report; a partially-populated report is never returned.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*Report, error) {
	if len(req.Types) == 0 {
		return nil, apperror.NewValidation("at least one report type is required")
	}
	for _, t := range req.Types {
		if !ValidReportType(t) {
			return nil, apperror.NewValidation("unknown report type").
				WithDetail("type", string(t))
		}
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	rp, err := ResolvePeriod(req.Period, now, s.cfg.TargetIntervalDays, s.cfg.MaxTrendIntervals)
	if err != nil {
		return nil, err
	}

	// Comparisons need the immediately preceding window of equal length,
	// so the snapshot covers both.
	snap, err := s.source.FetchSnapshot(ctx, rp.Previous().Start, rp.End)
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewDataUnavailable("snapshot", err)
	}

	topN := req.TopN
	if topN <= 0 {
		topN = s.cfg.TopN
	}

	s.log.WithContext(ctx).Infow("generating report",
		"types", req.Types,
		"period_start", rp.Start,
		"period_end", rp.End,
		"intervals", rp.IntervalCount,
		"animals", len(snap.Animals),
		"costs", len(snap.Costs),
		"sales", len(snap.Sales),
		"births", len(snap.Births),
	)

	return s.assemble(ctx, snap, rp, req.Types, req.Filters, topN, now)
}

// sectionInput carries the filtered snapshot shared by all section builders.
// Builders only read from it.
type sectionInput struct {
	rp      ResolvedPeriod
	now     time.Time
	topN    int
	idx     AnimalIndex
	animals []herd.Animal

	// Entity-filtered but not yet date-restricted; trends and comparisons
	// bucket by date themselves.
	costs  []ledger.CostEntry
	sales  []ledger.SaleEntry
	births []ledger.BirthRecord

	// Date-restricted to the current period.
	curCosts  []ledger.CostEntry
	curSales  []ledger.SaleEntry
	curBirths []ledger.BirthRecord
}

func (s *Service) assemble(ctx context.Context, snap *ledger.Snapshot, rp ResolvedPeriod, sections []ReportType, filters *FilterSet, topN int, now time.Time) (*Report, error) {
	idx := NewAnimalIndex(snap.Animals)

	in := &sectionInput{
		rp:      rp,
		now:     now,
		topN:    topN,
		idx:     idx,
		animals: FilterAnimals(snap.Animals, filters),
		costs:   FilterCosts(snap.Costs, filters, idx),
		sales:   FilterSales(snap.Sales, filters, idx),
		births:  FilterBirths(snap.Births, filters, idx),
	}

	// Skipped counts are computed once here, for every collection, so Meta
	// does not depend on which sections were requested.
	fCosts := FilterByDate(in.costs, costDate, rp)
	fSales := FilterByDate(in.sales, saleDate, rp)
	fBirths := FilterByDate(in.births, birthDate, rp)
	in.curCosts = fCosts.Records
	in.curSales = fSales.Records
	in.curBirths = fBirths.Records

	report := &Report{
		Meta: ReportMeta{
			GeneratedAt:   now,
			PeriodStart:   rp.Start,
			PeriodEnd:     rp.End,
			IntervalCount: rp.IntervalCount,
			SkippedCosts:  fCosts.SkippedCount,
			SkippedSales:  fSales.SkippedCount,
			SkippedBirths: fBirths.SkippedCount,
		},
	}

	// Sections are independent reads over the same immutable input, so they
	// build concurrently. Each writes a distinct report field.
	g, ctx := errgroup.WithContext(ctx)
	for _, t := range sections {
		switch t {
		case ReportCost:
			g.Go(func() error {
				report.Cost = s.buildCostReport(in)
				return ctx.Err()
			})
		case ReportProductivity:
			g.Go(func() error {
				report.Productivity = s.buildProductivityReport(in)
				return ctx.Err()
			})
		case ReportFinancial:
			g.Go(func() error {
				report.Financial = s.buildFinancialReport(in)
				return ctx.Err()
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return report, nil
}

func (s *Service) buildCostReport(in *sectionInput) *CostReport {
	total := SumAmounts(in.curCosts, costAmount)
	active := countActive(in.animals)

	var unattributed types.Money = types.Zero()
	for _, e := range in.curCosts {
		if e.AnimalID == nil {
			unattributed = unattributed.Add(e.Amount)
		}
	}

	perAnimal := perAnimalTotals(in.curCosts, in.idx, costAnimalRef, costAmount)
	projection := Project(total, in.rp.LengthDays())

	alerts := DetectElevatedCosts(in.curCosts, s.cfg.ElevatedCostFactor)
	alerts = append(alerts, DetectHighVolume(projection.Monthly, s.cfg.HighVolumeMonthlyThreshold)...)

	return &CostReport{
		Summary: CostSummary{
			TotalCosts:        total,
			RecordCount:       len(in.curCosts),
			AvgCostPerRecord:  AverageAmount(in.curCosts, costAmount),
			AvgCostPerAnimal:  types.SafeDiv(total, types.NewMoney(float64(active))).Round(2),
			UnattributedCosts: unattributed,
		},
		ByCategory: Aggregate(in.curCosts, costAmount, func(e ledger.CostEntry) string {
			return string(ClassifyCategory(e.Category))
		}),
		ByAnimal: Aggregate(in.curCosts, costAmount, func(e ledger.CostEntry) string {
			return animalLabel(in.idx, e.AnimalID)
		}),
		ByLocation: Aggregate(in.curCosts, costAmount, func(e ledger.CostEntry) string {
			return locationLabel(in.idx, e.AnimalID)
		}),
		Trend:      BuildTrend(in.costs, in.rp, costDate, costAmount),
		Comparison: Compare(in.costs, in.rp, costDate, costAmount),
		Projection: projection,
		TopAnimals: TopN(perAnimal, in.topN),
		Alerts:     alerts,
	}
}

func (s *Service) buildProductivityReport(in *sectionInput) *ProductivityReport {
	births := len(in.curBirths)

	var activeAnimals []herd.Animal
	activeFemales := 0
	for _, a := range in.animals {
		if !a.IsActive() {
			continue
		}
		activeAnimals = append(activeAnimals, a)
		if a.Sex == herd.SexFemale {
			activeFemales++
		}
	}

	// Births per mother over the current period, ranked descending.
	motherCounts := make(map[id.ID]int)
	for _, b := range in.curBirths {
		motherCounts[b.MotherAnimalID]++
	}
	mothers := make([]RankedEntity, 0, len(motherCounts))
	for motherID, n := range motherCounts {
		mothers = append(mothers, RankedEntity{
			ID:     motherID.String(),
			Label:  animalLabel(in.idx, &motherID),
			Metric: types.NewMoney(float64(n)),
		})
	}

	return &ProductivityReport{
		Summary: ProductivitySummary{
			BirthCount:             births,
			ActiveAnimals:          len(activeAnimals),
			ActiveFemales:          activeFemales,
			ReproductionEfficiency: types.Percent(types.NewMoney(float64(births)), types.NewMoney(float64(activeFemales))),
		},
		HerdByBreed: Aggregate(activeAnimals, unitAmount[herd.Animal], func(a herd.Animal) string {
			return a.Breed
		}),
		HerdByCohort: Aggregate(activeAnimals, unitAmount[herd.Animal], func(a herd.Animal) string {
			return AgeCohort(&a, in.now)
		}),
		BirthTrend: BuildTrend(in.births, in.rp, birthDate, unitAmount[ledger.BirthRecord]),
		Comparison: Compare(in.births, in.rp, birthDate, unitAmount[ledger.BirthRecord]),
		TopMothers: TopN(mothers, in.topN),
	}
}

func (s *Service) buildFinancialReport(in *sectionInput) *FinancialReport {
	revenue := SumAmounts(in.curSales, saleAmount)
	costs := SumAmounts(in.curCosts, costAmount)
	net := revenue.Sub(costs)
	saleCount := len(in.curSales)
	active := countActive(in.animals)

	avgRevenuePerSale := types.SafeDiv(revenue, types.NewMoney(float64(saleCount))).Round(2)
	avgCostPerAnimal := types.SafeDiv(costs, types.NewMoney(float64(active))).Round(2)

	marginPct := MarginPercent(revenue, costs)
	roiPct := ROIPercent(revenue, costs)

	revComparison := Compare(in.sales, in.rp, saleDate, saleAmount)
	costComparison := Compare(in.costs, in.rp, costDate, costAmount)

	// Net result per animal: attributed sales minus attributed costs.
	// Overhead costs carry no animal and stay out of the ranking.
	netByAnimal := make(map[id.ID]types.Money)
	for _, e := range in.curSales {
		netByAnimal[e.AnimalID] = addTo(netByAnimal, e.AnimalID).Add(e.Amount)
	}
	for _, e := range in.curCosts {
		if e.AnimalID == nil {
			continue
		}
		netByAnimal[*e.AnimalID] = addTo(netByAnimal, *e.AnimalID).Sub(e.Amount)
	}
	netRanking := make([]RankedEntity, 0, len(netByAnimal))
	for animalID, m := range netByAnimal {
		netRanking = append(netRanking, RankedEntity{
			ID:     animalID.String(),
			Label:  animalLabel(in.idx, &animalID),
			Metric: m,
		})
	}

	alerts := s.rules.Evaluate(RuleScalars{
		TotalCosts:        costs.InexactFloat64(),
		TotalRevenue:      revenue.InexactFloat64(),
		NetResult:         net.InexactFloat64(),
		MarginPct:         marginPct.InexactFloat64(),
		ROIPct:            roiPct.InexactFloat64(),
		CostChangePct:     costComparison.PercentChange.InexactFloat64(),
		RevenueChangePct:  revComparison.PercentChange.InexactFloat64(),
		BirthCount:        float64(len(in.curBirths)),
		ActiveAnimals:     float64(active),
		AvgCostPerAnimal:  avgCostPerAnimal.InexactFloat64(),
		AvgRevenuePerSale: avgRevenuePerSale.InexactFloat64(),
	})

	return &FinancialReport{
		Summary: FinancialSummary{
			TotalRevenue:      revenue,
			TotalCosts:        costs,
			NetResult:         net,
			MarginPct:         marginPct,
			ROIPct:            roiPct,
			SaleCount:         saleCount,
			AvgRevenuePerSale: avgRevenuePerSale,
		},
		RevenueByAnimal: Aggregate(in.curSales, saleAmount, func(e ledger.SaleEntry) string {
			return animalLabel(in.idx, &e.AnimalID)
		}),
		RevenueTrend:       BuildTrend(in.sales, in.rp, saleDate, saleAmount),
		RevenueComparison:  revComparison,
		CostComparison:     costComparison,
		RevenueProjection:  Project(revenue, in.rp.LengthDays()),
		CostProjection:     Project(costs, in.rp.LengthDays()),
		BreakEven:          ComputeBreakEven(costs, avgRevenuePerSale, avgCostPerAnimal),
		TopAnimalsByNet:    TopN(netRanking, in.topN),
		BottomAnimalsByNet: BottomN(netRanking, in.topN),
		Alerts:             alerts,
	}
}

// --- accessors shared by the section builders ---

func costDate(e ledger.CostEntry) time.Time    { return e.Date }
func saleDate(e ledger.SaleEntry) time.Time    { return e.Date }
func birthDate(r ledger.BirthRecord) time.Time { return r.Date }

func costAmount(e ledger.CostEntry) types.Money { return e.Amount }
func saleAmount(e ledger.SaleEntry) types.Money { return e.Amount }

func costAnimalRef(e ledger.CostEntry) *id.ID { return e.AnimalID }

func unitAmount[T any](T) types.Money { return one }

func countActive(animals []herd.Animal) int {
	n := 0
	for _, a := range animals {
		if a.IsActive() {
			n++
		}
	}
	return n
}

// animalLabel resolves a record's animal reference to its tag number.
// Unattributed or unknown references land in the shared overflow bucket.
func animalLabel(idx AnimalIndex, ref *id.ID) string {
	if a := idx.Lookup(ref); a != nil {
		return a.TagNumber
	}
	return OtherBucketKey
}

func locationLabel(idx AnimalIndex, ref *id.ID) string {
	if a := idx.Lookup(ref); a != nil && a.LocationID != nil {
		return a.LocationID.String()
	}
	return OtherBucketKey
}

func addTo(m map[id.ID]types.Money, k id.ID) types.Money {
	if v, ok := m[k]; ok {
		return v
	}
	return types.Zero()
}

// perAnimalTotals sums amounts per attributed animal and returns ranking
// rows sorted by descending total. Unattributed records are excluded.
func perAnimalTotals[T any](records []T, idx AnimalIndex, refOf func(T) *id.ID, amountOf func(T) types.Money) []RankedEntity {
	totals := make(map[id.ID]types.Money)
	for _, r := range records {
		ref := refOf(r)
		a := idx.Lookup(ref)
		if a == nil {
			continue
		}
		totals[a.ID] = addTo(totals, a.ID).Add(amountOf(r))
	}
	out := make([]RankedEntity, 0, len(totals))
	for animalID, m := range totals {
		out = append(out, RankedEntity{
			ID:     animalID.String(),
			Label:  animalLabel(idx, &animalID),
			Metric: m,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Metric.Equal(out[j].Metric) {
			return out[i].Metric.GreaterThan(out[j].Metric)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
