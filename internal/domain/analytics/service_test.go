package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdboard/internal/core/apperror"
	"herdboard/internal/core/id"
	"herdboard/internal/core/types"
	"herdboard/internal/domain/herd"
	"herdboard/internal/domain/ledger"
	"herdboard/pkg/logger"
)

type stubSource struct {
	snap  *ledger.Snapshot
	err   error
	calls int
	from  time.Time
	to    time.Time
}

func (s *stubSource) FetchSnapshot(_ context.Context, from, to time.Time) (*ledger.Snapshot, error) {
	s.calls++
	s.from, s.to = from, to
	if s.err != nil {
		return nil, s.err
	}
	return s.snap, nil
}

// fixtureSnapshot covers February 2026 with activity in both halves of the
// month so comparisons have a non-zero baseline.
func fixtureSnapshot() *ledger.Snapshot {
	animals, _ := testHerd()
	cow := animals[0].ID // female, Nelore, active
	bull := animals[1].ID

	return &ledger.Snapshot{
		Animals: animals,
		Costs: []ledger.CostEntry{
			{ID: id.New(), Date: day(2026, 2, 16), Amount: types.MustMoney("100"), Category: "feed", AnimalID: &cow},
			{ID: id.New(), Date: day(2026, 2, 20), Amount: types.MustMoney("50"), Category: "vet", AnimalID: &bull},
			{ID: id.New(), Date: day(2026, 2, 25), Amount: types.MustMoney("30"), Category: "misc"},
			{ID: id.New(), Date: day(2026, 2, 5), Amount: types.MustMoney("90"), Category: "feed"}, // previous half
			{ID: id.New(), Amount: types.MustMoney("999"), Category: "feed"},                       // missing date
		},
		Sales: []ledger.SaleEntry{
			{ID: id.New(), Date: day(2026, 2, 18), Amount: types.MustMoney("700"), AnimalID: bull},
			{ID: id.New(), Date: day(2026, 2, 6), Amount: types.MustMoney("350"), AnimalID: cow},
		},
		Births: []ledger.BirthRecord{
			{ID: id.New(), Date: day(2026, 2, 17), MotherAnimalID: cow},
			{ID: id.New(), Date: day(2026, 2, 22), MotherAnimalID: cow},
		},
	}
}

func newTestService(t *testing.T, src ledger.Source) *Service {
	t.Helper()
	svc, err := NewService(src, DefaultConfig(), logger.Default())
	require.NoError(t, err)
	return svc
}

// currentHalf is Feb 15 - Mar 1; the preceding window is Feb 1 - Feb 15.
var currentHalf = Period{StartDate: day(2026, 2, 15), EndDate: day(2026, 3, 1)}

func TestService_Generate_CostReport(t *testing.T) {
	src := &stubSource{snap: fixtureSnapshot()}
	svc := newTestService(t, src)

	report, err := svc.Generate(context.Background(), GenerateRequest{
		Types:  []ReportType{ReportCost},
		Period: currentHalf,
		Now:    testNow,
	})
	require.NoError(t, err)
	require.NotNil(t, report.Cost)
	assert.Nil(t, report.Productivity)
	assert.Nil(t, report.Financial)

	// Snapshot fetch spans the comparison window too.
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, day(2026, 2, 1), src.from)
	assert.Equal(t, day(2026, 3, 1), src.to)

	cost := report.Cost
	assert.Equal(t, "180", cost.Summary.TotalCosts.String())
	assert.Equal(t, 3, cost.Summary.RecordCount)
	assert.Equal(t, "60", cost.Summary.AvgCostPerRecord.String())
	assert.Equal(t, "30", cost.Summary.UnattributedCosts.String())
	// Two active animals in the fixture herd.
	assert.Equal(t, "90", cost.Summary.AvgCostPerAnimal.String())

	require.NotEmpty(t, cost.ByCategory)
	assert.Equal(t, string(CategoryFeed), cost.ByCategory[0].Key)
	assert.Len(t, cost.Trend, report.Meta.IntervalCount)

	assert.Equal(t, "180", cost.Comparison.CurrentValue.String())
	assert.Equal(t, "90", cost.Comparison.PreviousValue.String())
	assert.Equal(t, "100", cost.Comparison.PercentChange.String())

	require.NotEmpty(t, cost.TopAnimals)
	assert.Equal(t, "BR-001", cost.TopAnimals[0].Label)

	assert.Equal(t, 1, report.Meta.SkippedCosts, "dateless record is skipped exactly once")
	assert.Zero(t, report.Meta.SkippedSales)
}

func TestService_Generate_ProductivityReport(t *testing.T) {
	src := &stubSource{snap: fixtureSnapshot()}
	svc := newTestService(t, src)

	report, err := svc.Generate(context.Background(), GenerateRequest{
		Types:  []ReportType{ReportProductivity},
		Period: currentHalf,
		Now:    testNow,
	})
	require.NoError(t, err)
	require.NotNil(t, report.Productivity)

	p := report.Productivity
	assert.Equal(t, 2, p.Summary.BirthCount)
	assert.Equal(t, 2, p.Summary.ActiveAnimals)
	assert.Equal(t, 1, p.Summary.ActiveFemales)
	assert.Equal(t, "200", p.Summary.ReproductionEfficiency.String())

	require.Len(t, p.TopMothers, 1)
	assert.Equal(t, "BR-001", p.TopMothers[0].Label)
	assert.Equal(t, "2", p.TopMothers[0].Metric.String())

	require.NotEmpty(t, p.HerdByCohort)
	assert.Len(t, p.BirthTrend, report.Meta.IntervalCount)
}

func TestService_Generate_FinancialReport(t *testing.T) {
	src := &stubSource{snap: fixtureSnapshot()}
	svc := newTestService(t, src)

	report, err := svc.Generate(context.Background(), GenerateRequest{
		Types:  []ReportType{ReportFinancial},
		Period: currentHalf,
		Now:    testNow,
	})
	require.NoError(t, err)
	require.NotNil(t, report.Financial)

	f := report.Financial
	assert.Equal(t, "700", f.Summary.TotalRevenue.String())
	assert.Equal(t, "180", f.Summary.TotalCosts.String())
	assert.Equal(t, "520", f.Summary.NetResult.String())
	assert.Equal(t, 1, f.Summary.SaleCount)
	assert.Equal(t, "700", f.Summary.AvgRevenuePerSale.String())

	assert.Equal(t, "700", f.RevenueComparison.CurrentValue.String())
	assert.Equal(t, "350", f.RevenueComparison.PreviousValue.String())

	assert.True(t, f.BreakEven.Achievable)
	require.NotEmpty(t, f.TopAnimalsByNet)
	assert.Equal(t, "BR-002", f.TopAnimalsByNet[0].Label, "bull sold for 700 minus 50 vet")
	assert.Equal(t, "650", f.TopAnimalsByNet[0].Metric.String())
}

func TestService_Generate_AllSections(t *testing.T) {
	src := &stubSource{snap: fixtureSnapshot()}
	svc := newTestService(t, src)

	report, err := svc.Generate(context.Background(), GenerateRequest{
		Types:  []ReportType{ReportCost, ReportProductivity, ReportFinancial},
		Period: currentHalf,
		Now:    testNow,
	})
	require.NoError(t, err)
	assert.NotNil(t, report.Cost)
	assert.NotNil(t, report.Productivity)
	assert.NotNil(t, report.Financial)
	assert.Equal(t, 1, src.calls, "one snapshot fetch serves every section")
}

func TestService_Generate_Idempotent(t *testing.T) {
	src := &stubSource{snap: fixtureSnapshot()}
	svc := newTestService(t, src)

	req := GenerateRequest{
		Types:  []ReportType{ReportCost, ReportProductivity, ReportFinancial},
		Period: currentHalf,
		Now:    testNow,
	}

	first, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestService_Generate_WithFilters(t *testing.T) {
	src := &stubSource{snap: fixtureSnapshot()}
	svc := newTestService(t, src)

	report, err := svc.Generate(context.Background(), GenerateRequest{
		Types:   []ReportType{ReportCost},
		Period:  currentHalf,
		Filters: &FilterSet{Sex: ptr(herd.SexFemale)},
		Now:     testNow,
	})
	require.NoError(t, err)

	// Only the cow's feed entry survives the sex predicate; unattributed
	// records fail animal predicates when one is set.
	assert.Equal(t, "100", report.Cost.Summary.TotalCosts.String())
	assert.Equal(t, 1, report.Cost.Summary.RecordCount)
}

func TestService_Generate_Validation(t *testing.T) {
	svc := newTestService(t, &stubSource{snap: fixtureSnapshot()})

	t.Run("no types", func(t *testing.T) {
		_, err := svc.Generate(context.Background(), GenerateRequest{Period: currentHalf})
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := svc.Generate(context.Background(), GenerateRequest{
			Types:  []ReportType{"weather"},
			Period: currentHalf,
		})
		assert.Error(t, err)
	})

	t.Run("invalid period", func(t *testing.T) {
		_, err := svc.Generate(context.Background(), GenerateRequest{
			Types:  []ReportType{ReportCost},
			Period: Period{StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 1)},
		})
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidPeriod(err))
	})
}

func TestService_Generate_DataUnavailable(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	svc := newTestService(t, src)

	_, err := svc.Generate(context.Background(), GenerateRequest{
		Types:  []ReportType{ReportCost},
		Period: currentHalf,
		Now:    testNow,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsDataUnavailable(err), "fetch failure fails the call atomically")
}

func TestService_Generate_EmptySnapshot(t *testing.T) {
	src := &stubSource{snap: &ledger.Snapshot{}}
	svc := newTestService(t, src)

	report, err := svc.Generate(context.Background(), GenerateRequest{
		Types:  []ReportType{ReportCost, ReportFinancial},
		Period: currentHalf,
		Now:    testNow,
	})
	require.NoError(t, err, "an empty operation still reports, all zeros")

	assert.True(t, report.Cost.Summary.TotalCosts.IsZero())
	assert.Len(t, report.Cost.Trend, report.Meta.IntervalCount)
	assert.True(t, report.Financial.Summary.MarginPct.IsZero())
	assert.False(t, report.Financial.BreakEven.Achievable)
}

func TestNewService_RejectsBadRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules = []Rule{{Name: "broken", Expression: "margin_pct <"}}

	_, err := NewService(&stubSource{}, cfg, logger.Default())
	assert.Error(t, err)
}
