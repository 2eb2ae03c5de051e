package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"nft_tracker/internal/domain"
	"nft_tracker/internal/domain/entity"
	"nft_tracker/internal/domain/service/changes"
	"nft_tracker/internal/domain/service/consolidator"
	"nft_tracker/internal/domain/value"
	"nft_tracker/internal/infrastructure/persistence"
	"nft_tracker/internal/worker"
	"nft_tracker/pkg/errcodes"
)

func item(name string, current, maxQuantity int) entity.RawItem {
	return entity.RawItem{
		Type: consolidator.DefaultItemType,
		Name: name,
		Inventory: &entity.Inventory{
			MaxQuantity:     lo.ToPtr(maxQuantity),
			CurrentQuantity: lo.ToPtr(current),
			Attributes:      value.Traits{{TraitType: value.TraitRarity, Value: "Rare"}},
		},
		Price: &entity.Price{
			CurrencyID:    consolidator.DefaultUSDCCurrencyID,
			NaturalAmount: lo.ToPtr(decimal.NewFromInt(3)),
		},
	}
}

type fetchResult struct {
	items []entity.RawItem
	err   error
}

type fakeFetcher struct {
	mu      sync.Mutex
	results []fetchResult
	calls   int
}

func (f *fakeFetcher) FetchItems(context.Context) ([]entity.RawItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if len(f.results) == 0 {
		return nil, nil
	}

	res := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return res.items, res.err
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakePresenter struct {
	mu      sync.Mutex
	renders []entity.Snapshot
	errs    []error
}

func (f *fakePresenter) Render(snapshot entity.Snapshot, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders = append(f.renders, snapshot)
	return nil
}

func (f *fakePresenter) Error(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
}

type fakeNotifier struct {
	reports []changes.Report
	err     error
}

func (f *fakeNotifier) Notify(_ context.Context, report changes.Report) error {
	f.reports = append(f.reports, report)
	return f.err
}

type fakeRecorder struct {
	mu     sync.Mutex
	ok     int
	failed int
	assets int
}

func (f *fakeRecorder) ObserveCycle(err error, _ time.Duration, _ time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.failed++
		return
	}
	f.ok++
}

func (f *fakeRecorder) SetAssets(snapshot entity.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assets = len(snapshot)
}

type fixture struct {
	fetcher   *fakeFetcher
	repo      *persistence.SnapshotRepository
	presenter *fakePresenter
	notifier  *fakeNotifier
	recorder  *fakeRecorder
	tracker   *worker.Tracker
}

func newFixture(opts worker.Options, results ...fetchResult) *fixture {
	f := &fixture{
		fetcher:   &fakeFetcher{results: results},
		repo:      persistence.NewSnapshotRepository(),
		presenter: &fakePresenter{},
		notifier:  &fakeNotifier{},
		recorder:  &fakeRecorder{},
	}

	f.tracker = worker.NewTracker(
		f.fetcher,
		consolidator.New(consolidator.Options{}),
		f.repo,
		f.presenter,
		f.notifier,
		f.recorder,
		opts,
	)

	return f
}

func ok(items ...entity.RawItem) fetchResult {
	return fetchResult{items: items}
}

func TestTrackerTierChange(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	f := newFixture(worker.Options{Policy: changes.PolicyTierChange},
		ok(item("Relic", 10, 100), item("Banner", 10, 100)),
		ok(item("Relic", 90, 100), item("Banner", 15, 100)),
		ok(item("Relic", 90, 100), item("Banner", 15, 100), item("Crown", 1, 10)),
	)

	rq.NoError(f.tracker.RunCycle(ctx))
	rq.Empty(f.notifier.reports, "first cycle has no baseline to compare")

	rq.NoError(f.tracker.RunCycle(ctx))
	rq.Len(f.notifier.reports, 1)
	rq.Equal([]changes.Transition{{Name: "Relic", From: entity.TierHigh, To: entity.TierSoldOut}}, f.notifier.reports[0].Transitions)

	rq.NoError(f.tracker.RunCycle(ctx))
	rq.Len(f.notifier.reports, 1, "a new asset alone does not flag under tier-change")

	rq.Len(f.presenter.renders, 3)
	rq.Empty(f.presenter.errs)
	rq.Equal(3, f.recorder.ok)
	rq.Equal(3, f.recorder.assets)

	state, err := f.repo.Latest(ctx)
	rq.NoError(err)
	rq.Equal([]string{"Banner", "Crown", "Relic"}, state.Snapshot.Names())

	status := f.tracker.Status()
	rq.Equal(3, status.Cycles)
	rq.Equal(3, status.Assets)
	rq.Equal(changes.PolicyTierChange, status.Policy)
	rq.Equal(worker.DefaultInterval, status.Interval)
	rq.True(f.tracker.Ready())
}

func TestTrackerNewAsset(t *testing.T) {
	testCases := []struct {
		name             string
		notifyFirstCycle bool
		wantReports      [][]string
	}{
		{
			name:        "First cycle suppressed",
			wantReports: [][]string{{"Crown"}},
		},
		{
			name:             "First cycle notified",
			notifyFirstCycle: true,
			wantReports:      [][]string{{"Relic"}, {"Crown"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			ctx := context.Background()

			f := newFixture(worker.Options{Policy: changes.PolicyNewAsset, NotifyFirstCycle: tc.notifyFirstCycle},
				ok(item("Relic", 10, 100)),
				ok(item("Relic", 90, 100)),
				ok(item("Relic", 90, 100), item("Crown", 1, 10)),
			)

			for range 3 {
				rq.NoError(f.tracker.RunCycle(ctx))
			}

			got := lo.Map(f.notifier.reports, func(r changes.Report, _ int) []string { return r.Added })
			rq.Equal(tc.wantReports, got)
		})
	}
}

func TestTrackerFailedCycleKeepsBaseline(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	fetchErr := domain.NewError(errcodes.FetchFailed, "storefront request")

	f := newFixture(worker.Options{},
		ok(item("Relic", 10, 100)),
		fetchResult{err: fetchErr},
		ok(item("Relic", 10, 100), fetchInvalid()),
		ok(item("Relic", 85, 100)),
	)

	rq.NoError(f.tracker.RunCycle(ctx))

	err := f.tracker.RunCycle(ctx)
	rq.ErrorIs(err, fetchErr)
	rq.Equal(errcodes.FetchFailed, lo.Must(domain.GetCode(err)))

	err = f.tracker.RunCycle(ctx)
	rq.True(domain.HasCode(err, errcodes.InvalidItem))

	status := f.tracker.Status()
	rq.Equal(1, status.Cycles)
	rq.Equal(2, status.Failures)
	rq.NotEmpty(status.LastError)

	rq.Len(f.presenter.errs, 2)
	rq.Len(f.presenter.renders, 1)
	rq.Equal(2, f.recorder.failed)

	rq.NoError(f.tracker.RunCycle(ctx))
	rq.Len(f.notifier.reports, 1, "compared against the last successful snapshot")
	rq.Equal(entity.TierHigh, f.notifier.reports[0].Transitions[0].From)
	rq.Equal(entity.TierSoldOut, f.notifier.reports[0].Transitions[0].To)
	rq.Empty(f.tracker.Status().LastError)
}

func fetchInvalid() entity.RawItem {
	broken := item("Broken", 1, 10)
	broken.Price = nil
	return broken
}

func TestTrackerNotifyFailure(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	f := newFixture(worker.Options{},
		ok(item("Relic", 10, 100)),
		ok(item("Relic", 90, 100)),
		ok(item("Relic", 90, 100)),
	)
	f.notifier.err = errors.New("smtp down")

	rq.NoError(f.tracker.RunCycle(ctx))
	rq.NoError(f.tracker.RunCycle(ctx), "notification failure does not fail the cycle")
	rq.Len(f.presenter.errs, 1)

	rq.NoError(f.tracker.RunCycle(ctx))
	rq.Len(f.notifier.reports, 1, "baseline was replaced despite the failed notification")
}

func TestTrackerRun(t *testing.T) {
	rq := require.New(t)

	f := newFixture(worker.Options{Interval: 10 * time.Millisecond}, ok(item("Relic", 10, 100)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- f.tracker.Run(ctx)
	}()

	rq.Eventually(func() bool { return f.fetcher.Calls() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		rq.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		rq.Fail("tracker did not stop")
	}
}

func TestTrackerStartStop(t *testing.T) {
	rq := require.New(t)

	f := newFixture(worker.Options{Interval: time.Hour}, ok(item("Relic", 10, 100)))

	rq.False(f.tracker.IsRunning())
	rq.NoError(f.tracker.Start(context.Background()))
	rq.True(f.tracker.IsRunning())
	rq.Error(f.tracker.Start(context.Background()), "second start is rejected")

	rq.Eventually(f.tracker.Ready, time.Second, 5*time.Millisecond)
	rq.True(f.tracker.Status().Running)

	f.tracker.Stop()
	rq.False(f.tracker.IsRunning())
	rq.Equal(1, f.fetcher.Calls())

	f.tracker.Stop()
}
