package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"

	"nft_tracker/internal/domain/entity"
	"nft_tracker/internal/domain/service/changes"
	"nft_tracker/pkg/contextx"
	"nft_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const DefaultInterval = 30 * time.Second

type Fetcher interface {
	FetchItems(ctx context.Context) ([]entity.RawItem, error)
}

type Consolidator interface {
	Consolidate(items []entity.RawItem) (entity.Snapshot, error)
}

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot entity.Snapshot, updatedAt time.Time) error
}

type Presenter interface {
	Render(snapshot entity.Snapshot, updatedAt time.Time) error
	Error(err error)
}

type Notifier interface {
	Notify(ctx context.Context, report changes.Report) error
}

type Recorder interface {
	ObserveCycle(err error, duration time.Duration, finishedAt time.Time)
	SetAssets(snapshot entity.Snapshot)
}

type Options struct {
	Policy           changes.Policy
	Interval         time.Duration
	NotifyFirstCycle bool
}

// Status is what the tracker reports about itself to other goroutines.
type Status struct {
	Running     bool
	Policy      changes.Policy
	Interval    time.Duration
	Cycles      int
	Failures    int
	Assets      int
	LastSuccess time.Time
	LastError   string
}

// Tracker polls the storefront, keeps the previous snapshot as the baseline
// for change detection and fans flagged reports out to the notifier.
type Tracker struct {
	fetcher      Fetcher
	consolidator Consolidator
	snapshots    SnapshotRepository
	presenter    Presenter
	notifier     Notifier
	recorder     Recorder
	opts         Options
	now          func() time.Time

	// Owned by the Run goroutine.
	previous entity.Snapshot
	hasBase  bool

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
	status     Status
}

func NewTracker(
	fetcher Fetcher,
	consolidator Consolidator,
	snapshots SnapshotRepository,
	presenter Presenter,
	notifier Notifier,
	recorder Recorder,
	opts Options,
) *Tracker {
	if opts.Policy == "" {
		opts.Policy = changes.PolicyTierChange
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	return &Tracker{
		fetcher:      fetcher,
		consolidator: consolidator,
		snapshots:    snapshots,
		presenter:    presenter,
		notifier:     notifier,
		recorder:     recorder,
		opts:         opts,
		now:          time.Now,
		previous:     entity.Snapshot{},
		status: Status{
			Policy:   opts.Policy,
			Interval: opts.Interval,
		},
	}
}

// WithClock replaces time.Now, for tests.
func (w *Tracker) WithClock(now func() time.Time) *Tracker {
	w.now = now
	return w
}

func (w *Tracker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("tracker is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("tracker stopped with error", logx.Error(err))
		}
	}()

	return nil
}

func (w *Tracker) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *Tracker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

func (w *Tracker) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	status := w.status
	status.Running = w.isRunning
	return status
}

// Ready reports whether at least one cycle succeeded.
func (w *Tracker) Ready() bool {
	return w.Status().Cycles > 0
}

// Run polls until ctx is cancelled. The first cycle starts immediately; the
// next one starts Interval after the previous one finished.
func (w *Tracker) Run(ctx context.Context) error {
	logger(ctx).Info("tracker started",
		slog.String(logx.FieldPolicy, w.opts.Policy.String()),
		slog.Duration("interval", w.opts.Interval),
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("tracker stopped")
			return ctx.Err()
		case <-timer.C:
			_ = w.RunCycle(ctx) //nolint:errcheck // reported inside
			timer.Reset(w.opts.Interval)
		}
	}
}

// RunCycle performs one poll cycle. A failed cycle keeps the previous
// baseline; the error is logged, counted and shown on the presenter.
func (w *Tracker) RunCycle(ctx context.Context) error {
	cycleID := contextx.CycleID(xid.New().String())
	ctx = contextx.WithCycleID(ctx, cycleID)
	ctx = contextx.WithLogger(ctx, logger(ctx).With(logx.Stringer(logx.FieldCycleID, cycleID)))

	start := w.now()
	snapshot, err := w.cycle(ctx)
	finishedAt := w.now()

	w.recorder.ObserveCycle(err, finishedAt.Sub(start), finishedAt)

	w.mu.Lock()
	if err != nil {
		w.status.Failures++
		w.status.LastError = err.Error()
	} else {
		w.status.Cycles++
		w.status.Assets = len(snapshot)
		w.status.LastSuccess = finishedAt
		w.status.LastError = ""
	}
	w.mu.Unlock()

	if err != nil {
		logger(ctx).Warn("cycle failed", logx.Error(err))
		w.presenter.Error(err)
		return err
	}

	logger(ctx).Debug("cycle finished",
		slog.Int(logx.FieldAssets, len(snapshot)),
		slog.Int64(logx.FieldDurationMs, finishedAt.Sub(start).Milliseconds()),
	)

	return nil
}

func (w *Tracker) cycle(ctx context.Context) (entity.Snapshot, error) {
	items, err := w.fetcher.FetchItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetcher.FetchItems: %w", err)
	}

	current, err := w.consolidator.Consolidate(items)
	if err != nil {
		return nil, fmt.Errorf("consolidator.Consolidate: %w", err)
	}

	report := changes.Detect(w.opts.Policy, w.previous, current)
	firstCycle := !w.hasBase
	updatedAt := w.now()

	if err := w.snapshots.Save(ctx, current, updatedAt); err != nil {
		return nil, fmt.Errorf("snapshots.Save: %w", err)
	}

	w.previous = current
	w.hasBase = true
	w.recorder.SetAssets(current)

	w.logReport(ctx, report)

	if err := w.presenter.Render(current, updatedAt); err != nil {
		logger(ctx).Warn("render failed", logx.Error(err))
	}

	if !report.Flagged {
		return current, nil
	}

	if firstCycle && !w.opts.NotifyFirstCycle {
		logger(ctx).Info("first cycle, notification suppressed", slog.Int(logx.FieldAssets, len(report.Added)))
		return current, nil
	}

	if err := w.notifier.Notify(ctx, report); err != nil {
		w.presenter.Error(err)
	}

	return current, nil
}

func (w *Tracker) logReport(ctx context.Context, report changes.Report) {
	for _, t := range report.Transitions {
		logger(ctx).Info("tier changed",
			slog.String(logx.FieldAsset, t.Name),
			logx.Stringer(logx.FieldTierFrom, t.From),
			logx.Stringer(logx.FieldTierTo, t.To),
		)
	}

	if len(report.Added) > 0 {
		logger(ctx).Info("new assets", slog.Any(logx.FieldAssets, report.Added))
	}

	if len(report.Removed) > 0 {
		logger(ctx).Info("assets gone", slog.Any(logx.FieldAssets, report.Removed))
	}
}
