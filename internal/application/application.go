package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mymmrac/telego"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"nft_tracker/internal/config"
	"nft_tracker/internal/domain"
	"nft_tracker/internal/domain/service/changes"
	"nft_tracker/internal/domain/service/consolidator"
	"nft_tracker/internal/infrastructure/notifier"
	"nft_tracker/internal/infrastructure/persistence"
	"nft_tracker/internal/infrastructure/presenter"
	"nft_tracker/internal/infrastructure/secrets"
	"nft_tracker/internal/infrastructure/storefront"
	"nft_tracker/internal/metrics"
	"nft_tracker/internal/server"
	"nft_tracker/internal/transport/bot"
	"nft_tracker/internal/transport/bot/handler"
	"nft_tracker/internal/worker"
	"nft_tracker/pkg/application/modules"
	"nft_tracker/pkg/contextx"
	"nft_tracker/pkg/errcodes"
	"nft_tracker/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run wires the tracker and its optional servers and blocks until ctx is
// cancelled or one of them fails. The table is drawn on out.
func Run(ctx context.Context, cfg config.Config, out io.Writer) error {
	// 1. Credentials
	if cfg.Secrets.Name != "" {
		provider, err := secrets.NewAWSProvider(ctx, cfg.Secrets.Region)
		if err != nil {
			return fmt.Errorf("secrets.NewAWSProvider: %w", err)
		}

		if err := secrets.Apply(ctx, provider, cfg.Secrets.Name, &cfg); err != nil {
			return fmt.Errorf("secrets.Apply: %w", err)
		}
		logger(ctx).Info("credentials loaded from secret store")
	}

	if err := checkCredentials(cfg); err != nil {
		return err
	}

	// 2. Storefront
	client, err := storefront.NewClient(cfg.Storefront)
	if err != nil {
		return fmt.Errorf("storefront.NewClient: %w", err)
	}

	// 3. Presentation, storage and metrics
	snapshots := persistence.NewSnapshotRepository()

	table := presenter.NewTable(out, presenter.Options{
		SecondaryLabel: cfg.Table.SecondaryLabel,
		ClearScreen:    cfg.Table.ClearScreen,
		NoColor:        cfg.Table.NoColor,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewTracker(registry)

	// 4. Notification channels
	var tgBot *telego.Bot
	if cfg.Bot.Enabled() {
		tgBot, err = telego.NewBot(cfg.Bot.Token)
		if err != nil {
			return fmt.Errorf("telego.NewBot: %w", err)
		}
	}

	channels, err := newChannels(ctx, cfg, table, tgBot)
	if err != nil {
		return err
	}

	multi := notifier.NewMulti(channels...).WithObserver(recorder.ObserveNotification)
	logger(ctx).Info("notification channels", logx.Stringer(logx.FieldPolicy, cfg.Tracker.NotifyPolicy()), slog.Any(logx.FieldChannel, multi.Channels()))

	// 5. Tracker
	tracker := worker.NewTracker(
		client,
		consolidator.New(consolidator.Options{
			ItemType:            cfg.Storefront.ItemType,
			USDCCurrencyID:      cfg.Storefront.USDCCurrencyID,
			SecondaryCurrencyID: cfg.Storefront.SecondaryCurrencyID,
		}),
		snapshots,
		table,
		multi,
		recorder,
		worker.Options{
			Policy:           cfg.Tracker.NotifyPolicy(),
			Interval:         cfg.Tracker.Interval,
			NotifyFirstCycle: cfg.Tracker.NotifyFirstCycle,
		},
	)

	// 6. Modules
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Servers.MetricsAddr != "" {
		modules.MetricServer{
			ListenAddress: cfg.Servers.MetricsAddr,
			Gatherer:      registry,
		}.Run(ctx, g)
	}

	if cfg.Servers.ProbeAddr != "" {
		modules.ProbeServer{
			Name:          cfg.App.Name,
			Version:       cfg.App.Version,
			ListenAddress: cfg.Servers.ProbeAddr,
			Ready:         tracker.Ready,
		}.Run(ctx, g)
	}

	if cfg.Servers.HTTPAddr != "" {
		srv := server.NewServer(server.NewAssetServer(snapshots))

		modules.HTTPServer{
			ListenAddress:   cfg.Servers.HTTPAddr,
			Handler:         srv.Handler(logx.NewSensitiveDataMasker(), cfg.Storefront.LogFieldMaxLen),
			ShutdownTimeout: cfg.Servers.ShutdownTimeout,
		}.Run(ctx, g)
	}

	if tgBot != nil && cfg.Bot.AdminID != 0 {
		commandBot := bot.New(tgBot, handler.New(tracker, snapshots), cfg.Bot.AdminID)

		g.Go(func() error {
			if err := commandBot.Run(ctx); err != nil {
				return fmt.Errorf("commandBot.Run: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := tracker.Start(ctx); err != nil {
			return fmt.Errorf("tracker.Start: %w", err)
		}

		<-ctx.Done()

		logger(ctx).Info("application stopping...")
		tracker.Stop()

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	return nil
}

func checkCredentials(cfg config.Config) error {
	if cfg.Storefront.APIKey == "" {
		return domain.NewError(errcodes.InvalidConfig, "STOREFRONT_API_KEY is empty")
	}

	if cfg.Tracker.NotifyPolicy() == changes.PolicyNewAsset && !cfg.SMTP.Ready() {
		return domain.NewError(errcodes.InvalidConfig, "new-asset policy needs SMTP_SENDER, SMTP_PASSWORD and SMTP_RECIPIENTS")
	}

	return nil
}

func newChannels(ctx context.Context, cfg config.Config, table *presenter.Table, tgBot *telego.Bot) ([]notifier.Channel, error) {
	var channels []notifier.Channel

	if cfg.Audio.EnabledFor(cfg.Tracker.NotifyPolicy()) {
		channels = append(channels, notifier.NewAudio(table.Out(), cfg.Audio.Command))
	}

	if cfg.SMTP.Ready() {
		email, err := notifier.NewEmail(cfg.SMTP)
		if err != nil {
			return nil, fmt.Errorf("notifier.NewEmail: %w", err)
		}
		channels = append(channels, email)
	}

	if tgBot != nil {
		tg := notifier.NewTelegram(tgBot, cfg.Bot.ChatID)

		if err := tg.SendText(ctx, "🚀 NFT tracker started"); err != nil {
			logger(ctx).Warn("telegram test message failed, check BOT_TOKEN and BOT_CHAT_ID", logx.Error(err))
		}

		channels = append(channels, tg)
	}

	return channels, nil
}
