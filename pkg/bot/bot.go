package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lilcord/lilbot/pkg/bot/discord"
	"github.com/lilcord/lilbot/pkg/config"
	"github.com/lilcord/lilbot/pkg/gif"
	"github.com/lilcord/lilbot/pkg/health"
	"github.com/lilcord/lilbot/pkg/match"
	"github.com/lilcord/lilbot/pkg/metrics"
	"github.com/lilcord/lilbot/pkg/moderation"
	"github.com/lilcord/lilbot/pkg/status"
)

// NewLogger builds the process logger from config.
func NewLogger() (*zap.Logger, error) {
	if config.C.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// OpenStatusStore opens the status store configured in config.
func OpenStatusStore(logger *zap.Logger) (*status.Store, error) {
	owners := lo.SliceToMap(config.C.Status.Subjects, func(s *config.SubjectConfig) (string, string) {
		return s.Name, s.Owner
	})
	return status.Open(config.C.Status.Dir, status.Mode(config.C.Status.Mode), owners, logger)
}

// NewMatchClient creates the vlr.gg client configured in config.
func NewMatchClient() *match.Client {
	return match.NewClient(match.Options{
		Origin:  config.C.Match.Origin,
		Site:    config.C.Match.Site,
		Timeout: config.C.Match.Timeout,
		Limit:   config.C.Match.Limit,
	})
}

func Run(ctx context.Context) error {
	// Initialize logger
	logger, err := NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if config.C.Discord.Token == "" {
		return errors.New("discord token is not set (DISCORD_TOKEN)")
	}
	if config.C.Giphy.APIKey == "" {
		logger.Warn("giphy api key is not set, interaction commands will not find GIFs")
	}

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(reg); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	// Initialize collaborators
	store, err := OpenStatusStore(logger)
	if err != nil {
		return fmt.Errorf("opening status store: %w", err)
	}
	gifs := gif.NewClient(gif.Options{
		Origin:  config.C.Giphy.Origin,
		APIKey:  config.C.Giphy.APIKey,
		Limit:   config.C.Giphy.Limit,
		Rating:  config.C.Giphy.Rating,
		Lang:    config.C.Giphy.Lang,
		Timeout: config.C.Giphy.Timeout,
	})
	matches := NewMatchClient()

	session, err := discord.NewSession(config.C.Discord.Token)
	if err != nil {
		return err
	}
	limiter := rate.NewLimiter(rate.Limit(config.C.Send.Rate), config.C.Send.Burst)
	tracker := match.NewTracker(matches, discord.NewCardEditor(session, limiter), config.C.Match.Interval, logger)
	defer tracker.Close()

	// Compile commands
	cmds, err := Compile(&Deps{
		Roles:   config.C.Roles,
		Status:  store,
		Gifs:    gifs,
		Matches: matches,
		Tracker: tracker,
	})
	if err != nil {
		return fmt.Errorf("compiling commands: %w", err)
	}

	// Initialize bot
	filter := moderation.NewFilter(config.C.Moderation.BannedToken, config.C.Moderation.Warning, config.C.Prefix)
	b := discord.NewBot(session, cmds, filter, limiter, logger)

	// Start bot and liveness server
	return runWithLiveness(ctx, logger,
		func(ctx context.Context) error {
			return health.Serve(ctx, config.C.Health.Port, reg, logger)
		},
		func(ctx context.Context) error {
			if err := b.Start(ctx); err != nil {
				return fmt.Errorf("starting bot: %w", err)
			}
			return nil
		},
	)
}

// runWithLiveness runs bot until it returns and liveness beside it. A liveness
// failure is logged and never stops the bot.
func runWithLiveness(ctx context.Context, logger *zap.Logger, liveness, bot func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := liveness(ctx); err != nil {
			logger.Error("liveness server stopped", zap.Error(err))
		}
	}()

	err := bot(ctx)
	cancel()
	<-done
	return err
}
