package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubhub/giveaway-backend/api/routes"
	"github.com/clubhub/giveaway-backend/internal/config"
	"github.com/clubhub/giveaway-backend/internal/handlers"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"github.com/clubhub/giveaway-backend/internal/repositories/memory"
	mongorepo "github.com/clubhub/giveaway-backend/internal/repositories/mongodb"
	"github.com/clubhub/giveaway-backend/internal/scheduler"
	"github.com/clubhub/giveaway-backend/internal/services"
	"github.com/clubhub/giveaway-backend/pkg/mongodb"
	"github.com/clubhub/giveaway-backend/pkg/notify"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

type repos struct {
	giveaway     repositories.GiveawayRepository
	prize        repositories.PrizeRepository
	entry        repositories.EntryRepository
	winner       repositories.WinnerRepository
	raffle       repositories.RaffleEventRepository
	slot         repositories.RaffleSlotRepository
	activity     repositories.ActivityRepository
	member       repositories.MemberRepository
	notification repositories.NotificationRepository
}

func main() {
	// Load .env if present, environment variables take precedence
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	var r repos
	if cfg.MongoDB.Mock {
		slog.Warn("Using in-memory repositories, data will not persist")
		r = memoryRepos()
	} else {
		client, err := mongodb.NewClient(cfg.MongoDB.URI)
		if err != nil {
			slog.Error("Failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				slog.Error("Error disconnecting from MongoDB", "error", err)
			}
		}()
		r = mongoRepos(client, cfg.MongoDB.Database)
	}

	var sink notify.Sink
	if cfg.Notify.MockWebhook || cfg.Notify.WebhookURL == "" {
		sink = notify.NewMockSink()
	} else {
		sink = notify.NewWebhookSink(cfg.Notify.WebhookURL, cfg.Notify.AuthToken)
	}

	notificationService := services.NewNotificationService(r.notification, sink)
	pointsService := services.NewPointsService(r.activity, cfg.Points.LoginAward, cfg.Points.ApplicationAward, cfg.Points.RetentionMonths)
	giveawayService := services.NewGiveawayService(r.giveaway, r.prize, r.entry, r.winner)
	drawService := services.NewDrawService(r.giveaway, r.prize, r.entry, r.winner, notificationService,
		time.Duration(cfg.Draw.GraceWindowSeconds)*time.Second)
	entryService := services.NewEntryService(r.giveaway, r.entry)
	raffleService := services.NewRaffleService(r.raffle, r.slot, pointsService)
	authService := services.NewAuthService(r.member, pointsService, cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiresIn)*time.Second)

	deps := routes.HandlerDependencies{
		AuthHandler:     handlers.NewAuthHandler(authService),
		GiveawayHandler: handlers.NewGiveawayHandler(giveawayService, drawService, entryService, notificationService),
		RaffleHandler:   handlers.NewRaffleHandler(raffleService),
		PointsHandler:   handlers.NewPointsHandler(pointsService, giveawayService),
	}

	router := routes.SetupRouter(cfg, deps)

	sched := scheduler.NewScheduler(drawService, pointsService,
		time.Duration(cfg.Draw.SweepIntervalSeconds)*time.Second)
	sched.Start()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

func mongoRepos(client *mongodb.Client, dbName string) repos {
	db := client.Database(dbName)
	return repos{
		giveaway:     mongorepo.NewGiveawayRepository(db),
		prize:        mongorepo.NewPrizeRepository(db),
		entry:        mongorepo.NewEntryRepository(db),
		winner:       mongorepo.NewWinnerRepository(db),
		raffle:       mongorepo.NewRaffleEventRepository(db),
		slot:         mongorepo.NewRaffleSlotRepository(db),
		activity:     mongorepo.NewActivityRepository(db),
		member:       mongorepo.NewMemberRepository(db),
		notification: mongorepo.NewNotificationRepository(db),
	}
}

func memoryRepos() repos {
	return repos{
		giveaway:     memory.NewGiveawayRepository(),
		prize:        memory.NewPrizeRepository(),
		entry:        memory.NewEntryRepository(),
		winner:       memory.NewWinnerRepository(),
		raffle:       memory.NewRaffleEventRepository(),
		slot:         memory.NewRaffleSlotRepository(),
		activity:     memory.NewActivityRepository(),
		member:       memory.NewMemberRepository(),
		notification: memory.NewNotificationRepository(),
	}
}
