package cmd

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/messaging"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/tracing"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the background worker",
	Long:  `Start the background worker that expires guarantees and keeps the client search index in sync`,
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app, err := bootstrap(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("queue", cfg.Azure.QueueName).Msg("Starting Azure Service Bus consumer")
		return app.bus.Consume(ctx, reindexHandler(app.services.Clients))
	})

	g.Go(func() error {
		log.Info().Dur("interval", cfg.Worker.GuaranteeSweepInterval).Msg("Starting guarantee expiry job")

		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return err
		}

		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Worker.GuaranteeSweepInterval),
			gocron.NewTask(func() {
				expireGuarantees(ctx, app.tracer, app.services.Orders)
			}),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return err
		}

		scheduler.Start()
		<-ctx.Done()
		return scheduler.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker error")
		return err
	}

	log.Info().Msg("Worker shutting down gracefully")
	return nil
}

func expireGuarantees(ctx context.Context, tracer *tracing.Tracer, orders *services.OrderService) {
	ctx, txn := tracer.StartTransaction(ctx, "guarantee-expiry")
	defer txn.End()

	if _, err := orders.ExpireGuarantees(ctx); err != nil {
		tracing.NoticeError(ctx, err)
		log.Error().Err(err).Msg("Failed to expire guarantees")
	}
}

// reindexHandler keeps the search index in step with client events
func reindexHandler(clients *services.ClientService) messaging.Handler {
	return func(ctx context.Context, event messaging.Event) error {
		switch event.Type {
		case messaging.ClientCreated, messaging.ClientUpdated, messaging.ClientDeleted:
		default:
			return nil
		}

		var payload struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(event.Payload, &payload); err != nil || payload.ID == "" {
			log.Warn().Str("event", event.Type).Msg("Skipping client event without id")
			return nil
		}
		return clients.ReindexClient(ctx, payload.ID)
	}
}
