package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/students-api/internal/config"
	loggerConfig "github.com/deppfellow/students-api/internal/logger"
	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newMongoClient connects a mongo-driver client.
//
// Command monitoring mirrors the postgres tracers: New Relic segments when
// the agent runs, command logging in the local environment, both chained
// when both apply.
func newMongoClient(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetMaxPoolSize(uint64(cfg.Database.MaxOpenConns)).
		SetMaxConnIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)

	var monitors []*event.CommandMonitor

	if loggerService.GetApplication() != nil {
		monitors = append(monitors, nrmongo.NewCommandMonitor(nil))
	}

	if cfg.Primary.Env == "local" {
		threshold := time.Duration(0)
		if cfg.Observability != nil {
			threshold = cfg.Observability.Logging.SlowQueryThreshold
		}
		monitors = append(monitors, newCommandLogger(loggerConfig.NewPgxLogger(logger.GetLevel()), threshold))
	}

	if len(monitors) > 0 {
		opts.SetMonitor(chainMonitors(monitors...))
	}

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	return client, nil
}

// newCommandLogger logs every command at debug level and slow or failed
// commands at warn level.
func newCommandLogger(logger zerolog.Logger, slowThreshold time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			logger.Debug().
				Str("command", evt.CommandName).
				Str("database", evt.DatabaseName).
				Int64("request_id", evt.RequestID).
				Str("statement", evt.Command.String()).
				Msg("mongo command started")
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			e := logger.Debug()
			if slowThreshold > 0 && evt.Duration > slowThreshold {
				e = logger.Warn().Bool("slow", true)
			}
			e.Str("command", evt.CommandName).
				Int64("request_id", evt.RequestID).
				Dur("duration", evt.Duration).
				Msg("mongo command succeeded")
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			logger.Warn().
				Str("command", evt.CommandName).
				Int64("request_id", evt.RequestID).
				Dur("duration", evt.Duration).
				Str("failure", evt.Failure).
				Msg("mongo command failed")
		},
	}
}

// chainMonitors fans each command event out to every monitor.
func chainMonitors(monitors ...*event.CommandMonitor) *event.CommandMonitor {
	if len(monitors) == 1 {
		return monitors[0]
	}

	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			for _, m := range monitors {
				if m.Started != nil {
					m.Started(ctx, evt)
				}
			}
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			for _, m := range monitors {
				if m.Succeeded != nil {
					m.Succeeded(ctx, evt)
				}
			}
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			for _, m := range monitors {
				if m.Failed != nil {
					m.Failed(ctx, evt)
				}
			}
		},
	}
}
