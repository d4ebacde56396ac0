// Worker consumes domain events from Kafka and runs their follow-ups:
// membership events are re-verified against the store and every event is
// written to the audit trail. Set KAFKA_BROKERS, EVENTS_KAFKA_TOPIC, and
// KAFKA_GROUP_ID.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"canopy/backend/internal/audit"
	auditrepo "canopy/backend/internal/audit/repository"
	"canopy/backend/internal/auth/session"
	"canopy/backend/internal/config"
	"canopy/backend/internal/db"
	"canopy/backend/internal/dispatch"
	"canopy/backend/internal/events"
	"canopy/backend/internal/log"
	memberrepo "canopy/backend/internal/workspacemember/repository"
	memberusecase "canopy/backend/internal/workspacemember/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := log.New(cfg.Env)

	brokers := cfg.KafkaBrokersList()
	if len(brokers) == 0 {
		logger.Fatal().Msg("worker: KAFKA_BROKERS is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connect failed")
	}
	defer pool.Close()

	auditLog := audit.NewLogger(auditrepo.NewPostgresRepository(pool), nil, logger)
	checkMembership := memberusecase.NewCheckWorkspaceMembership(memberusecase.Deps{
		Repository: memberrepo.NewPostgresRepository(pool),
	})

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          cfg.EventsKafkaTopic,
		GroupID:        cfg.KafkaGroupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		CommitInterval: time.Second,
	})
	defer reader.Close()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info().Msg("worker: shutting down")
		cancel()
	}()

	logger.Info().Str("topic", cfg.EventsKafkaTopic).Str("group", cfg.KafkaGroupID).Msg("worker: consuming")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info().Msg("worker: stopped")
				return
			}
			logger.Error().Err(err).Msg("worker: kafka read error")
			continue
		}

		var envelope events.Envelope
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			logger.Error().Err(err).Msg("worker: malformed event dropped")
			continue
		}

		handleCtx, handleCancel := context.WithTimeout(ctx, 10*time.Second)
		handle(handleCtx, envelope, checkMembership, auditLog, logger)
		handleCancel()
	}
}

// handle dispatches one event. Handlers run with a session rebuilt from
// the envelope and re-sourced as event, so authorization state does not
// carry over from the original request.
func handle(
	ctx context.Context,
	envelope events.Envelope,
	checkMembership dispatch.UseCase[memberusecase.CheckWorkspaceMembershipParams, bool],
	auditLog audit.AuditLogger,
	logger zerolog.Logger,
) {
	sess, err := session.FromValue(envelope.Session)
	if err == nil {
		sess, err = session.FromEvent(sess)
	}
	if err != nil {
		logger.Error().Err(err).Str("event", envelope.Name).Msg("worker: event session rejected")
		return
	}

	switch envelope.Name {
	case events.WorkspaceMemberAdded:
		workspaceID := envelope.Payload["workspaceId"]
		userID := envelope.Payload["userId"]
		isMember, err := checkMembership(ctx, memberusecase.CheckWorkspaceMembershipParams{
			WorkspaceID: workspaceID,
			UserID:      userID,
		}, sess)
		if err != nil {
			logger.Error().Err(err).Str("workspace_id", workspaceID).Msg("worker: membership check failed")
			return
		}
		if !isMember {
			logger.Warn().Str("workspace_id", workspaceID).Str("user_id", userID).
				Msg("worker: member_added event without a membership record")
			return
		}
		auditLog.LogEvent(ctx, sess.DistinctID(), audit.ActionMemberAdded, "workspace:"+workspaceID, userID)

	case events.WorkspaceMemberRemoved:
		workspaceID := envelope.Payload["workspaceId"]
		userID := envelope.Payload["userId"]
		isMember, err := checkMembership(ctx, memberusecase.CheckWorkspaceMembershipParams{
			WorkspaceID: workspaceID,
			UserID:      userID,
		}, sess)
		if err != nil {
			logger.Error().Err(err).Str("workspace_id", workspaceID).Msg("worker: membership check failed")
			return
		}
		if isMember {
			logger.Warn().Str("workspace_id", workspaceID).Str("user_id", userID).
				Msg("worker: member_removed event but the membership record remains")
			return
		}
		auditLog.LogEvent(ctx, sess.DistinctID(), audit.ActionMemberRemoved, "workspace:"+workspaceID, userID)

	case events.UserCreated:
		auditLog.LogEvent(ctx, sess.DistinctID(), audit.ActionUserCreated, "user:"+envelope.Payload["userId"], "")

	case events.WorkspaceCreated:
		auditLog.LogEvent(ctx, sess.DistinctID(), audit.ActionWorkspaceCreated, "workspace:"+envelope.Payload["workspaceId"], envelope.Payload["ownerId"])

	default:
		logger.Debug().Str("event", envelope.Name).Msg("worker: unhandled event")
	}
}
