package listeners

import (
	"context"

	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/eventbus"

	"go.uber.org/zap"
)

// AuditListener appends one trail row per tracked mutation.
type AuditListener struct {
	auditRepo repositories.AuditLogRepositoryInterface
	logger    *zap.Logger
}

func NewAuditListener(auditRepo repositories.AuditLogRepositoryInterface, logger *zap.Logger) *AuditListener {
	return &AuditListener{auditRepo: auditRepo, logger: logger}
}

func (l *AuditListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.EntityMutated, l.HandleEntityMutated)
}

func (l *AuditListener) HandleEntityMutated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.EntityMutatedEvent)
	if !ok {
		return nil
	}

	log := entities.AuditLog{
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		EntityName: e.EntityName,
		Before:     e.Before,
		After:      e.After,
	}
	if e.ActorID != 0 {
		actorID := e.ActorID
		log.UserID = &actorID
	}

	if err := l.auditRepo.Insert(ctx, &log); err != nil {
		l.logger.Error("audit insert failed",
			zap.String("entity_type", e.EntityType),
			zap.Uint64("entity_id", e.EntityID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
