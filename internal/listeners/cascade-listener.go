package listeners

import (
	"context"

	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/eventbus"

	"go.uber.org/zap"
)

// CascadeListener keeps equipment lifecycle status in step with the requests
// raised against it. The request write has already committed when this runs.
type CascadeListener struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewCascadeListener(equipmentRepo repositories.EquipmentRepositoryInterface, logger *zap.Logger) *CascadeListener {
	return &CascadeListener{equipmentRepo: equipmentRepo, logger: logger}
}

func (l *CascadeListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestSaved, l.HandleRequestSaved)
}

func (l *CascadeListener) HandleRequestSaved(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestSavedEvent)
	if !ok {
		return nil
	}

	// Every save force-sets the derived equipment status, transition or not,
	// so a directly scrapped machine snaps back while work is still open.
	equipmentStatus, ok := entities.EquipmentStatusFor(e.NewStatus)
	if !ok {
		return nil
	}

	if err := l.equipmentRepo.UpdateStatus(ctx, e.EquipmentID, equipmentStatus); err != nil {
		return err
	}

	l.logger.Info("equipment status cascaded",
		zap.Uint64("equipment_id", e.EquipmentID),
		zap.Uint64("request_id", e.RequestID),
		zap.String("status", equipmentStatus),
	)
	return nil
}
