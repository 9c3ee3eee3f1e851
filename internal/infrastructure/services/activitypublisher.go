package services

import (
	"context"

	"github.com/orris-inc/tracker/internal/application/activity/dto"
	issuedto "github.com/orris-inc/tracker/internal/application/issue/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/notification"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// ActivityRelay forwards activity to other instances.
type ActivityRelay interface {
	Publish(ctx context.Context, msg *dto.ActivityMessage) error
}

// ActivityPublisher pushes appended events to local listeners and, when a relay is
// configured, to the other instances.
type ActivityPublisher struct {
	hub    *ActivityHub
	relay  ActivityRelay
	logger logger.Interface
}

var _ notification.Publisher = (*ActivityPublisher)(nil)

// NewActivityPublisher creates a publisher. relay may be nil for a single instance.
func NewActivityPublisher(hub *ActivityHub, relay ActivityRelay, logger logger.Interface) *ActivityPublisher {
	return &ActivityPublisher{hub: hub, relay: relay, logger: logger}
}

func (p *ActivityPublisher) PublishEvents(ctx context.Context, events ...*issue.Event) {
	for _, ev := range events {
		msg := issuedto.ToEventDTO(ev)
		if msg == nil {
			continue
		}
		p.hub.Broadcast(msg)

		if p.relay == nil {
			continue
		}
		if err := p.relay.Publish(ctx, msg); err != nil {
			p.logger.Warnw("failed to relay activity",
				"project_id", msg.ProjectID,
				"event_id", msg.ID,
				"error", err,
			)
		}
	}
}
