package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/issue/dto"
	labeldto "github.com/orris-inc/tracker/internal/application/label/dto"
	milestonedto "github.com/orris-inc/tracker/internal/application/milestone/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type GetIssueQuery struct {
	IssueRef
	ActorID uint
}

// GetIssueUseCase builds the issue page. Viewing an issue marks it as read for the
// actor; the marker from before the visit is returned.
type GetIssueUseCase struct {
	issues      issue.Repository
	events      issue.EventRepository
	subscribers issue.SubscriberRepository
	labels      label.Repository
	milestones  milestone.Repository
	reads       *ReadTracker
	access      *common.Access
	logger      logger.Interface
}

func NewGetIssueUseCase(
	issues issue.Repository,
	events issue.EventRepository,
	subscribers issue.SubscriberRepository,
	labels label.Repository,
	milestones milestone.Repository,
	reads *ReadTracker,
	access *common.Access,
	logger logger.Interface,
) *GetIssueUseCase {
	return &GetIssueUseCase{
		issues:      issues,
		events:      events,
		subscribers: subscribers,
		labels:      labels,
		milestones:  milestones,
		reads:       reads,
		access:      access,
		logger:      logger,
	}
}

func (uc *GetIssueUseCase) Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDetailDTO, error) {
	p, iss, err := loadIssue(ctx, uc.access, uc.issues, query.ActorID, query.IssueRef)
	if err != nil {
		return nil, err
	}

	events, err := uc.events.ListByIssue(ctx, p.ID(), iss.ID())
	if err != nil {
		uc.logger.Errorw("failed to list issue events", "project_id", p.ID(), "issue_id", iss.ID(), "error", err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	detail := &dto.IssueDetailDTO{
		Issue:  dto.ToIssueDTO(iss),
		Events: dto.ToEventDTOs(events),
	}

	if err := uc.fillLabels(ctx, p.ID(), iss, detail); err != nil {
		return nil, err
	}
	if err := uc.fillMilestones(ctx, p.ID(), iss, detail); err != nil {
		return nil, err
	}

	if query.ActorID != 0 {
		subscribed, err := uc.subscribers.IsSubscribed(ctx, p.ID(), iss.ID(), query.ActorID)
		if err != nil {
			return nil, fmt.Errorf("failed to check subscription: %w", err)
		}
		detail.Subscribed = subscribed
	}

	lastRead, err := uc.reads.MarkAsRead(ctx, query.ActorID, p.ID(), iss.ID())
	if err != nil {
		uc.logger.Errorw("failed to mark issue as read", "project_id", p.ID(), "issue_id", iss.ID(), "user_id", query.ActorID, "error", err)
		return nil, err
	}
	detail.LastReadEventID = lastRead

	return detail, nil
}

func (uc *GetIssueUseCase) fillLabels(ctx context.Context, projectID uint, iss *issue.Issue, detail *dto.IssueDetailDTO) error {
	all, err := uc.labels.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to list labels: %w", err)
	}

	attached := make([]*label.Label, 0, len(iss.LabelIDs()))
	available := make([]*label.Label, 0, len(all))
	for _, l := range all {
		if iss.HasLabel(l.ID()) {
			attached = append(attached, l)
		} else {
			available = append(available, l)
		}
	}
	detail.Labels = labeldto.ToLabelDTOs(attached)
	detail.AvailableLabels = labeldto.ToLabelDTOs(available)
	return nil
}

func (uc *GetIssueUseCase) fillMilestones(ctx context.Context, projectID uint, iss *issue.Issue, detail *dto.IssueDetailDTO) error {
	var currentID uint
	if id := iss.MilestoneID(); id != nil {
		m, err := uc.milestones.GetByIDIncludingDeleted(ctx, *id)
		if err != nil {
			return fmt.Errorf("failed to load milestone: %w", err)
		}
		detail.Milestone = milestonedto.ToMilestoneDTO(m)
		currentID = *id
	}

	open, err := uc.milestones.ListByProject(ctx, projectID, milestone.FilterOpen)
	if err != nil {
		return fmt.Errorf("failed to list milestones: %w", err)
	}
	available := make([]*milestone.Milestone, 0, len(open))
	for _, m := range open {
		if m.ID() != currentID {
			available = append(available, m)
		}
	}
	detail.AvailableMilestones = milestonedto.ToMilestoneDTOs(available)
	return nil
}
