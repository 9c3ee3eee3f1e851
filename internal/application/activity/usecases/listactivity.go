package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/activity/dto"
	"github.com/orris-inc/tracker/internal/application/common"
	issuedto "github.com/orris-inc/tracker/internal/application/issue/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/setting"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/query"
	"github.com/orris-inc/tracker/internal/shared/utils/setutil"
)

type ListActivityQuery struct {
	ProjectName string
	ActorID     uint
	Page        int
}

type ListActivityResult struct {
	Entries  []*dto.ActivityEntryDTO
	Total    int64
	Page     int
	PageSize int
}

// ListActivityUseCase pages through the events of a project, newest first.
type ListActivityUseCase struct {
	events   issue.EventRepository
	issues   issue.Repository
	users    user.Repository
	settings setting.Repository
	access   *common.Access
	logger   logger.Interface
}

func NewListActivityUseCase(
	events issue.EventRepository,
	issues issue.Repository,
	users user.Repository,
	settings setting.Repository,
	access *common.Access,
	logger logger.Interface,
) *ListActivityUseCase {
	return &ListActivityUseCase{
		events:   events,
		issues:   issues,
		users:    users,
		settings: settings,
		access:   access,
		logger:   logger,
	}
}

func (uc *ListActivityUseCase) Execute(ctx context.Context, q ListActivityQuery) (*ListActivityResult, error) {
	p, err := uc.access.Project(ctx, q.ActorID, q.ProjectName)
	if err != nil {
		return nil, err
	}

	s, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	page := query.NewPageFilter(q.Page, s.ItemsPerPage())

	events, total, err := uc.events.ListByProject(ctx, p.ID(), page.Offset(), page.Limit())
	if err != nil {
		uc.logger.Errorw("failed to list activity", "project_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	titles, err := uc.issueTitles(ctx, p.ID(), events)
	if err != nil {
		return nil, err
	}
	authors, err := uc.authorNames(ctx, events)
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.ActivityEntryDTO, 0, len(events))
	for _, ev := range events {
		entries = append(entries, &dto.ActivityEntryDTO{
			EventDTO:   issuedto.ToEventDTO(ev),
			IssueTitle: titles[ev.IssueID()],
			AuthorName: authors[ev.AuthorID()],
		})
	}

	return &ListActivityResult{
		Entries:  entries,
		Total:    total,
		Page:     page.CurrentPage(),
		PageSize: page.Limit(),
	}, nil
}

func (uc *ListActivityUseCase) issueTitles(ctx context.Context, projectID uint, events []*issue.Event) (map[uint]string, error) {
	titles := make(map[uint]string)
	for _, ev := range events {
		if _, ok := titles[ev.IssueID()]; ok {
			continue
		}
		iss, err := uc.issues.Get(ctx, projectID, ev.IssueID())
		if err != nil {
			return nil, fmt.Errorf("failed to load issue: %w", err)
		}
		if iss != nil {
			titles[ev.IssueID()] = iss.Title()
		} else {
			titles[ev.IssueID()] = ""
		}
	}
	return titles, nil
}

func (uc *ListActivityUseCase) authorNames(ctx context.Context, events []*issue.Event) (map[uint]string, error) {
	names := map[uint]string{0: "Anonymous"}
	ids := setutil.New[uint]()
	for _, ev := range events {
		if id := ev.AuthorID(); id != 0 {
			ids.Add(id)
		}
	}

	users, err := uc.users.GetByIDs(ctx, ids.Sorted())
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	for _, u := range users {
		names[u.ID()] = u.DisplayName()
	}
	return names, nil
}
