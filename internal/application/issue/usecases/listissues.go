package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/issue/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/domain/setting"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/query"
)

type ListIssuesQuery struct {
	ProjectName string
	ActorID     uint
	Search      string
	Sort        string
	Page        int
}

type ListIssuesResult struct {
	Issues   []*dto.IssueListItemDTO
	Total    int64
	Page     int
	PageSize int
	// Errors describes the parts of the search that were ignored.
	Errors []string
}

type ListIssuesUseCase struct {
	issues     issue.Repository
	labels     label.Repository
	milestones milestone.Repository
	users      user.Repository
	settings   setting.Repository
	reads      *ReadTracker
	access     *common.Access
	logger     logger.Interface
}

func NewListIssuesUseCase(
	issues issue.Repository,
	labels label.Repository,
	milestones milestone.Repository,
	users user.Repository,
	settings setting.Repository,
	reads *ReadTracker,
	access *common.Access,
	logger logger.Interface,
) *ListIssuesUseCase {
	return &ListIssuesUseCase{
		issues:     issues,
		labels:     labels,
		milestones: milestones,
		users:      users,
		settings:   settings,
		reads:      reads,
		access:     access,
		logger:     logger,
	}
}

func (uc *ListIssuesUseCase) Execute(ctx context.Context, q ListIssuesQuery) (*ListIssuesResult, error) {
	p, err := uc.access.Project(ctx, q.ActorID, q.ProjectName)
	if err != nil {
		return nil, err
	}

	search := issue.ParseSearch(q.Search)
	filter, errs, err := uc.buildFilter(ctx, p.ID(), search)
	if err != nil {
		return nil, err
	}

	column, desc, ok := issue.ParseSort(q.Sort)
	if !ok {
		errs = append(errs, fmt.Sprintf("unknown sort '%s'", q.Sort))
	}
	filter.SortBy = column
	filter.SortDesc = desc

	s, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	page := query.NewPageFilter(q.Page, s.ItemsPerPage())
	filter.Offset = page.Offset()
	filter.Limit = page.Limit()

	issues, total, err := uc.issues.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list issues", "project_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	// A page past the end shows the last page.
	if len(issues) == 0 && total > 0 && filter.Offset > 0 {
		last := int((total + int64(page.Limit()) - 1) / int64(page.Limit()))
		page = query.NewPageFilter(last, s.ItemsPerPage())
		filter.Offset = page.Offset()
		issues, total, err = uc.issues.List(ctx, filter)
		if err != nil {
			uc.logger.Errorw("failed to list issues", "project_id", p.ID(), "error", err)
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}
	}

	ids := make([]uint, 0, len(issues))
	for _, iss := range issues {
		ids = append(ids, iss.ID())
	}
	unread, err := uc.reads.UnreadEventCounts(ctx, q.ActorID, p.ID(), ids)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.IssueListItemDTO, 0, len(issues))
	for _, iss := range issues {
		items = append(items, &dto.IssueListItemDTO{
			IssueDTO:     dto.ToIssueDTO(iss),
			UnreadEvents: unread[iss.ID()],
		})
	}

	return &ListIssuesResult{
		Issues:   items,
		Total:    total,
		Page:     page.CurrentPage(),
		PageSize: page.Limit(),
		Errors:   errs,
	}, nil
}

// buildFilter resolves the names of a search. Unknown names are reported and
// left out of the filter.
func (uc *ListIssuesUseCase) buildFilter(ctx context.Context, projectID uint, s issue.Search) (issue.Filter, []string, error) {
	filter := issue.Filter{
		ProjectID:   projectID,
		Status:      s.Status,
		NoMilestone: s.NoMilestone,
		NoLabel:     s.NoLabel,
		TitleWords:  s.Words,
	}
	errs := append([]string(nil), s.Errors...)

	for _, name := range s.Labels {
		l, err := uc.labels.GetByName(ctx, projectID, name)
		if err != nil {
			return filter, nil, fmt.Errorf("failed to resolve label: %w", err)
		}
		if l == nil {
			errs = append(errs, fmt.Sprintf("unknown label '%s'", name))
			continue
		}
		filter.LabelIDs = append(filter.LabelIDs, l.ID())
	}

	if s.Milestone != "" {
		m, err := uc.milestones.GetByName(ctx, projectID, s.Milestone)
		if err != nil {
			return filter, nil, fmt.Errorf("failed to resolve milestone: %w", err)
		}
		if m == nil {
			errs = append(errs, fmt.Sprintf("unknown milestone '%s'", s.Milestone))
		} else {
			id := m.ID()
			filter.MilestoneID = &id
		}
	}

	if s.Author != "" {
		u, err := uc.users.GetByUsername(ctx, s.Author)
		if err != nil {
			return filter, nil, fmt.Errorf("failed to resolve author: %w", err)
		}
		if u == nil {
			errs = append(errs, fmt.Sprintf("unknown user '%s'", s.Author))
		} else {
			id := u.ID()
			filter.AuthorID = &id
		}
	}

	return filter, errs, nil
}
