package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
)

// IssueMapper converts issues and their events. Label links live in their own
// table and are passed in separately.
type IssueMapper interface {
	ToModel(iss *issue.Issue) *models.IssueModel
	ToDomain(model *models.IssueModel, labelIDs []uint) (*issue.Issue, error)
	EventToModel(ev *issue.Event) (*models.EventModel, error)
	EventToDomain(model *models.EventModel) (*issue.Event, error)
}

type IssueMapperImpl struct{}

func NewIssueMapper() IssueMapper {
	return &IssueMapperImpl{}
}

func (m *IssueMapperImpl) ToModel(iss *issue.Issue) *models.IssueModel {
	return &models.IssueModel{
		ProjectID:   iss.ProjectID(),
		ID:          iss.ID(),
		Title:       iss.Title(),
		Description: iss.Description(),
		DueDate:     iss.DueDate(),
		Closed:      iss.IsClosed(),
		AuthorID:    iss.AuthorID(),
		MilestoneID: iss.MilestoneID(),
		CreatedAt:   iss.CreatedAt(),
		UpdatedAt:   iss.UpdatedAt(),
	}
}

func (m *IssueMapperImpl) ToDomain(model *models.IssueModel, labelIDs []uint) (*issue.Issue, error) {
	if model == nil {
		return nil, nil
	}
	dueDate := model.DueDate
	if dueDate != nil {
		d := dueDate.UTC()
		dueDate = &d
	}
	return issue.ReconstructIssue(
		model.ProjectID,
		model.ID,
		model.Title,
		model.Description,
		dueDate,
		model.Closed,
		model.AuthorID,
		model.MilestoneID,
		labelIDs,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *IssueMapperImpl) EventToModel(ev *issue.Event) (*models.EventModel, error) {
	args, err := issue.MarshalPayload(ev.Payload())
	if err != nil {
		return nil, err
	}
	return &models.EventModel{
		ID:        ev.ID(),
		ProjectID: ev.ProjectID(),
		IssueID:   ev.IssueID(),
		AuthorID:  ev.AuthorID(),
		Code:      string(ev.Code()),
		Args:      datatypes.JSON(args),
		Body:      ev.Body(),
		CreatedAt: ev.CreatedAt(),
	}, nil
}

func (m *IssueMapperImpl) EventToDomain(model *models.EventModel) (*issue.Event, error) {
	if model == nil {
		return nil, nil
	}
	payload, err := issue.UnmarshalPayload(issue.Code(model.Code), model.Args)
	if err != nil {
		return nil, fmt.Errorf("event %d: %w", model.ID, err)
	}
	return issue.ReconstructEvent(
		model.ID,
		model.ProjectID,
		model.IssueID,
		model.AuthorID,
		payload,
		model.Body,
		model.CreatedAt,
	)
}
