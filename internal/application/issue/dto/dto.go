package dto

import (
	"encoding/json"
	"time"

	labeldto "github.com/orris-inc/tracker/internal/application/label/dto"
	milestonedto "github.com/orris-inc/tracker/internal/application/milestone/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/shared/mapper"
)

type IssueDTO struct {
	ProjectID   uint       `json:"project_id"`
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Closed      bool       `json:"closed"`
	AuthorID    uint       `json:"author_id"`
	MilestoneID *uint      `json:"milestone_id"`
	LabelIDs    []uint     `json:"label_ids"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IssueListItemDTO is one row of an issue listing with the actor's unread count.
type IssueListItemDTO struct {
	*IssueDTO
	UnreadEvents int64 `json:"unread_events"`
}

// EventDTO carries an event with its args encoded the way they are stored.
type EventDTO struct {
	ID        uint            `json:"id"`
	ProjectID uint            `json:"project_id"`
	IssueID   uint            `json:"issue_id"`
	AuthorID  uint            `json:"author_id"`
	Code      string          `json:"code"`
	Args      json.RawMessage `json:"args,omitempty"`
	Body      string          `json:"body,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// IssueDetailDTO is the issue page. LastReadEventID is the marker value from before
// this visit; nil when the actor never opened the issue.
type IssueDetailDTO struct {
	Issue               *IssueDTO                    `json:"issue"`
	Events              []*EventDTO                  `json:"events"`
	Labels              []*labeldto.LabelDTO         `json:"labels"`
	Milestone           *milestonedto.MilestoneDTO   `json:"milestone"`
	AvailableLabels     []*labeldto.LabelDTO         `json:"available_labels"`
	AvailableMilestones []*milestonedto.MilestoneDTO `json:"available_milestones"`
	LastReadEventID     *uint                        `json:"last_read_event_id"`
	Subscribed          bool                         `json:"subscribed"`
}

func ToIssueDTO(iss *issue.Issue) *IssueDTO {
	if iss == nil {
		return nil
	}
	return &IssueDTO{
		ProjectID:   iss.ProjectID(),
		ID:          iss.ID(),
		Title:       iss.Title(),
		Description: iss.Description(),
		DueDate:     iss.DueDate(),
		Closed:      iss.IsClosed(),
		AuthorID:    iss.AuthorID(),
		MilestoneID: iss.MilestoneID(),
		LabelIDs:    iss.LabelIDs(),
		CreatedAt:   iss.CreatedAt(),
		UpdatedAt:   iss.UpdatedAt(),
	}
}

func ToEventDTO(ev *issue.Event) *EventDTO {
	if ev == nil {
		return nil
	}
	d := &EventDTO{
		ID:        ev.ID(),
		ProjectID: ev.ProjectID(),
		IssueID:   ev.IssueID(),
		AuthorID:  ev.AuthorID(),
		Code:      string(ev.Code()),
		Body:      ev.Body(),
		CreatedAt: ev.CreatedAt(),
	}
	if args, err := issue.MarshalPayload(ev.Payload()); err == nil && string(args) != "{}" {
		d.Args = args
	}
	return d
}

func ToEventDTOs(events []*issue.Event) []*EventDTO {
	return mapper.MapSlice(events, ToEventDTO)
}
