package issue

import (
	"time"

	issuedto "github.com/orris-inc/tracker/internal/application/issue/dto"
	"github.com/orris-inc/tracker/internal/application/issue/usecases"
)

type CreateIssueRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	DueDate     *time.Time `json:"due_date"`
	Description string     `json:"description"`
}

func (r CreateIssueRequest) ToCommand(projectName string, actorID uint) usecases.CreateIssueCommand {
	return usecases.CreateIssueCommand{
		ProjectName: projectName,
		ActorID:     actorID,
		Title:       r.Title,
		DueDate:     r.DueDate,
		Description: r.Description,
	}
}

type UpdateIssueRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	DueDate     *time.Time `json:"due_date"`
	Description string     `json:"description"`
}

func (r UpdateIssueRequest) ToCommand(ref usecases.IssueRef, actorID uint) usecases.UpdateIssueCommand {
	return usecases.UpdateIssueCommand{
		IssueRef:    ref,
		ActorID:     actorID,
		Title:       r.Title,
		DueDate:     r.DueDate,
		Description: r.Description,
	}
}

// AddCommentRequest posts a comment. ToggleState closes an open issue or reopens a
// closed one in the same request; the body may then be empty.
type AddCommentRequest struct {
	Body        string `json:"body"`
	ToggleState bool   `json:"toggle_state"`
}

type EditCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

type SetMilestoneRequest struct {
	Name string `json:"name" validate:"required"`
}

// IssueListResponse is a page of issues plus the parts of the search that were
// ignored.
type IssueListResponse struct {
	Items      []*issuedto.IssueListItemDTO `json:"items"`
	Total      int64                        `json:"total"`
	Page       int                          `json:"page"`
	PageSize   int                          `json:"page_size"`
	TotalPages int                          `json:"total_pages"`
	Errors     []string                     `json:"errors,omitempty"`
}

type SubscriptionResponse struct {
	Subscribed bool `json:"subscribed"`
}
