package issue

import (
	"fmt"
	"strings"
	"time"
)

// Event is one immutable entry of an issue's history. Only COMMENT events can be
// edited (body only) or deleted. Ids ascend in insertion order.
type Event struct {
	id        uint
	projectID uint
	issueID   uint
	authorID  uint
	payload   Payload
	body      string
	createdAt time.Time
}

func newEvent(projectID, issueID, authorID uint, payload Payload, body string) *Event {
	return &Event{
		projectID: projectID,
		issueID:   issueID,
		authorID:  authorID,
		payload:   payload,
		body:      body,
		createdAt: time.Now(),
	}
}

// NewComment builds a COMMENT event for the issue. The text must not be blank.
func NewComment(iss *Issue, authorID uint, body string) (*Event, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyComment
	}
	return newEvent(iss.projectID, iss.id, authorID, CommentPayload{}, body), nil
}

// NewMilestoneRenamed builds the CHANGE_MILESTONE event appended to every issue
// attached to a milestone when that milestone is renamed.
func NewMilestoneRenamed(iss *Issue, authorID uint, oldName, newName string) *Event {
	return newEvent(iss.projectID, iss.id, authorID, ChangeMilestonePayload{
		OldMilestone: oldName,
		NewMilestone: newName,
	}, "")
}

func ReconstructEvent(
	id, projectID, issueID, authorID uint,
	payload Payload,
	body string,
	createdAt time.Time,
) (*Event, error) {
	if id == 0 {
		return nil, fmt.Errorf("event ID cannot be zero")
	}
	if payload == nil {
		return nil, fmt.Errorf("event payload is required")
	}
	return &Event{
		id:        id,
		projectID: projectID,
		issueID:   issueID,
		authorID:  authorID,
		payload:   payload,
		body:      body,
		createdAt: createdAt,
	}, nil
}

func (e *Event) ID() uint             { return e.id }
func (e *Event) ProjectID() uint      { return e.projectID }
func (e *Event) IssueID() uint        { return e.issueID }
func (e *Event) AuthorID() uint       { return e.authorID }
func (e *Event) Code() Code           { return e.payload.Code() }
func (e *Event) Payload() Payload     { return e.payload }
func (e *Event) Body() string         { return e.body }
func (e *Event) CreatedAt() time.Time { return e.createdAt }

func (e *Event) IsComment() bool {
	return e.Code() == CodeComment
}

func (e *Event) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("event ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("event ID cannot be zero")
	}
	e.id = id
	return nil
}

// EditableBy reports whether actorID may edit this event: its author always can,
// anyone else needs elevated rights (privileged).
func (e *Event) EditableBy(actorID uint, privileged bool) bool {
	if actorID != 0 && actorID == e.authorID {
		return true
	}
	return privileged
}

// EditBody replaces the text of a comment in place. It reports false when the text
// is unchanged.
func (e *Event) EditBody(body string) (bool, error) {
	if !e.IsComment() {
		return false, ErrNotAComment
	}
	if strings.TrimSpace(body) == "" {
		return false, ErrEmptyComment
	}
	if body == e.body {
		return false, nil
	}
	e.body = body
	return true, nil
}
