package issue

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const maxTitleLength = 255

// Issue belongs to one project and is identified there by a sequential id that is
// assigned once at creation. The description is stored on the issue itself and has
// no history; title, due date and open/closed changes are recorded as events.
type Issue struct {
	projectID   uint
	id          uint
	title       string
	description string
	dueDate     *time.Time
	closed      bool
	authorID    uint
	milestoneID *uint
	labelIDs    []uint
	createdAt   time.Time
	updatedAt   time.Time
}

// NewIssue validates the fields of a new, open issue. The id is assigned by the
// repository when the issue is saved.
func NewIssue(projectID, authorID uint, title, description string, dueDate *time.Time) (*Issue, error) {
	if projectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Issue{
		projectID:   projectID,
		title:       title,
		description: description,
		dueDate:     truncateDueDate(dueDate),
		authorID:    authorID,
		labelIDs:    []uint{},
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructIssue(
	projectID, id uint,
	title, description string,
	dueDate *time.Time,
	closed bool,
	authorID uint,
	milestoneID *uint,
	labelIDs []uint,
	createdAt, updatedAt time.Time,
) (*Issue, error) {
	if projectID == 0 || id == 0 {
		return nil, fmt.Errorf("issue key cannot be zero")
	}
	if labelIDs == nil {
		labelIDs = []uint{}
	}
	return &Issue{
		projectID:   projectID,
		id:          id,
		title:       title,
		description: description,
		dueDate:     dueDate,
		closed:      closed,
		authorID:    authorID,
		milestoneID: milestoneID,
		labelIDs:    labelIDs,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (i *Issue) ProjectID() uint      { return i.projectID }
func (i *Issue) ID() uint             { return i.id }
func (i *Issue) Title() string        { return i.title }
func (i *Issue) Description() string  { return i.description }
func (i *Issue) IsClosed() bool       { return i.closed }
func (i *Issue) AuthorID() uint       { return i.authorID }
func (i *Issue) MilestoneID() *uint   { return i.milestoneID }
func (i *Issue) CreatedAt() time.Time { return i.createdAt }
func (i *Issue) UpdatedAt() time.Time { return i.updatedAt }

func (i *Issue) DueDate() *time.Time {
	if i.dueDate == nil {
		return nil
	}
	d := *i.dueDate
	return &d
}

func (i *Issue) LabelIDs() []uint {
	return slices.Clone(i.labelIDs)
}

func (i *Issue) HasLabel(labelID uint) bool {
	return slices.Contains(i.labelIDs, labelID)
}

// HasDescription reports whether the issue carries a description. Its author then
// owns it: editing the issue is allowed to the author without modify rights.
func (i *Issue) HasDescription() bool {
	return strings.TrimSpace(i.description) != ""
}

func (i *Issue) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("issue ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("issue ID cannot be zero")
	}
	i.id = id
	return nil
}

// Update applies new values field by field and returns the events describing the
// title and due date changes, in that order. The description is assigned without an
// event. modified is false when nothing differs.
func (i *Issue) Update(actorID uint, title string, dueDate *time.Time, description string) (events []*Event, modified bool, err error) {
	title, err = normalizeTitle(title)
	if err != nil {
		return nil, false, err
	}
	dueDate = truncateDueDate(dueDate)

	if i.title != title {
		events = append(events, newEvent(i.projectID, i.id, actorID, RenamePayload{
			OldTitle: i.title,
			NewTitle: title,
		}, ""))
		i.title = title
		modified = true
	}

	if ev := i.dueDateEvent(actorID, dueDate); ev != nil {
		events = append(events, ev)
		i.dueDate = dueDate
		modified = true
	}

	if i.description != description {
		i.description = description
		modified = true
	}

	if modified {
		i.updatedAt = time.Now()
	}
	return events, modified, nil
}

// dueDateEvent classifies a due date change as set, unset or change.
func (i *Issue) dueDateEvent(actorID uint, next *time.Time) *Event {
	prev := i.dueDate
	switch {
	case prev == nil && next == nil:
		return nil
	case prev != nil && next != nil:
		if prev.Equal(*next) {
			return nil
		}
		return newEvent(i.projectID, i.id, actorID, ChangeDueDatePayload{
			OldDueDate: prev.Unix(),
			NewDueDate: next.Unix(),
		}, "")
	case prev != nil:
		return newEvent(i.projectID, i.id, actorID, UnsetDueDatePayload{DueDate: prev.Unix()}, "")
	default:
		return newEvent(i.projectID, i.id, actorID, SetDueDatePayload{DueDate: next.Unix()}, "")
	}
}

// Close moves an open issue to closed and returns the CLOSE event.
func (i *Issue) Close(actorID uint) (*Event, error) {
	if i.closed {
		return nil, ErrAlreadyClosed
	}
	i.closed = true
	i.updatedAt = time.Now()
	return newEvent(i.projectID, i.id, actorID, ClosePayload{}, ""), nil
}

// Reopen moves a closed issue back to open and returns the REOPEN event.
func (i *Issue) Reopen(actorID uint) (*Event, error) {
	if !i.closed {
		return nil, ErrAlreadyOpen
	}
	i.closed = false
	i.updatedAt = time.Now()
	return newEvent(i.projectID, i.id, actorID, ReopenPayload{}, ""), nil
}

// ToggleState closes an open issue or reopens a closed one.
func (i *Issue) ToggleState(actorID uint) *Event {
	if i.closed {
		ev, _ := i.Reopen(actorID)
		return ev
	}
	ev, _ := i.Close(actorID)
	return ev
}

// AddLabel attaches a label; it reports false when the label was already attached.
func (i *Issue) AddLabel(labelID uint) bool {
	if i.HasLabel(labelID) {
		return false
	}
	i.labelIDs = append(i.labelIDs, labelID)
	return true
}

// RemoveLabel detaches a label; it reports false when the label was not attached.
func (i *Issue) RemoveLabel(labelID uint) bool {
	idx := slices.Index(i.labelIDs, labelID)
	if idx < 0 {
		return false
	}
	i.labelIDs = slices.Delete(i.labelIDs, idx, idx+1)
	return true
}

// SetMilestone fills the single milestone slot, replacing any previous milestone.
func (i *Issue) SetMilestone(milestoneID uint) bool {
	if i.milestoneID != nil && *i.milestoneID == milestoneID {
		return false
	}
	i.milestoneID = &milestoneID
	return true
}

// UnsetMilestone clears the slot only when milestoneID is the current milestone.
func (i *Issue) UnsetMilestone(milestoneID uint) bool {
	if i.milestoneID == nil || *i.milestoneID != milestoneID {
		return false
	}
	i.milestoneID = nil
	return true
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

// truncateDueDate drops sub-second precision so stored and compared values agree.
func truncateDueDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Truncate(time.Second).UTC()
	return &t
}
