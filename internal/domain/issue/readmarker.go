package issue

import "time"

// ReadMarker records the newest event a user had seen on an issue. LastEventID is 0
// when the issue had no events at that time. PreviousEventID is the position
// before the last advance, nil when the user had never opened the issue then.
// A missing marker means the user never opened the issue.
type ReadMarker struct {
	UserID          uint
	ProjectID       uint
	IssueID         uint
	LastEventID     uint
	PreviousEventID *uint
	ReadAt          time.Time
}

// Unread reports whether an event id is newer than the marker. With no marker
// every event is unread.
func (m *ReadMarker) Unread(eventID uint) bool {
	if m == nil {
		return true
	}
	return eventID > m.LastEventID
}

// Visit computes the marker after a visit that saw events up to latestEventID.
// lastRead is the position to highlight "new since" from: the marker value before
// the visit that last brought new events, so reloading without new activity keeps
// showing the same value. advanced reports whether LastEventID moved.
func Visit(m *ReadMarker, userID, projectID, issueID, latestEventID uint, now time.Time) (next *ReadMarker, lastRead *uint, advanced bool) {
	if m == nil {
		return &ReadMarker{
			UserID:      userID,
			ProjectID:   projectID,
			IssueID:     issueID,
			LastEventID: latestEventID,
			ReadAt:      now,
		}, nil, true
	}

	if latestEventID <= m.LastEventID {
		next := *m
		next.ReadAt = now
		return &next, m.PreviousEventID, false
	}

	prev := m.LastEventID
	return &ReadMarker{
		UserID:          m.UserID,
		ProjectID:       m.ProjectID,
		IssueID:         m.IssueID,
		LastEventID:     latestEventID,
		PreviousEventID: &prev,
		ReadAt:          now,
	}, &prev, true
}
