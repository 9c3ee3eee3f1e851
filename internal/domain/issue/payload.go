package issue

import (
	"encoding/json"
	"fmt"
)

// Code identifies the kind of an Event. The set is closed.
type Code string

const (
	CodeDescription     Code = "DESCRIPTION"
	CodeComment         Code = "COMMENT"
	CodeRename          Code = "RENAME"
	CodeSetDueDate      Code = "SET_DUE_DATE"
	CodeUnsetDueDate    Code = "UNSET_DUE_DATE"
	CodeChangeDueDate   Code = "CHANGE_DUE_DATE"
	CodeChangeMilestone Code = "CHANGE_MILESTONE"
	CodeClose           Code = "CLOSE"
	CodeReopen          Code = "REOPEN"
)

func (c Code) IsValid() bool {
	switch c {
	case CodeDescription, CodeComment, CodeRename, CodeSetDueDate, CodeUnsetDueDate,
		CodeChangeDueDate, CodeChangeMilestone, CodeClose, CodeReopen:
		return true
	}
	return false
}

// Payload is the typed argument set of an event. Each code has exactly one payload
// type; the unexported method keeps the union closed to this package.
type Payload interface {
	Code() Code
	payload()
}

// DescriptionPayload marks the synthetic description event. The description itself
// lives on the issue row, so this payload is never appended.
type DescriptionPayload struct{}

// CommentPayload carries no args; the comment text is the event body.
type CommentPayload struct{}

type RenamePayload struct {
	OldTitle string `json:"old_title"`
	NewTitle string `json:"new_title"`
}

// Due date payloads hold unix timestamps in seconds.
type SetDueDatePayload struct {
	DueDate int64 `json:"due_date"`
}

type UnsetDueDatePayload struct {
	DueDate int64 `json:"due_date"`
}

type ChangeDueDatePayload struct {
	OldDueDate int64 `json:"old_due_date"`
	NewDueDate int64 `json:"new_due_date"`
}

type ChangeMilestonePayload struct {
	OldMilestone string `json:"old_milestone"`
	NewMilestone string `json:"new_milestone"`
}

type ClosePayload struct{}

type ReopenPayload struct{}

func (DescriptionPayload) Code() Code     { return CodeDescription }
func (CommentPayload) Code() Code         { return CodeComment }
func (RenamePayload) Code() Code          { return CodeRename }
func (SetDueDatePayload) Code() Code      { return CodeSetDueDate }
func (UnsetDueDatePayload) Code() Code    { return CodeUnsetDueDate }
func (ChangeDueDatePayload) Code() Code   { return CodeChangeDueDate }
func (ChangeMilestonePayload) Code() Code { return CodeChangeMilestone }
func (ClosePayload) Code() Code           { return CodeClose }
func (ReopenPayload) Code() Code          { return CodeReopen }

func (DescriptionPayload) payload()     {}
func (CommentPayload) payload()         {}
func (RenamePayload) payload()          {}
func (SetDueDatePayload) payload()      {}
func (UnsetDueDatePayload) payload()    {}
func (ChangeDueDatePayload) payload()   {}
func (ChangeMilestonePayload) payload() {}
func (ClosePayload) payload()           {}
func (ReopenPayload) payload()          {}

// MarshalPayload encodes the args column for p. Payloads without args encode as {}.
func MarshalPayload(p Payload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("payload is nil")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s args: %w", p.Code(), err)
	}
	return data, nil
}

// UnmarshalPayload decodes a stored args column into the payload type of code.
func UnmarshalPayload(code Code, data []byte) (Payload, error) {
	var p Payload
	switch code {
	case CodeDescription:
		return DescriptionPayload{}, nil
	case CodeComment:
		return CommentPayload{}, nil
	case CodeClose:
		return ClosePayload{}, nil
	case CodeReopen:
		return ReopenPayload{}, nil
	case CodeRename:
		var v RenamePayload
		if err := decodeArgs(data, &v); err != nil {
			return nil, err
		}
		p = v
	case CodeSetDueDate:
		var v SetDueDatePayload
		if err := decodeArgs(data, &v); err != nil {
			return nil, err
		}
		p = v
	case CodeUnsetDueDate:
		var v UnsetDueDatePayload
		if err := decodeArgs(data, &v); err != nil {
			return nil, err
		}
		p = v
	case CodeChangeDueDate:
		var v ChangeDueDatePayload
		if err := decodeArgs(data, &v); err != nil {
			return nil, err
		}
		p = v
	case CodeChangeMilestone:
		var v ChangeMilestonePayload
		if err := decodeArgs(data, &v); err != nil {
			return nil, err
		}
		p = v
	default:
		return nil, fmt.Errorf("unknown event code %q", code)
	}
	return p, nil
}

func decodeArgs(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("missing event args")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode event args: %w", err)
	}
	return nil
}
