package issue

import (
	"fmt"
	"strings"
)

// Search is a parsed issue query such as `is:open label:bug crash`. Problems are
// collected in Errors; the rest of the query still applies.
type Search struct {
	Status      Status
	Labels      []string
	Milestone   string
	NoMilestone bool
	NoLabel     bool
	Author      string
	Words       []string
	Errors      []string
}

// ParseSearch parses a query. Recognized tokens: is:open|closed|all, label:<name>,
// milestone:<name>, author:<username>, no:milestone, no:label. Other words match
// the title. The default status is open.
func ParseSearch(q string) Search {
	s := Search{Status: StatusOpen}
	for _, tok := range strings.Fields(q) {
		key, value, found := strings.Cut(tok, ":")
		if !found {
			s.Words = append(s.Words, tok)
			continue
		}
		switch strings.ToLower(key) {
		case "is":
			switch Status(strings.ToLower(value)) {
			case StatusOpen, StatusClosed, StatusAll:
				s.Status = Status(strings.ToLower(value))
			default:
				s.Errors = append(s.Errors, fmt.Sprintf("unknown status '%s'", value))
			}
		case "label":
			if value == "" {
				s.Errors = append(s.Errors, "label name missing")
				continue
			}
			s.Labels = append(s.Labels, value)
		case "milestone":
			if value == "" {
				s.Errors = append(s.Errors, "milestone name missing")
				continue
			}
			s.Milestone = value
		case "author":
			if value == "" {
				s.Errors = append(s.Errors, "author name missing")
				continue
			}
			s.Author = value
		case "no":
			switch strings.ToLower(value) {
			case "milestone":
				s.NoMilestone = true
			case "label":
				s.NoLabel = true
			default:
				s.Errors = append(s.Errors, fmt.Sprintf("unknown filter 'no:%s'", value))
			}
		default:
			s.Errors = append(s.Errors, fmt.Sprintf("unknown filter '%s'", key))
		}
	}
	return s
}

var sortColumns = map[string]string{
	"id":       "id",
	"title":    "title",
	"due_date": "due_date",
	"updated":  "updated_at",
}

// ParseSort maps a sort value ("title", "-due_date", ...) onto a column. Unknown
// values fall back to newest first.
func ParseSort(s string) (column string, desc bool, ok bool) {
	desc = strings.HasPrefix(s, "-")
	col, known := sortColumns[strings.TrimPrefix(s, "-")]
	if s == "" || !known {
		return "id", true, s == ""
	}
	return col, desc, true
}
