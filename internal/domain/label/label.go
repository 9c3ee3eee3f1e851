package label

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const DefaultColor = "#cccccc"

var (
	ErrEmptyName    = errors.New("label name is required")
	ErrInvalidColor = errors.New("color must be a hex value such as #ff0000")
)

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Label tags issues of one project. Deleted labels are hidden from listings but stay
// resolvable by id.
type Label struct {
	id        uint
	projectID uint
	name      string
	color     string
	inverted  bool
	deleted   bool
}

func NewLabel(projectID uint, name, color string, inverted bool) (*Label, error) {
	if projectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}
	l := &Label{projectID: projectID}
	if _, err := l.Edit(name, color, inverted); err != nil {
		return nil, err
	}
	return l, nil
}

func ReconstructLabel(id, projectID uint, name, color string, inverted, deleted bool) *Label {
	return &Label{
		id:        id,
		projectID: projectID,
		name:      name,
		color:     color,
		inverted:  inverted,
		deleted:   deleted,
	}
}

func (l *Label) ID() uint        { return l.id }
func (l *Label) ProjectID() uint { return l.projectID }
func (l *Label) Name() string    { return l.name }
func (l *Label) Color() string   { return l.color }
func (l *Label) Inverted() bool  { return l.inverted }
func (l *Label) IsDeleted() bool { return l.deleted }

func (l *Label) SetID(id uint) error {
	if l.id != 0 {
		return fmt.Errorf("label ID is already set")
	}
	l.id = id
	return nil
}

// Edit replaces name and style; an empty color selects the default. It reports
// whether anything changed.
func (l *Label) Edit(name, color string, inverted bool) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	if color == "" {
		color = DefaultColor
	}
	if !colorRe.MatchString(color) {
		return false, ErrInvalidColor
	}
	color = strings.ToLower(color)

	changed := l.name != name || l.color != color || l.inverted != inverted
	l.name, l.color, l.inverted = name, color, inverted
	return changed, nil
}

// MarkDeleted soft-deletes the label.
func (l *Label) MarkDeleted() {
	l.deleted = true
}
