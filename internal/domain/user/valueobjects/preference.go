package valueobjects

import "fmt"

// Preference controls which notifications a user receives by email.
type Preference string

const (
	// PreferenceNever receives nothing and cannot subscribe.
	PreferenceNever Preference = "NEVER"
	// PreferenceMine receives notifications except those about their own actions.
	PreferenceMine Preference = "MINE"
	// PreferenceAlways receives every notification, own actions included.
	PreferenceAlways Preference = "ALWAYS"
)

func ParsePreference(s string) (Preference, error) {
	p := Preference(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid notification preference: %s", s)
	}
	return p, nil
}

func (p Preference) IsValid() bool {
	switch p {
	case PreferenceNever, PreferenceMine, PreferenceAlways:
		return true
	}
	return false
}

func (p Preference) String() string {
	return string(p)
}
