package transcript

import "strings"

// Role is the clinical role assigned to a speaker for the duration of one
// conversation.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
	RoleNurse   Role = "nurse"
	RoleOther   Role = "other"
)

var displayNames = map[Role]string{
	RoleDoctor:  "Doctor",
	RolePatient: "Patient",
	RoleNurse:   "Nurse",
	RoleOther:   "Other",
}

// Display returns the header form of the role.
func (r Role) Display() string {
	if name, ok := displayNames[r]; ok {
		return name
	}
	return displayNames[RoleOther]
}

// ParseRole maps free text onto one of the four roles, case-insensitively.
// Anything unrecognized maps to Other.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleDoctor:
		return RoleDoctor, true
	case RolePatient:
		return RolePatient, true
	case RoleNurse:
		return RoleNurse, true
	case RoleOther:
		return RoleOther, true
	}
	return RoleOther, false
}

// Turn is one contiguous span of speech attributed to one speaker tag.
// Immutable once produced by Normalize.
type Turn struct {
	Speaker string  // display tag, e.g. "Speaker 1"
	Start   float64 // seconds
	End     float64
	Text    string
}

// Block is one role-labeled section of the composed transcript: consecutive
// turns that resolved to the same role, merged.
type Block struct {
	Role  Role
	Lines []string
}
