package model

import (
	"fmt"
	"strings"
)

// Role is the closed set of playing positions. Keeping it an enum (instead
// of the raw position strings the source data carries) makes the role-keyed
// weight tables and scoring branches exhaustive.
type Role int

const (
	RoleUnknown Role = iota
	Goalkeeper
	Defender
	Midfielder
	Forward
)

// Roles lists the four playable roles in a stable order.
var Roles = [...]Role{Goalkeeper, Defender, Midfielder, Forward}

// String returns the canonical short code for the role.
func (r Role) String() string {
	switch r {
	case Goalkeeper:
		return "GK"
	case Defender:
		return "DEF"
	case Midfielder:
		return "MID"
	case Forward:
		return "FWD"
	default:
		return "UNKNOWN"
	}
}

// ParseRole accepts the canonical codes (GK/DEF/MID/FWD), the Italian
// position codes (POR/DIF/CEN/ATT), and the long position names some
// scraped exports carry. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GK", "POR", "GOALKEEPER", "PORTIERE":
		return Goalkeeper, nil
	case "DEF", "DIF", "DEFENDER", "DIFENSORE":
		return Defender, nil
	case "MID", "CEN", "MIDFIELDER", "CENTROCAMPISTA":
		return Midfielder, nil
	case "FWD", "ATT", "FORWARD", "ATTACKER", "ATTACCANTE":
		return Forward, nil
	default:
		return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}
