package enum

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the access tier of a user. The set is closed: any string coming
// out of the database or the terminal must go through ParseRole.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole maps a stored or typed role literal onto the closed set.
// Legacy rows carry trailing whitespace in the role column ("Manager "),
// so the comparison is done on the trimmed literal. Writes always use the
// canonical constants.
func ParseRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(s)) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleManager:
		return RoleManager, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// IsStaff reports whether the role may view arbitrary orders, advance
// item preparation and toggle payment.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleManager
}

// Item preparation states, in order of progression.
const (
	ItemStatusNotStarted = "Has Not Started"
	ItemStatusStarted    = "Started"
	ItemStatusFinished   = "Finished"
)

var (
	ErrItemFinished      = errors.New("item preparation is finished and can no longer change")
	ErrUnknownItemStatus = errors.New("unknown item status")
)

// nextItemStatus defines the only legal transitions. Finished is terminal
// and deliberately absent.
var nextItemStatus = map[string]string{
	ItemStatusNotStarted: ItemStatusStarted,
	ItemStatusStarted:    ItemStatusFinished,
}

// NextItemStatus returns the status following current in the strict
// Has Not Started -> Started -> Finished progression.
func NextItemStatus(current string) (string, error) {
	if current == ItemStatusFinished {
		return "", ErrItemFinished
	}
	next, ok := nextItemStatus[current]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownItemStatus, current)
	}
	return next, nil
}
