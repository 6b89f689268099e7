// Package dispatch turns a homelab action into Compose invocations and runs them.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danieljhkim/homelab/internal/catalog"
)

var (
	// ErrUnknownAction is returned for tokens outside the action set.
	ErrUnknownAction = errors.New("unknown action")
	// ErrNotConfirmed is returned when a destructive action is not confirmed.
	ErrNotConfirmed = errors.New("not confirmed")
)

// Action is a lifecycle verb or a stack verb.
type Action string

const (
	ActionStart   Action = "start"
	ActionStop    Action = "stop"
	ActionRestart Action = "restart"
	ActionStatus  Action = "status"
	ActionLogs    Action = "logs"
	ActionUpdate  Action = "update"
	ActionPull    Action = "pull"
	ActionReset   Action = "reset"
	ActionHealth  Action = "health"
)

// LifecycleActions lists the fixed verbs in help order.
var LifecycleActions = []Action{
	ActionStart, ActionStop, ActionRestart, ActionStatus, ActionLogs,
	ActionUpdate, ActionPull, ActionReset, ActionHealth,
}

// StackVerbs are the sub-verbs accepted after a stack action.
var StackVerbs = []string{"up", "down", "stop", "restart", "logs", "ps", "pull"}

// ParseAction validates token against the lifecycle verbs and the optional
// stacks of cat. Stack verbs are named after their stack.
func ParseAction(cat *catalog.Catalog, token string) (Action, error) {
	token = strings.TrimSpace(token)
	for _, a := range LifecycleActions {
		if string(a) == token {
			return a, nil
		}
	}
	if cat != nil {
		for _, st := range cat.OptionalStacks() {
			if st.Name == token {
				return Action(token), nil
			}
		}
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownAction, token, strings.Join(validActions(cat), ", "))
}

// IsLifecycle reports whether a is one of the fixed verbs.
func (a Action) IsLifecycle() bool {
	for _, l := range LifecycleActions {
		if l == a {
			return true
		}
	}
	return false
}

// Destructive reports whether a needs typed confirmation.
func (a Action) Destructive() bool {
	return a == ActionReset
}

// Probes reports whether a ends with a probe sweep.
func (a Action) Probes() bool {
	return a == ActionStatus || a == ActionHealth
}

func validActions(cat *catalog.Catalog) []string {
	names := make([]string, 0, len(LifecycleActions))
	for _, a := range LifecycleActions {
		names = append(names, string(a))
	}
	if cat != nil {
		for _, st := range cat.OptionalStacks() {
			names = append(names, st.Name)
		}
	}
	return names
}

func isStackVerb(verb string) bool {
	for _, v := range StackVerbs {
		if v == verb {
			return true
		}
	}
	return false
}
