package domain

import "fmt"

// Action is a discrete operator button press.
type Action string

const (
	ActionCreate  Action = "create"
	ActionExecute Action = "execute"
	ActionCancel  Action = "cancel"
	ActionStop    Action = "stop"
	ActionStatus  Action = "status"
	ActionReset   Action = "reset"
)

func Actions() []Action {
	return []Action{ActionCreate, ActionExecute, ActionCancel, ActionStop, ActionStatus, ActionReset}
}

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionExecute, ActionCancel, ActionStop, ActionStatus, ActionReset:
		return true
	default:
		return false
	}
}

func ParseAction(raw string) (Action, error) {
	action := Action(raw)
	if !action.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
	return action, nil
}
