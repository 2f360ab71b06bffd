package action

import (
	"encoding/json"
	"fmt"
)

// Action represents an action a player can take at the table
type Action string

// action constants
const (
	Bet    Action = "bet"
	Raise  Action = "raise"
	Call   Action = "call"
	Fold   Action = "fold"
	Check  Action = "check"
	Blinds Action = "blinds"
)

var allowedActions = map[Action]bool{
	Bet:    true,
	Raise:  true,
	Call:   true,
	Fold:   true,
	Check:  true,
	Blinds: true,
}

// FromString returns an action for the given string
func FromString(s string) (Action, error) {
	if _, ok := allowedActions[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	switch a {
	case Bet:
		return "Bet"
	case Raise:
		return "Raise"
	case Call:
		return "Call"
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Blinds:
		return "Blinds"
	}

	return fmt.Sprintf("Unknown(%s)", string(a))
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}

// UnmarshalJSON accepts either the bare identifier or the {id, name} object
func (a *Action) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		var obj struct {
			ID string `json:"id"`
		}

		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}

		id = obj.ID
	}

	parsed, err := FromString(id)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}

// IsValid returns true if the action is permitted
func (a Action) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}

// RequiresAmount returns true if the action carries an amount
func (a Action) RequiresAmount() bool {
	return a == Bet || a == Raise
}

// LogMessage returns a message formatted for the transition log
func (a Action) LogMessage(amount uint64) string {
	switch a {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called ${%d}", amount)
	case Bet:
		return fmt.Sprintf("bet ${%d}", amount)
	case Raise:
		return fmt.Sprintf("raised to ${%d}", amount)
	case Blinds:
		return "posted the blinds"
	}

	return ""
}
