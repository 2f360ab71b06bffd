package action

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestFromString(t *testing.T) {
	a := assert.New(t)

	act, err := FromString("raise")
	a.NoError(err)
	a.Equal(Raise, act)

	act, err = FromString("discard")
	a.EqualError(err, "unknown action for identifier: discard")
	a.Equal(Action(""), act)
}

func TestAction_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("Bet", Bet.String())
	a.Equal("Blinds", Blinds.String())
	a.Equal("Unknown(trade)", Action("trade").String())
}

func TestAction_JSON(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(Call)
	a.NoError(err)
	a.Equal(`{"id":"call","name":"Call"}`, string(b))

	var act Action
	a.NoError(json.Unmarshal([]byte(`"fold"`), &act))
	a.Equal(Fold, act)

	a.NoError(json.Unmarshal([]byte(`{"id":"check"}`), &act))
	a.Equal(Check, act)

	a.Error(json.Unmarshal([]byte(`"discard"`), &act))
}

func TestAction_LogMessage(t *testing.T) {
	a := assert.New(t)

	a.Equal("raised to ${50}", Raise.LogMessage(50))
	a.Equal("called ${10}", Call.LogMessage(10))
	a.Equal("folded", Fold.LogMessage(0))
	a.True(Bet.RequiresAmount())
	a.False(Call.RequiresAmount())
	a.False(Action("trade").IsValid())
}
