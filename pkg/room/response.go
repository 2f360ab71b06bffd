package room

import (
	"slotpoker-server/pkg/action"
)

// Response is the envelope for every message sent to a websocket client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// NewErrorResponse returns an error response for the message with the given context
func NewErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

func newGameStateResponse(state *GameState) *Response {
	return &Response{
		Key:  "game",
		Data: state,
	}
}

// PayloadIn is the format we expect from the websocket client
type PayloadIn struct {
	Action  action.Action `json:"action"`
	Amount  uint64        `json:"amount"`
	Version int64         `json:"version"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}
