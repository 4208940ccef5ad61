package stream

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/plus3/duckpond/pond"
	"github.com/plus3/duckpond/pond/snapshot"
)

// Message types.
const (
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgInput   = "input"
)

var ErrEmptyMessage = errors.New("stream: empty message")

// Envelope wraps every message: T names the type, P holds the payload.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Welcome is sent once to a new client.
type Welcome struct {
	Client         int `json:"client"`
	BroadcastEvery int `json:"broadcastEvery"`
}

// State carries the whole scene after a tick.
type State struct {
	Tick  int64              `json:"tick"`
	Scene *snapshot.Document `json:"scene"`
}

// Controls is a client's held controls.
type Controls struct {
	Forward   bool `json:"forward,omitempty"`
	Backward  bool `json:"backward,omitempty"`
	TurnLeft  bool `json:"turnLeft,omitempty"`
	TurnRight bool `json:"turnRight,omitempty"`
	Boost     bool `json:"boost,omitempty"`
	Signal    bool `json:"signal,omitempty"`
}

func (c Controls) Keys() pond.Keys {
	k := pond.Neutral
	for _, b := range []struct {
		down    bool
		control pond.Control
	}{
		{c.Forward, pond.Forward},
		{c.Backward, pond.Backward},
		{c.TurnLeft, pond.TurnLeft},
		{c.TurnRight, pond.TurnRight},
		{c.Boost, pond.Boost},
		{c.Signal, pond.Signal},
	} {
		if b.down {
			k = k.With(b.control)
		}
	}
	return k
}

func ControlsOf(in pond.Input) Controls {
	return Controls{
		Forward:   in.Down(pond.Forward),
		Backward:  in.Down(pond.Backward),
		TurnLeft:  in.Down(pond.TurnLeft),
		TurnRight: in.Down(pond.TurnRight),
		Boost:     in.Down(pond.Boost),
		Signal:    in.Down(pond.Signal),
	}
}

// Encode builds an envelope of type t around payload.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("stream: envelope without type")
	}
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{T: t, P: p})
}

func Decode(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyMessage
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

// DecodePayload unmarshals the envelope's payload into a T.
func DecodePayload[T any](e Envelope) (T, error) {
	var out T
	if len(e.P) == 0 {
		return out, fmt.Errorf("%w: no payload for %q", ErrEmptyMessage, e.T)
	}
	err := json.Unmarshal(e.P, &out)
	return out, err
}
