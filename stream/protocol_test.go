package stream_test

import (
	"testing"

	"github.com/plus3/duckpond/pond"
	"github.com/plus3/duckpond/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlsKeys(t *testing.T) {
	c := stream.Controls{Backward: true, TurnRight: true, Boost: true}
	keys := c.Keys()
	assert.Equal(t, pond.KeysOf(pond.Backward, pond.TurnRight, pond.Boost), keys)
	assert.Equal(t, c, stream.ControlsOf(keys))
	assert.Equal(t, pond.Neutral, stream.Controls{}.Keys())
}

func TestEnvelope(t *testing.T) {
	msg, err := stream.Encode(stream.MsgInput, stream.Controls{Forward: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"input","p":{"forward":true}}`, string(msg))

	env, err := stream.Decode(msg)
	require.NoError(t, err)
	c, err := stream.DecodePayload[stream.Controls](env)
	require.NoError(t, err)
	assert.True(t, c.Forward)

	_, err = stream.Encode("", nil)
	assert.Error(t, err)
	_, err = stream.Decode(nil)
	assert.ErrorIs(t, err, stream.ErrEmptyMessage)
	_, err = stream.DecodePayload[stream.Controls](stream.Envelope{T: stream.MsgInput})
	assert.ErrorIs(t, err, stream.ErrEmptyMessage)
}
