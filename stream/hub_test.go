package stream_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/plus3/duckpond/pond"
	"github.com/plus3/duckpond/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, every int) (*stream.Hub, string) {
	t.Helper()
	hub := stream.NewHub(every)
	server := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) stream.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	env, err := stream.Decode(msg)
	require.NoError(t, err)
	return env
}

func sendControls(t *testing.T, conn *websocket.Conn, c stream.Controls) {
	t.Helper()
	msg, err := stream.Encode(stream.MsgInput, c)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))
}

func newRunner(t *testing.T) *pond.Runner {
	t.Helper()
	cfg := pond.DefaultSceneConfig()
	cfg.Start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	scene, err := pond.NewScene(cfg)
	require.NoError(t, err)
	_, err = scene.Spawn("Huey", pond.NewPose(3, 3, 0, 1))
	require.NoError(t, err)
	return pond.NewRunner(scene)
}

func TestHubWelcomesClients(t *testing.T) {
	hub, url := startHub(t, 2)
	first := dial(t, url)
	second := dial(t, url)

	for i, conn := range []*websocket.Conn{first, second} {
		env := readEnvelope(t, conn)
		require.Equal(t, stream.MsgWelcome, env.T)
		welcome, err := stream.DecodePayload[stream.Welcome](env)
		require.NoError(t, err)
		assert.Equal(t, i+1, welcome.Client)
		assert.Equal(t, 2, welcome.BroadcastEvery)
	}
	assert.Equal(t, 2, hub.Clients())
}

func TestHubBroadcastsEveryNthTick(t *testing.T) {
	hub, url := startHub(t, 2)
	conn := dial(t, url)
	require.Equal(t, stream.MsgWelcome, readEnvelope(t, conn).T)

	runner := newRunner(t)
	runner.Observe(hub)
	for range 4 {
		runner.Once(0.1, pond.Neutral)
	}

	for _, tick := range []int64{2, 4} {
		env := readEnvelope(t, conn)
		require.Equal(t, stream.MsgState, env.T)
		state, err := stream.DecodePayload[stream.State](env)
		require.NoError(t, err)
		assert.Equal(t, tick, state.Tick)
		require.NotNil(t, state.Scene)
		require.Len(t, state.Scene.Ducks, 1)
		assert.Equal(t, "Huey", state.Scene.Ducks[0].Label)
	}

	// A late joiner gets the latest state straight after its welcome.
	late := dial(t, url)
	require.Equal(t, stream.MsgWelcome, readEnvelope(t, late).T)
	state, err := stream.DecodePayload[stream.State](readEnvelope(t, late))
	require.NoError(t, err)
	assert.Equal(t, int64(4), state.Tick)
}

func TestHubRemoteInput(t *testing.T) {
	hub, url := startHub(t, 1)
	conn := dial(t, url)
	readEnvelope(t, conn)
	assert.Equal(t, pond.Neutral, hub.Input())

	sendControls(t, conn, stream.Controls{Forward: true, Signal: true})
	require.Eventually(t, func() bool {
		return hub.Input() == pond.KeysOf(pond.Forward, pond.Signal)
	}, 2*time.Second, 5*time.Millisecond)

	// Garbage and unknown messages are ignored.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"t":"chat","p":"hi"}`)))
	sendControls(t, conn, stream.Controls{TurnLeft: true})
	require.Eventually(t, func() bool {
		return hub.Input() == pond.KeysOf(pond.TurnLeft)
	}, 2*time.Second, 5*time.Millisecond)

	runner := newRunner(t)
	runner.Once(0.5, hub.Input())
	assert.Greater(t, runner.Scene().Player.Pose.Heading, 0.0)

	conn.Close()
	require.Eventually(t, func() bool {
		return hub.Clients() == 0 && hub.Input() == pond.Neutral
	}, 2*time.Second, 5*time.Millisecond)
}

func TestHubSkipsFullClients(t *testing.T) {
	hub, url := startHub(t, 1)
	dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 5*time.Millisecond)

	// The client never reads, so its queue and socket buffers eventually fill.
	big := []byte(`{"t":"state","p":"` + strings.Repeat("x", 1<<20) + `"}`)
	done := make(chan int)
	go func() {
		skipped := 0
		for range 200 {
			if hub.Broadcast(big) == 0 {
				skipped++
			}
		}
		done <- skipped
	}()

	select {
	case skipped := <-done:
		assert.Positive(t, skipped)
	case <-time.After(5 * time.Second):
		t.Fatal("Broadcast blocked on a slow client")
	}
}

func TestHubClose(t *testing.T) {
	hub, url := startHub(t, 1)
	conn := dial(t, url)
	readEnvelope(t, conn)

	hub.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	refused := dial(t, url)
	require.NoError(t, refused.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = refused.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}
