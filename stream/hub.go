// Package stream serves a running scene to spectators over websockets and
// accepts remote control of the player.
package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/plus3/duckpond/pond"
	"github.com/plus3/duckpond/pond/snapshot"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	readLimit  = 1 << 16
	sendBuffer = 8
)

// Hub tracks connected clients. It observes a Runner, broadcasting the scene
// every few ticks, and is an InputSource reporting the most recent controls
// sent by any client.
//
// A client that cannot keep up misses states instead of slowing the tick.
type Hub struct {
	upgrader websocket.Upgrader
	every    int

	mu        sync.Mutex
	clients   map[*client]struct{}
	nextId    int
	input     pond.Keys
	inputFrom *client
	last      []byte
	closed    bool
}

type client struct {
	id   int
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// NewHub broadcasts every n ticks; n below one broadcasts every tick.
func NewHub(n int) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		every:   max(n, 1),
		clients: make(map[*client]struct{}),
		nextId:  1,
	}
}

// ServeHTTP upgrades the request and serves the client until it leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	if !h.join(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) join(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	c.id = h.nextId
	h.nextId++
	h.clients[c] = struct{}{}

	if welcome, err := Encode(MsgWelcome, Welcome{Client: c.id, BroadcastEvery: h.every}); err == nil {
		c.send <- welcome
	}
	if h.last != nil {
		c.send <- h.last
	}
	return true
}

func (h *Hub) leave(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	if h.inputFrom == c {
		h.input = pond.Neutral
		h.inputFrom = nil
	}
	c.close()
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		h.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := Decode(msg)
		if err != nil || env.T != MsgInput {
			continue
		}
		controls, err := DecodePayload[Controls](env)
		if err != nil {
			continue
		}
		h.mu.Lock()
		h.input = controls.Keys()
		h.inputFrom = c
		h.mu.Unlock()
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Input returns the controls most recently sent by a client. They fall back to
// Neutral when that client disconnects.
func (h *Hub) Input() pond.Input {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.input
}

// Observe broadcasts the scene on every n-th tick.
func (h *Hub) Observe(f *pond.Frame) {
	if f.Tick%int64(h.every) != 0 {
		return
	}
	doc, err := snapshot.Capture(f.Scene)
	if err != nil {
		return
	}
	msg, err := Encode(MsgState, State{Tick: f.Tick, Scene: doc})
	if err != nil {
		return
	}
	h.Broadcast(msg)
}

// Broadcast queues msg for every client, skipping clients whose queue is full.
// It returns how many clients it was queued for.
func (h *Hub) Broadcast(msg []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = msg

	sent := 0
	for c := range h.clients {
		select {
		case c.send <- msg:
			sent++
		default:
		}
	}
	return sent
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		c.close()
	}
}
