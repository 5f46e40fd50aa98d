package match

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/xid"
	"go.uber.org/zap"

	"goban/internal/domain/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	subscriberSize = 8
)

type subscriber struct {
	id   xid.ID
	send chan game.Match
}

// Hub рассылает актуальное состояние партии всем подписанным websocket-соединениям.
type Hub struct {
	log *zap.SugaredLogger

	mu     sync.RWMutex
	rooms  map[string]map[xid.ID]*subscriber
	closed bool
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{log: log, rooms: make(map[string]map[xid.ID]*subscriber)}
}

// Publish не блокируется: медленный подписчик пропускает обновление.
func (h *Hub) Publish(match game.Match) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.rooms[match.ID] {
		select {
		case sub.send <- match:
		default:
			h.log.Warnw("dropping match update for slow subscriber", "match", match.ID, "subscriber", sub.id.String())
		}
	}
}

func (h *Hub) subscribe(matchID string) (*subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	sub := &subscriber{id: xid.New(), send: make(chan game.Match, subscriberSize)}
	room, ok := h.rooms[matchID]
	if !ok {
		room = make(map[xid.ID]*subscriber)
		h.rooms[matchID] = room
	}
	room[sub.id] = sub
	return sub, true
}

func (h *Hub) unsubscribe(matchID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[matchID]
	if !ok {
		return
	}
	if _, ok := room[sub.id]; !ok {
		return
	}
	delete(room, sub.id)
	close(sub.send)
	if len(room) == 0 {
		delete(h.rooms, matchID)
	}
}

func (h *Hub) Subscribers(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[matchID])
}

// Close отключает всех подписчиков, новые подписки после этого не принимаются.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for matchID, room := range h.rooms {
		for _, sub := range room {
			close(sub.send)
		}
		delete(h.rooms, matchID)
	}
}

// serve держит соединение: пишет обновления, читает только служебные кадры.
// Подписка оформляется до загрузки снимка, поэтому обновление, принятое между ними,
// придёт следом за снимком, а не потеряется.
func (h *Hub) serve(conn *websocket.Conn, matchID string, current func() (game.Match, error)) {
	sub, ok := h.subscribe(matchID)
	if !ok {
		conn.Close()
		return
	}
	h.log.Infof("websocket subscriber %s joined match %s", sub.id, matchID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.unsubscribe(matchID, sub)
		conn.Close()
		h.log.Infof("websocket subscriber %s left match %s", sub.id, matchID)
	}()

	initial, err := current()
	if err != nil {
		h.log.Errorf("websocket subscriber %s: failed to load match %s: %v", sub.id, matchID, err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, ""), time.Now().Add(writeWait))
		return
	}
	if err := writeMatch(conn, initial); err != nil {
		return
	}
	for {
		select {
		case match, ok := <-sub.send:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			}
			if err := writeMatch(conn, match); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func writeMatch(conn *websocket.Conn, match game.Match) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(match)
}
