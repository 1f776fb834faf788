package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/NguyenHongSon4/app-02/broker"
	"github.com/NguyenHongSon4/app-02/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWebSocketServer(t *testing.T) (*WebSocketService, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ws := NewWebSocketService()
	ws.Start()
	t.Cleanup(ws.Stop)

	router := gin.New()
	router.GET("/ws", ws.HandleConnection)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return ws, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readServerMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg ServerMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func subscribe(t *testing.T, conn *websocket.Conn, resource, id string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":    "subscribe",
		"payload": map[string]string{"resource": resource, "id": id},
	}))
	confirmation := readServerMessage(t, conn)
	require.Equal(t, "subscription", confirmation.Type)
	require.Equal(t, "confirmed", confirmation.Event)
}

func publishNoteEvent(t *testing.T, ws *WebSocketService, eventType broker.EventType, id string) {
	t.Helper()
	NewEventService(ws).Publish(eventType, "note", "update", "", models.Note{ID: id})
}

func TestWebSocketDeliversSubscribedEvents(t *testing.T) {
	ws, url := setupWebSocketServer(t)
	conn := dial(t, url)

	subscribe(t, conn, "note", "")
	publishNoteEvent(t, ws, broker.NoteUpdated, "n-1")

	msg := readServerMessage(t, conn)
	assert.Equal(t, "event", msg.Type)
	assert.Equal(t, "note.updated", msg.Event)

	payload, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "note", payload["entity"])
}

func TestWebSocketFiltersBySpecificRecord(t *testing.T) {
	ws, url := setupWebSocketServer(t)
	conn := dial(t, url)

	subscribe(t, conn, "note", "n-2")
	publishNoteEvent(t, ws, broker.NoteUpdated, "n-1")
	publishNoteEvent(t, ws, broker.NoteDeleted, "n-2")

	msg := readServerMessage(t, conn)
	assert.Equal(t, "note.deleted", msg.Event)
}

func TestWebSocketUnsubscribe(t *testing.T) {
	ws, url := setupWebSocketServer(t)
	conn := dial(t, url)

	subscribe(t, conn, "all", "")
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":    "unsubscribe",
		"payload": map[string]string{"resource": "all"},
	}))
	removed := readServerMessage(t, conn)
	assert.Equal(t, "removed", removed.Event)

	subscribe(t, conn, "account", "")
	publishNoteEvent(t, ws, broker.NoteCreated, "n-1")
	NewEventService(ws).Publish(broker.AccountRegistered, "account", "create", "1", map[string]interface{}{"id": 1})

	msg := readServerMessage(t, conn)
	assert.Equal(t, "account.registered", msg.Event)
}

func TestWebSocketTracksClients(t *testing.T) {
	ws, url := setupWebSocketServer(t)
	conn := dial(t, url)
	subscribe(t, conn, "all", "")

	assert.Equal(t, 1, ws.ClientCount())

	conn.Close()
	assert.Eventually(t, func() bool { return ws.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestPublishAfterStopIsDropped(t *testing.T) {
	ws := NewWebSocketService()
	ws.Start()
	ws.Stop()

	assert.NoError(t, ws.Publish(broker.Message{Subject: broker.NoteEventsSubject, Data: []byte("{}")}))
}

func TestResourceID(t *testing.T) {
	assert.Equal(t, "n-1", resourceID(json.RawMessage(`"n-1"`)))
	assert.Equal(t, "7", resourceID(json.RawMessage(`7`)))
	assert.Equal(t, "", resourceID(nil))
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWebSocketDeliversEventWithUnparseableData(t *testing.T) {
	logs := &lockedBuffer{}
	log.SetOutput(logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ws, url := setupWebSocketServer(t)
	conn := dial(t, url)
	subscribe(t, conn, "note", "")

	NewEventService(ws).Publish(broker.NoteUpdated, "note", "update", "", []string{"not", "an", "object"})

	msg := readServerMessage(t, conn)
	assert.Equal(t, "note.updated", msg.Event)
	assert.Contains(t, logs.String(), "Error parsing note.updated event data")
}
