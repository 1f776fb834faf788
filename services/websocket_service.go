package services

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/NguyenHongSon4/app-02/broker"
	"github.com/NguyenHongSon4/app-02/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

var ErrEventQueueFull = errors.New("websocket event queue full")

// WebSocketServiceInterface defines the operations provided by the WebSocket service.
// It is also a broker.Producer: every published event is pushed to the
// subscribed clients.
type WebSocketServiceInterface interface {
	Start()
	Stop()
	HandleConnection(c *gin.Context)
	Publish(msg broker.Message) error
	Close()
	ClientCount() int
}

// Client represents a connected WebSocket client
type Client struct {
	ID   string
	Hub  *WebSocketService
	Conn *websocket.Conn
	Send chan []byte

	mu            sync.Mutex
	subscriptions map[string]bool
	closed        bool
}

// ClientMessage represents a message from the client
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents a message to the client
type ServerMessage struct {
	Type    string      `json:"type"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// WebSocketService manages WebSocket connections
type WebSocketService struct {
	clients      map[string]*Client
	register     chan *Client
	unregister   chan *Client
	events       chan broker.Message
	clientsMutex sync.RWMutex

	upgrader websocket.Upgrader

	runMutex  sync.Mutex
	isRunning bool
	stopChan  chan struct{}
}

func NewWebSocketService() *WebSocketService {
	return &WebSocketService{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan broker.Message, sendBufferSize),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		stopChan: make(chan struct{}),
	}
}

func (ws *WebSocketService) Start() {
	ws.runMutex.Lock()
	defer ws.runMutex.Unlock()

	if ws.isRunning {
		return
	}
	ws.isRunning = true
	go ws.run()
	log.Println("WebSocket hub started")
}

// Stop gracefully shuts down the WebSocket service
func (ws *WebSocketService) Stop() {
	ws.runMutex.Lock()
	defer ws.runMutex.Unlock()

	if !ws.isRunning {
		return
	}
	ws.isRunning = false
	close(ws.stopChan)

	ws.clientsMutex.Lock()
	for id, client := range ws.clients {
		client.close()
		client.Conn.Close()
		delete(ws.clients, id)
	}
	ws.clientsMutex.Unlock()

	log.Println("WebSocket service stopped")
}

func (ws *WebSocketService) running() bool {
	ws.runMutex.Lock()
	defer ws.runMutex.Unlock()
	return ws.isRunning
}

// Close makes the service usable as a broker.Producer.
func (ws *WebSocketService) Close() {
	ws.Stop()
}

// Publish queues an event for delivery to subscribed clients.
func (ws *WebSocketService) Publish(msg broker.Message) error {
	if !ws.running() {
		return nil
	}
	select {
	case ws.events <- msg:
		return nil
	default:
		return ErrEventQueueFull
	}
}

func (ws *WebSocketService) ClientCount() int {
	ws.clientsMutex.RLock()
	defer ws.clientsMutex.RUnlock()
	return len(ws.clients)
}

// run handles the main client message hub
func (ws *WebSocketService) run() {
	for {
		select {
		case <-ws.stopChan:
			return

		case client := <-ws.register:
			ws.clientsMutex.Lock()
			ws.clients[client.ID] = client
			ws.clientsMutex.Unlock()
			log.Printf("Client connected: %s", client.ID)

		case client := <-ws.unregister:
			ws.removeClient(client)

		case msg := <-ws.events:
			ws.dispatch(msg)
		}
	}
}

func (ws *WebSocketService) removeClient(client *Client) {
	ws.clientsMutex.Lock()
	defer ws.clientsMutex.Unlock()

	if _, ok := ws.clients[client.ID]; ok {
		delete(ws.clients, client.ID)
		client.close()
		log.Printf("Client disconnected: %s", client.ID)
	}
}

// HandleConnection upgrades the request and attaches a new client to the hub.
func (ws *WebSocketService) HandleConnection(c *gin.Context) {
	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	client := &Client{
		ID:            uuid.New().String(),
		Hub:           ws,
		Conn:          conn,
		Send:          make(chan []byte, sendBufferSize),
		subscriptions: make(map[string]bool),
	}

	select {
	case ws.register <- client:
	case <-ws.stopChan:
		conn.Close()
		return
	}

	go client.readPump()
	go client.writePump()
}

// dispatch routes an event to the clients subscribed to "all", to its
// entity, or to the specific record.
func (ws *WebSocketService) dispatch(msg broker.Message) {
	var event models.Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("Error parsing event on %s: %v", msg.Subject, err)
		return
	}

	var data struct {
		ID json.RawMessage `json:"id"`
	}
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &data); err != nil {
			log.Printf("Error parsing %s event data, delivering without record id: %v", event.Event, err)
		}
	}

	keys := []string{"all", event.Entity}
	if id := resourceID(data.ID); id != "" {
		keys = append(keys, event.Entity+":"+id)
	}

	jsonData, err := json.Marshal(ServerMessage{
		Type:    "event",
		Event:   event.Event,
		Payload: event,
	})
	if err != nil {
		log.Printf("Error serializing server message: %v", err)
		return
	}

	var stale []*Client
	ws.clientsMutex.RLock()
	for _, client := range ws.clients {
		if !client.isSubscribed(keys...) {
			continue
		}
		if !client.trySend(jsonData) {
			log.Printf("Client %s send buffer full, removing client", client.ID)
			stale = append(stale, client)
		}
	}
	ws.clientsMutex.RUnlock()

	for _, client := range stale {
		ws.removeClient(client)
	}
}

// resourceID renders a string or numeric record id.
func resourceID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func (c *Client) isSubscribed(keys ...string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		if c.subscriptions[key] {
			return true
		}
	}
	return false
}

// trySend queues a message without blocking. It reports false when the
// client's buffer is full.
func (c *Client) trySend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// readPump handles incoming messages from the WebSocket client
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.stopChan:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error reading from WebSocket: %v", err)
			}
			break
		}
		c.processMessage(message)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// processMessage handles messages received from the client
func (c *Client) processMessage(msg []byte) {
	var clientMsg ClientMessage
	if err := json.Unmarshal(msg, &clientMsg); err != nil {
		log.Printf("Error parsing client message: %v", err)
		return
	}

	switch clientMsg.Type {
	case "subscribe":
		c.handleSubscription(clientMsg, true)
	case "unsubscribe":
		c.handleSubscription(clientMsg, false)
	case "ping":
		// Just a keepalive, no response needed
	default:
		log.Printf("Unknown message type: %s", clientMsg.Type)
	}
}

// handleSubscription adds or removes a subscription. The resource is "all",
// an entity name such as "note", or an entity plus id.
func (c *Client) handleSubscription(msg ClientMessage, subscribe bool) {
	var payload struct {
		Resource string `json:"resource"`
		ID       string `json:"id,omitempty"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Resource == "" {
		log.Printf("Error parsing subscription payload: %v", err)
		return
	}

	key := payload.Resource
	if payload.ID != "" {
		key = payload.Resource + ":" + payload.ID
	}

	c.mu.Lock()
	if subscribe {
		c.subscriptions[key] = true
	} else {
		delete(c.subscriptions, key)
	}
	c.mu.Unlock()

	event := "confirmed"
	if !subscribe {
		event = "removed"
	}
	confirmation, err := json.Marshal(ServerMessage{
		Type:  "subscription",
		Event: event,
		Payload: map[string]string{
			"resource": payload.Resource,
			"id":       payload.ID,
		},
	})
	if err == nil {
		c.trySend(confirmation)
	}
}

// Global instance
var WebSocketServiceInstance WebSocketServiceInterface
