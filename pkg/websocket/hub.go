package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/fasthttp/websocket"
)

// Hub mantiene a los espectadores conectados y les retransmite los
// eventos de las partidas (inicio, progreso por ronda, final)
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
}

// Message mensaje genérico enviado a los espectadores
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// NewHub crea el hub de espectadores
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Run procesa registros, bajas y mensajes; debe correr en su propia goroutine
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("👀 Espectador conectado. Total: %d", h.clientCount())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mutex.Unlock()
			log.Printf("👀 Espectador desconectado. Total: %d", h.clientCount())

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					log.Printf("⚠️ Error enviando mensaje WebSocket: %v", err)
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register registra un espectador nuevo
func (h *Hub) Register(conn *websocket.Conn) {
	h.register <- conn
}

// Unregister da de baja a un espectador
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

// BroadcastMessage retransmite un evento a todos los espectadores
func (h *Hub) BroadcastMessage(msgType string, data interface{}) {
	msg := Message{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	msgData, err := json.Marshal(msg)
	if err != nil {
		log.Printf("⚠️ Error serializando mensaje: %v", err)
		return
	}

	// Si el canal está lleno se descarta el evento: los espectadores
	// nunca deben frenar una partida
	select {
	case h.broadcast <- msgData:
	default:
		log.Println("⚠️ Canal de broadcast lleno, evento descartado")
	}
}

func (h *Hub) clientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
