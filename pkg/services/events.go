package services

import "log"

// EventSink recibe eventos del juego. Es fuego-y-olvido: nunca debe
// afectar el flujo de una partida ni hacer fallar la petición.
type EventSink interface {
	LogEvent(name string, input, output interface{})
}

// Broadcaster es lo que el event logger necesita del hub de WebSocket
type Broadcaster interface {
	BroadcastMessage(msgType string, data interface{})
}

// EventLogger registra eventos en el log y los retransmite a los
// espectadores conectados por WebSocket
type EventLogger struct {
	hub Broadcaster
}

// NewEventLogger crea el registrador de eventos; hub puede ser nil
func NewEventLogger(hub Broadcaster) *EventLogger {
	return &EventLogger{
		hub: hub,
	}
}

// LogEvent registra y retransmite un evento del juego
func (l *EventLogger) LogEvent(name string, input, output interface{}) {
	// Un sink de eventos roto jamás debe tumbar una partida
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ Evento %s falló: %v", name, r)
		}
	}()

	log.Printf("📊 Evento: %s", name)

	if l.hub != nil {
		l.hub.BroadcastMessage(name, map[string]interface{}{
			"input":  input,
			"output": output,
		})
	}
}
