package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/backsoul/guesshuman/pkg/models"
	"github.com/backsoul/guesshuman/pkg/services"
	"github.com/backsoul/guesshuman/pkg/store"
	websocketHub "github.com/backsoul/guesshuman/pkg/websocket"
	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
)

// GameHandler maneja las peticiones HTTP del juego
type GameHandler struct {
	gameService *services.GameService
	hub         *websocketHub.Hub
}

// NewGameHandler crea una nueva instancia del handler del juego
func NewGameHandler(gameService *services.GameService, hub *websocketHub.Hub) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		hub:         hub,
	}
}

var upgrader = websocket.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true // Permitir conexiones desde cualquier origen en desarrollo
	},
}

// StartGame maneja POST /api/game/start
func (h *GameHandler) StartGame(ctx *fasthttp.RequestCtx) {
	session, err := h.gameService.StartGame(ctx)
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusInternalServerError, "Error iniciando partida")
		return
	}

	responseData := models.StartResponse{
		GameID:       session.ID,
		Round:        session.Round,
		Question:     session.CurrentQuestion,
		AICandidates: session.CandidateAnswers,
	}

	h.respondWithSuccess(ctx, responseData, "Partida iniciada exitosamente")
}

// SubmitAnswer maneja POST /api/game/answer
func (h *GameHandler) SubmitAnswer(ctx *fasthttp.RequestCtx) {
	var request models.AnswerRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		h.respondWithError(ctx, fasthttp.StatusBadRequest, "JSON inválido")
		return
	}

	if request.GameID == "" {
		h.respondWithError(ctx, fasthttp.StatusBadRequest, "game_id es requerido")
		return
	}
	if request.Answer == "" {
		h.respondWithError(ctx, fasthttp.StatusBadRequest, "answer es requerido")
		return
	}

	outcome, err := h.gameService.SubmitAnswer(ctx, request.GameID, request.Answer)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			h.respondWithError(ctx, fasthttp.StatusNotFound, "Sesión no encontrada")
			return
		}
		log.Printf("❌ Error procesando respuesta: %v", err)
		h.respondWithError(ctx, fasthttp.StatusInternalServerError, "Error procesando respuesta")
		return
	}

	responseData := models.AnswerResponse{
		Decision:     outcome.Decision,
		Guess:        outcome.Guess,
		Question:     outcome.Question,
		Round:        outcome.Round,
		AICandidates: outcome.AICandidates,
		IsGameOver:   outcome.IsGameOver,
		Winner:       outcome.Winner,
		Reason:       outcome.Reason,
	}

	h.respondWithSuccess(ctx, responseData, "Respuesta procesada exitosamente")
}

// HandleWebSocket maneja /ws para los espectadores
func (h *GameHandler) HandleWebSocket(ctx *fasthttp.RequestCtx) {
	err := upgrader.Upgrade(ctx, func(ws *websocket.Conn) {
		defer ws.Close()

		h.hub.Register(ws)
		defer h.hub.Unregister(ws)

		// Escuchar hasta que el espectador se desconecte
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
	})

	if err != nil {
		log.Printf("⚠️ Error upgrading to WebSocket: %v", err)
		ctx.Error("Error upgrading to WebSocket", fasthttp.StatusInternalServerError)
	}
}

// HealthCheck maneja GET /api/health
func (h *GameHandler) HealthCheck(ctx *fasthttp.RequestCtx) {
	h.respondWithSuccess(ctx, map[string]interface{}{
		"status": "healthy",
	}, "Servicio funcionando correctamente")
}

// Métodos auxiliares para respuestas HTTP

func (h *GameHandler) respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, response interface{}) {
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.SetStatusCode(statusCode)

	jsonData, err := json.Marshal(response)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"success": false, "error": "Error al serializar respuesta"}`)
		return
	}

	ctx.SetBody(jsonData)
}

func (h *GameHandler) respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	response := models.APIResponse{
		Success: false,
		Error:   message,
	}
	h.respondWithJSON(ctx, statusCode, response)
}

func (h *GameHandler) respondWithSuccess(ctx *fasthttp.RequestCtx, data interface{}, message string) {
	response := models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
	h.respondWithJSON(ctx, fasthttp.StatusOK, response)
}
