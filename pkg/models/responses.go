package models

// APIResponse estructura estándar para respuestas de API
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// StartResponse respuesta de POST /api/game/start
type StartResponse struct {
	GameID       string   `json:"game_id"`
	Round        int      `json:"round"`
	Question     string   `json:"question"`
	AICandidates []string `json:"ai_candidates"`
}

// AnswerRequest request de POST /api/game/answer
type AnswerRequest struct {
	GameID string `json:"game_id"`
	Answer string `json:"answer"`
}

// AnswerResponse resultado de procesar la respuesta del jugador.
// Si la partida sigue, trae la nueva pregunta y los nuevos señuelos;
// si terminó, trae el ganador y la ronda final.
type AnswerResponse struct {
	Decision     string   `json:"decision"` // "respond" o "use_tool"
	Guess        *int     `json:"guess,omitempty"`
	Question     string   `json:"question,omitempty"`
	Round        int      `json:"round"`
	AICandidates []string `json:"ai_candidates,omitempty"`
	IsGameOver   bool     `json:"is_game_over"`
	Winner       string   `json:"winner,omitempty"` // "ai" o "human"
	Reason       string   `json:"reason,omitempty"`
}
