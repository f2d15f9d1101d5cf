package models

import "time"

// Estados posibles de una partida
const (
	StatusOngoing  = "ongoing"
	StatusAIWon    = "ai_won"
	StatusHumanWon = "human_won"
)

// Decisiones del adivinador
const (
	DecisionRespond = "respond"
	DecisionUseTool = "use_tool"
)

// Ganadores posibles de una partida terminada
const (
	WinnerAI    = "ai"
	WinnerHuman = "human"
)

// NumCandidates cantidad de respuestas señuelo mostradas junto a la humana
const NumCandidates = 3

// GameSession representa una partida de Guess Human
type GameSession struct {
	ID               string        `json:"id"`
	Round            int           `json:"round"`
	MaxRounds        int           `json:"maxRounds"`
	Status           string        `json:"status"` // "ongoing", "ai_won", "human_won"
	CurrentQuestion  string        `json:"currentQuestion"`
	CandidateAnswers []string      `json:"candidateAnswers"`
	History          []RoundRecord `json:"history"`
	StartTime        time.Time     `json:"startTime"`
	LastActivity     time.Time     `json:"lastActivity"`
}

// RoundRecord registro inmutable de una ronda completada
type RoundRecord struct {
	Question         string   `json:"question"`
	HumanAnswer      string   `json:"humanAnswer"`
	CandidateAnswers []string `json:"candidateAnswers"`
	Decision         string   `json:"decision"` // "respond" o "use_tool"
	GuessIndex       *int     `json:"guessIndex,omitempty"`
	Reason           string   `json:"reason,omitempty"`
}

// IsOngoing indica si la partida sigue en curso
func (s *GameSession) IsOngoing() bool {
	return s.Status == StatusOngoing
}

// Clone devuelve una copia profunda de la sesión. Las transiciones trabajan
// sobre la copia para que una falla nunca deje la sesión a medio mutar.
func (s *GameSession) Clone() *GameSession {
	clone := *s
	clone.CandidateAnswers = append([]string(nil), s.CandidateAnswers...)
	clone.History = make([]RoundRecord, len(s.History))
	for i, record := range s.History {
		record.CandidateAnswers = append([]string(nil), record.CandidateAnswers...)
		clone.History[i] = record
	}
	return &clone
}
