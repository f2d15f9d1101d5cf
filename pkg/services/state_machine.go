package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/backsoul/guesshuman/pkg/models"
	"github.com/backsoul/guesshuman/pkg/oracle"
)

// ErrInvalidStateTransition se intenta transicionar una sesión terminada.
// Si el GameService elimina las sesiones terminales del almacén, este error
// no debería ser alcanzable desde la API pública.
var ErrInvalidStateTransition = errors.New("transición inválida: la sesión no está en curso")

// Outcome resultado de aplicar una transición
type Outcome struct {
	Decision     string
	Guess        *int
	Question     string
	AICandidates []string
	Round        int
	IsGameOver   bool
	Winner       string
	Reason       string
}

// StateMachine aplica las transiciones de una partida
type StateMachine struct {
	oracle oracle.Oracle
}

// NewStateMachine crea la máquina de estados del juego
func NewStateMachine(oracle oracle.Oracle) *StateMachine {
	return &StateMachine{
		oracle: oracle,
	}
}

// Transition aplica una ronda: registra la respuesta humana y la decisión del
// adivinador, y resuelve si la partida termina o continúa con pregunta nueva.
// Trabaja sobre una copia y devuelve la sesión actualizada, así una falla
// nunca deja la sesión original a medio mutar.
func (m *StateMachine) Transition(ctx context.Context, session *models.GameSession, humanAnswer string, decision models.Decision) (*models.GameSession, *Outcome, error) {
	if !session.IsOngoing() {
		return nil, nil, ErrInvalidStateTransition
	}

	next := session.Clone()
	next.LastActivity = time.Now()
	next.History = append(next.History, models.RoundRecord{
		Question:         next.CurrentQuestion,
		HumanAnswer:      humanAnswer,
		CandidateAnswers: append([]string(nil), next.CandidateAnswers...),
		Decision:         decision.Kind,
		GuessIndex:       decision.Guess,
		Reason:           decision.Reason,
	})

	if decision.Kind == models.DecisionRespond {
		// El índice 0 está reservado para la respuesta humana; solo
		// guess == 0 es una identificación correcta. Sin guess válido
		// no hay identificación y gana el humano.
		winner := models.WinnerHuman
		next.Status = models.StatusHumanWon
		if decision.Guess != nil && *decision.Guess == 0 {
			winner = models.WinnerAI
			next.Status = models.StatusAIWon
		}

		return next, &Outcome{
			Decision:   decision.Kind,
			Guess:      decision.Guess,
			Round:      next.Round,
			IsGameOver: true,
			Winner:     winner,
			Reason:     decision.Reason,
		}, nil
	}

	// use_tool: ¿se agotó el presupuesto de rondas?
	if next.Round >= next.MaxRounds {
		// El adivinador no se comprometió dentro del presupuesto: gana el humano
		next.Status = models.StatusHumanWon
		return next, &Outcome{
			Decision:   decision.Kind,
			Round:      next.Round,
			IsGameOver: true,
			Winner:     models.WinnerHuman,
			Reason:     decision.Reason,
		}, nil
	}

	// Ronda nueva: pregunta mejorada según el historial completo + 3 señuelos.
	// Si el oráculo falla, se usan los valores de respaldo en vez de abortar.
	question, err := m.oracle.FollowUpQuestion(ctx, next.History)
	if err != nil {
		log.Printf("⚠️ Error generando pregunta de seguimiento: %v, usando respaldo", err)
		question = oracle.FallbackFollowUpQuestion
	}

	decoys, err := m.oracle.DecoyAnswers(ctx, question)
	if err != nil {
		log.Printf("⚠️ Error generando señuelos: %v, usando respaldo", err)
		decoys = oracle.FallbackDecoys()
	}

	next.Round++
	next.CurrentQuestion = question
	next.CandidateAnswers = decoys

	return next, &Outcome{
		Decision:     decision.Kind,
		Question:     question,
		AICandidates: decoys,
		Round:        next.Round,
		IsGameOver:   false,
		Reason:       decision.Reason,
	}, nil
}
