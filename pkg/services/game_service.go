package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/backsoul/guesshuman/pkg/models"
	"github.com/backsoul/guesshuman/pkg/oracle"
	"github.com/backsoul/guesshuman/pkg/store"
	"github.com/google/uuid"
)

// GameService es la fachada del motor de partidas: iniciar una partida y
// procesar la respuesta del jugador en cada ronda
type GameService struct {
	store     store.SessionStore
	oracle    oracle.Oracle
	machine   *StateMachine
	events    EventSink
	maxRounds int

	// Un candado por sesión: dos SubmitAnswer concurrentes sobre el mismo
	// ID se serializan, nunca se aplican dos transiciones a la vez
	locks sync.Map // id -> *sync.Mutex
}

// NewGameService crea el servicio de partidas; events puede ser nil
func NewGameService(sessionStore store.SessionStore, gameOracle oracle.Oracle, events EventSink, maxRounds int) *GameService {
	if maxRounds < 1 {
		maxRounds = 1
	}
	return &GameService{
		store:     sessionStore,
		oracle:    gameOracle,
		machine:   NewStateMachine(gameOracle),
		events:    events,
		maxRounds: maxRounds,
	}
}

// StartGame crea una partida nueva: pregunta inicial, 3 señuelos, ronda 1
func (s *GameService) StartGame(ctx context.Context) (*models.GameSession, error) {
	question, err := s.oracle.InitialQuestion(ctx)
	if err != nil {
		log.Printf("⚠️ Error generando pregunta inicial: %v, usando respaldo", err)
		question = oracle.FallbackInitialQuestion
	}

	decoys, err := s.oracle.DecoyAnswers(ctx, question)
	if err != nil {
		log.Printf("⚠️ Error generando señuelos: %v, usando respaldo", err)
		decoys = oracle.FallbackDecoys()
	}

	now := time.Now()
	session := &models.GameSession{
		ID:               uuid.New().String(),
		Round:            1,
		MaxRounds:        s.maxRounds,
		Status:           models.StatusOngoing,
		CurrentQuestion:  question,
		CandidateAnswers: decoys,
		History:          []models.RoundRecord{},
		StartTime:        now,
		LastActivity:     now,
	}

	if err := s.store.Create(session); err != nil {
		return nil, fmt.Errorf("error guardando sesión: %w", err)
	}

	s.logEvent("game_started", nil, map[string]interface{}{"game_id": session.ID})
	log.Printf("🎮 Partida nueva %s (máximo %d rondas)", session.ID, session.MaxRounds)
	return session, nil
}

// SubmitAnswer procesa la respuesta humana de la ronda activa: pide el
// veredicto al adivinador, lo reconcilia, aplica la transición y persiste
// o elimina la sesión según el resultado
func (s *GameService) SubmitAnswer(ctx context.Context, gameID, humanAnswer string) (*Outcome, error) {
	mu := s.lockFor(gameID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.store.Get(gameID)
	if err != nil {
		return nil, err
	}

	// El payload crudo puede venir malformado o directamente no venir;
	// el reconciliador siempre lo resuelve a una decisión segura
	raw, err := s.oracle.Decide(ctx, session.CurrentQuestion, humanAnswer, session.CandidateAnswers)
	if err != nil {
		log.Printf("⚠️ Error consultando al adivinador: %v, se pedirá otra pregunta", err)
		raw = nil
	}
	decision := ReconcileDecision(raw)

	updated, outcome, err := s.machine.Transition(ctx, session, humanAnswer, decision)
	if err != nil {
		return nil, err
	}

	if outcome.IsGameOver {
		// Una sesión terminal se elimina al instante; no acepta más rondas
		if err := s.store.Evict(gameID); err != nil {
			log.Printf("⚠️ Error eliminando sesión %s: %v", gameID, err)
		}
		s.locks.Delete(gameID)
		s.logEvent("game_finished", map[string]interface{}{"game_id": gameID}, outcome)
		log.Printf("🏁 Partida %s terminada en ronda %d, ganador: %s", gameID, outcome.Round, outcome.Winner)
	} else {
		if err := s.store.Put(updated); err != nil {
			return nil, fmt.Errorf("error guardando sesión: %w", err)
		}
		s.logEvent("game_progress", map[string]interface{}{"game_id": gameID}, outcome)
		log.Printf("🔄 Partida %s avanza a ronda %d", gameID, outcome.Round)
	}

	return outcome, nil
}

func (s *GameService) lockFor(gameID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(gameID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *GameService) logEvent(name string, input, output interface{}) {
	if s.events != nil {
		s.events.LogEvent(name, input, output)
	}
}
