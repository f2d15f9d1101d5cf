package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/backsoul/guesshuman/pkg/models"
	"github.com/backsoul/guesshuman/pkg/oracle"
	"github.com/backsoul/guesshuman/pkg/store"
	"github.com/stretchr/testify/require"
)

func newGameService(fake *fakeOracle, maxRounds int) (*GameService, *store.MemoryStore) {
	memStore := store.NewMemoryStore()
	return NewGameService(memStore, fake, nil, maxRounds), memStore
}

func TestStartGame(t *testing.T) {
	svc, memStore := newGameService(&fakeOracle{}, 3)

	session, err := svc.StartGame(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, session.ID)
	require.Equal(t, 1, session.Round)
	require.Equal(t, 3, session.MaxRounds)
	require.Equal(t, models.StatusOngoing, session.Status)
	require.Equal(t, "Initial question?", session.CurrentQuestion)
	require.Len(t, session.CandidateAnswers, models.NumCandidates)
	require.Empty(t, session.History)

	stored, err := memStore.Get(session.ID)
	require.NoError(t, err)
	require.Equal(t, session.ID, stored.ID)
}

func TestStartGameOracleDownUsesFallbacks(t *testing.T) {
	svc, _ := newGameService(&fakeOracle{questionErr: errors.New("timeout")}, 3)

	session, err := svc.StartGame(context.Background())
	require.NoError(t, err)
	require.Equal(t, oracle.FallbackInitialQuestion, session.CurrentQuestion)
	require.Equal(t, oracle.FallbackDecoys(), session.CandidateAnswers)
}

func TestStartGameSessionsGetDistinctIDs(t *testing.T) {
	svc, memStore := newGameService(&fakeOracle{}, 3)

	first, err := svc.StartGame(context.Background())
	require.NoError(t, err)
	second, err := svc.StartGame(context.Background())
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, 2, memStore.Count())
}

func TestSubmitAnswerRoundTripAIWins(t *testing.T) {
	fake := &fakeOracle{decisions: []json.RawMessage{
		json.RawMessage(`{"decision":"respond","guess":0,"reason":"too expressive"}`),
	}}
	svc, memStore := newGameService(fake, 3)

	session, err := svc.StartGame(context.Background())
	require.NoError(t, err)

	outcome, err := svc.SubmitAnswer(context.Background(), session.ID, "I enjoy long walks")
	require.NoError(t, err)

	require.True(t, outcome.IsGameOver)
	require.Equal(t, models.WinnerAI, outcome.Winner)
	require.Equal(t, 1, outcome.Round)
	require.Equal(t, models.DecisionRespond, outcome.Decision)
	require.Equal(t, "too expressive", outcome.Reason)

	// La sesión terminal desaparece del almacén al instante
	_, err = memStore.Get(session.ID)
	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestSubmitAnswerThreeRoundScenarioHumanWins(t *testing.T) {
	fake := &fakeOracle{decisions: []json.RawMessage{
		json.RawMessage(`{"decision":"use_tool"}`),
		json.RawMessage(`{"decision":"use_tool"}`),
		json.RawMessage(`{"decision":"respond","guess":2,"reason":"index 2 seems human"}`),
	}}
	svc, memStore := newGameService(fake, 3)

	session, err := svc.StartGame(context.Background())
	require.NoError(t, err)

	outcome, err := svc.SubmitAnswer(context.Background(), session.ID, "answer one")
	require.NoError(t, err)
	require.False(t, outcome.IsGameOver)
	require.Equal(t, 2, outcome.Round)
	require.NotEmpty(t, outcome.Question)
	require.Len(t, outcome.AICandidates, models.NumCandidates)

	outcome, err = svc.SubmitAnswer(context.Background(), session.ID, "answer two")
	require.NoError(t, err)
	require.False(t, outcome.IsGameOver)
	require.Equal(t, 3, outcome.Round)

	outcome, err = svc.SubmitAnswer(context.Background(), session.ID, "answer three")
	require.NoError(t, err)
	require.True(t, outcome.IsGameOver)
	require.Equal(t, models.WinnerHuman, outcome.Winner)
	require.Equal(t, 3, outcome.Round)

	_, err = memStore.Get(session.ID)
	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestSubmitAnswerBudgetExhaustedSingleRound(t *testing.T) {
	fake := &fakeOracle{decisions: []json.RawMessage{
		json.RawMessage(`{"decision":"use_tool"}`),
	}}
	svc, _ := newGameService(fake, 1)

	session, err := svc.StartGame(context.Background())
	require.NoError(t, err)

	outcome, err := svc.SubmitAnswer(context.Background(), session.ID, "only answer")
	require.NoError(t, err)
	require.True(t, outcome.IsGameOver)
	require.Equal(t, models.WinnerHuman, outcome.Winner)
	require.Equal(t, 1, outcome.Round)
}

func TestSubmitAnswerUnparseablePayloadFallsBack(t *testing.T) {
	fake := &fakeOracle{decisions: []json.RawMessage{
		json.RawMessage(`this is not json`),
	}}
	svc, memStore := newGameService(fake, 3)

	session, err := svc.StartGame(context.Background())
	require.NoError(t, err)

	outcome, err := svc.SubmitAnswer(context.Background(), session.ID, "answer")
	require.NoError(t, err)
	require.False(t, outcome.IsGameOver)
	require.Equal(t, models.DecisionUseTool, outcome.Decision)
	require.Equal(t, FallbackReason, outcome.Reason)

	stored, err := memStore.Get(session.ID)
	require.NoError(t, err)
	require.Len(t, stored.History, 1)
	require.Equal(t, FallbackReason, stored.History[0].Reason)
}

func TestSubmitAnswerOracleErrorFallsBack(t *testing.T) {
	fake := &fakeOracle{decideErr: errors.New("conexión rechazada")}
	svc, _ := newGameService(fake, 3)

	session, err := svc.StartGame(context.Background())
	require.NoError(t, err)

	// El error del adivinador no llega al jugador: se pide otra pregunta
	outcome, err := svc.SubmitAnswer(context.Background(), session.ID, "answer")
	require.NoError(t, err)
	require.Equal(t, models.DecisionUseTool, outcome.Decision)
	require.Equal(t, 2, outcome.Round)
}

func TestSubmitAnswerUnknownSession(t *testing.T) {
	svc, _ := newGameService(&fakeOracle{}, 3)

	_, err := svc.SubmitAnswer(context.Background(), "no-such-game", "answer")
	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestSubmitAnswerConcurrentRoundsSerialize(t *testing.T) {
	fake := &fakeOracle{decisions: []json.RawMessage{
		json.RawMessage(`{"decision":"use_tool"}`),
		json.RawMessage(`{"decision":"use_tool"}`),
	}}
	svc, memStore := newGameService(fake, 10)

	session, err := svc.StartGame(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitAnswer(context.Background(), session.ID, "concurrent answer")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Dos rondas aplicadas, ninguna saltada ni duplicada
	stored, err := memStore.Get(session.ID)
	require.NoError(t, err)
	require.Equal(t, 3, stored.Round)
	require.Len(t, stored.History, 2)
}

func TestSubmitAnswerConcurrentWithTermination(t *testing.T) {
	fake := &fakeOracle{decisions: []json.RawMessage{
		json.RawMessage(`{"decision":"respond","guess":0}`),
		json.RawMessage(`{"decision":"respond","guess":0}`),
	}}
	svc, _ := newGameService(fake, 3)

	session, err := svc.StartGame(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitAnswer(context.Background(), session.ID, "answer")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	// Exactamente una transición gana; la otra ve la sesión ya eliminada
	var wins, notFound int
	for err := range results {
		if err == nil {
			wins++
		} else if errors.Is(err, store.ErrSessionNotFound) {
			notFound++
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, notFound)
}
