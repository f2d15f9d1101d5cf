package services

import (
	"context"
	"errors"
	"testing"

	"github.com/backsoul/guesshuman/pkg/models"
	"github.com/backsoul/guesshuman/pkg/oracle"
	"github.com/stretchr/testify/require"
)

func ongoingSession(round, maxRounds int) *models.GameSession {
	return &models.GameSession{
		ID:               "game-1",
		Round:            round,
		MaxRounds:        maxRounds,
		Status:           models.StatusOngoing,
		CurrentQuestion:  "Question one?",
		CandidateAnswers: []string{"a1", "a2", "a3"},
		History:          []models.RoundRecord{},
	}
}

func TestTransitionRespondGuessZeroAIWins(t *testing.T) {
	m := NewStateMachine(&fakeOracle{})
	session := ongoingSession(1, 3)

	decision := models.Decision{Kind: models.DecisionRespond, Guess: intPtr(0), Reason: "too human"}
	next, outcome, err := m.Transition(context.Background(), session, "my answer", decision)
	require.NoError(t, err)

	require.True(t, outcome.IsGameOver)
	require.Equal(t, models.WinnerAI, outcome.Winner)
	require.Equal(t, 1, outcome.Round)
	require.Equal(t, "too human", outcome.Reason)
	require.Equal(t, models.StatusAIWon, next.Status)
	require.Len(t, next.History, 1)
	require.Equal(t, "my answer", next.History[0].HumanAnswer)
	require.Equal(t, "Question one?", next.History[0].Question)
}

func TestTransitionRespondWrongGuessHumanWins(t *testing.T) {
	m := NewStateMachine(&fakeOracle{})
	session := ongoingSession(1, 3)

	decision := models.Decision{Kind: models.DecisionRespond, Guess: intPtr(2)}
	_, outcome, err := m.Transition(context.Background(), session, "my answer", decision)
	require.NoError(t, err)

	require.True(t, outcome.IsGameOver)
	require.Equal(t, models.WinnerHuman, outcome.Winner)
}

func TestTransitionRespondWithoutGuessHumanWins(t *testing.T) {
	// Sin guess válido no hay identificación: gana el humano
	m := NewStateMachine(&fakeOracle{})
	session := ongoingSession(1, 3)

	decision := models.Decision{Kind: models.DecisionRespond}
	next, outcome, err := m.Transition(context.Background(), session, "my answer", decision)
	require.NoError(t, err)

	require.True(t, outcome.IsGameOver)
	require.Equal(t, models.WinnerHuman, outcome.Winner)
	require.Equal(t, models.StatusHumanWon, next.Status)
	require.Nil(t, outcome.Guess)
}

func TestTransitionUseToolAdvancesRound(t *testing.T) {
	fake := &fakeOracle{}
	m := NewStateMachine(fake)
	session := ongoingSession(1, 3)

	decision := models.Decision{Kind: models.DecisionUseTool, Reason: "need more"}
	next, outcome, err := m.Transition(context.Background(), session, "my answer", decision)
	require.NoError(t, err)

	require.False(t, outcome.IsGameOver)
	require.Equal(t, 2, outcome.Round)
	require.Equal(t, "Follow-up question?", outcome.Question)
	require.Len(t, outcome.AICandidates, models.NumCandidates)

	require.Equal(t, 2, next.Round)
	require.Equal(t, "Follow-up question?", next.CurrentQuestion)
	require.Len(t, next.History, 1)
	require.Equal(t, models.DecisionUseTool, next.History[0].Decision)
	require.Equal(t, 1, fake.followUpCalls)
}

func TestTransitionUseToolBudgetExhaustedHumanWins(t *testing.T) {
	fake := &fakeOracle{}
	m := NewStateMachine(fake)
	session := ongoingSession(3, 3)

	decision := models.Decision{Kind: models.DecisionUseTool}
	next, outcome, err := m.Transition(context.Background(), session, "my answer", decision)
	require.NoError(t, err)

	require.True(t, outcome.IsGameOver)
	require.Equal(t, models.WinnerHuman, outcome.Winner)
	require.Equal(t, 3, outcome.Round)
	require.Equal(t, models.StatusHumanWon, next.Status)
	// No se genera pregunta nueva cuando se agotó el presupuesto
	require.Equal(t, 0, fake.followUpCalls)
}

func TestTransitionDoesNotMutateOriginal(t *testing.T) {
	m := NewStateMachine(&fakeOracle{})
	session := ongoingSession(1, 3)

	decision := models.Decision{Kind: models.DecisionRespond, Guess: intPtr(0)}
	_, _, err := m.Transition(context.Background(), session, "my answer", decision)
	require.NoError(t, err)

	require.Equal(t, models.StatusOngoing, session.Status)
	require.Equal(t, 1, session.Round)
	require.Empty(t, session.History)
}

func TestTransitionRejectsTerminalSession(t *testing.T) {
	m := NewStateMachine(&fakeOracle{})
	session := ongoingSession(1, 3)
	session.Status = models.StatusAIWon

	_, _, err := m.Transition(context.Background(), session, "my answer", models.Decision{Kind: models.DecisionUseTool})
	require.ErrorIs(t, err, ErrInvalidStateTransition)
	require.Empty(t, session.History)
}

func TestTransitionOracleFailureUsesFallbacks(t *testing.T) {
	fake := &fakeOracle{questionErr: errors.New("oráculo caído")}
	m := NewStateMachine(fake)
	session := ongoingSession(1, 3)

	decision := models.Decision{Kind: models.DecisionUseTool}
	next, outcome, err := m.Transition(context.Background(), session, "my answer", decision)
	require.NoError(t, err)

	require.False(t, outcome.IsGameOver)
	require.Equal(t, oracle.FallbackFollowUpQuestion, next.CurrentQuestion)
	require.Equal(t, oracle.FallbackDecoys(), next.CandidateAnswers)
}

func TestTransitionHistoryGrowsOnePerRound(t *testing.T) {
	m := NewStateMachine(&fakeOracle{})
	session := ongoingSession(1, 5)

	current := session
	for i := 1; i <= 3; i++ {
		next, outcome, err := m.Transition(context.Background(), current, "answer", models.Decision{Kind: models.DecisionUseTool})
		require.NoError(t, err)
		require.False(t, outcome.IsGameOver)
		require.Equal(t, i+1, next.Round)
		require.Len(t, next.History, i)
		current = next
	}
}
