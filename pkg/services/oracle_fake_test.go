package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/backsoul/guesshuman/pkg/models"
)

// fakeOracle es un oráculo guionado: devuelve las decisiones en orden
// y preguntas/señuelos fijos, sin tocar la red
type fakeOracle struct {
	mu sync.Mutex

	decisions   []json.RawMessage
	decideErr   error
	questionErr error

	initialCalls  int
	followUpCalls int
	decideCalls   int
}

func (f *fakeOracle) InitialQuestion(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initialCalls++
	if f.questionErr != nil {
		return "", f.questionErr
	}
	return "Initial question?", nil
}

func (f *fakeOracle) FollowUpQuestion(ctx context.Context, history []models.RoundRecord) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.followUpCalls++
	if f.questionErr != nil {
		return "", f.questionErr
	}
	return "Follow-up question?", nil
}

func (f *fakeOracle) DecoyAnswers(ctx context.Context, question string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.questionErr != nil {
		return nil, f.questionErr
	}
	return []string{"decoy one", "decoy two", "decoy three"}, nil
}

func (f *fakeOracle) Decide(ctx context.Context, question, humanAnswer string, candidates []string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decideCalls++
	if f.decideErr != nil {
		return nil, f.decideErr
	}
	if len(f.decisions) == 0 {
		return json.RawMessage(`{"decision":"use_tool"}`), nil
	}
	next := f.decisions[0]
	f.decisions = f.decisions[1:]
	return next, nil
}
