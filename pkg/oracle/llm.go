package oracle

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/backsoul/guesshuman/pkg/models"
)

// completer es lo único que cambia entre proveedores: mandar un prompt
// y recuperar el texto de la respuesta
type completer interface {
	complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error)
}

// Temperaturas y límites por tipo de llamada
const (
	initialQuestionTemp  = 0.7
	followUpQuestionTemp = 0.6
	decoyTemp            = 0.3
	questionMaxTokens    = 200
	decoyMaxTokens       = 120
	minInitialQuestions  = 5
	minFollowUpQuestions = 1
)

// LLMOracle implementa Oracle sobre cualquier proveedor de LLM.
// Cada llamada queda acotada por un timeout para que el candado de la
// sesión nunca quede bloqueado indefinidamente.
type LLMOracle struct {
	c           completer
	timeout     time.Duration
	temperature float32
	maxTokens   int

	// El modelo devuelve varias preguntas candidatas y se elige una al azar;
	// la fuente aleatoria se inyecta para que los tests sean deterministas.
	rng *rand.Rand
	mu  sync.Mutex
}

// NewLLMOracle arma un oráculo sobre el proveedor dado.
// Si rng es nil se usa una fuente sembrada con la hora actual.
func NewLLMOracle(c completer, timeout time.Duration, temperature float32, maxTokens int, rng *rand.Rand) *LLMOracle {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LLMOracle{
		c:           c,
		timeout:     timeout,
		temperature: temperature,
		maxTokens:   maxTokens,
		rng:         rng,
	}
}

// InitialQuestion genera 5 preguntas discriminantes y elige una al azar
func (o *LLMOracle) InitialQuestion(ctx context.Context) (string, error) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	content, err := o.c.complete(ctx, buildInitialQuestionPrompt(), initialQuestionTemp, questionMaxTokens)
	if err != nil {
		return "", err
	}

	questions, err := parseQuestions(content, minInitialQuestions)
	if err != nil {
		return "", err
	}
	return o.pick(questions), nil
}

// FollowUpQuestion genera 3 a 5 preguntas mejoradas según el historial y elige una
func (o *LLMOracle) FollowUpQuestion(ctx context.Context, history []models.RoundRecord) (string, error) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	content, err := o.c.complete(ctx, buildFollowUpPrompt(history), followUpQuestionTemp, questionMaxTokens)
	if err != nil {
		return "", err
	}

	questions, err := parseQuestions(content, minFollowUpQuestions)
	if err != nil {
		return "", err
	}
	return o.pick(questions), nil
}

// DecoyAnswers genera las 3 respuestas señuelo para la pregunta
func (o *LLMOracle) DecoyAnswers(ctx context.Context, question string) ([]string, error) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	content, err := o.c.complete(ctx, buildDecoyPrompt(question), decoyTemp, decoyMaxTokens)
	if err != nil {
		return nil, err
	}

	answers, err := parseAnswers(content)
	if err != nil {
		return nil, err
	}
	o.shuffle(answers)
	return answers, nil
}

// Decide pide al adivinador su veredicto y devuelve el payload crudo;
// la validación queda a cargo del reconciliador
func (o *LLMOracle) Decide(ctx context.Context, question, humanAnswer string, candidates []string) (json.RawMessage, error) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	content, err := o.c.complete(ctx, buildDecidePrompt(question, humanAnswer, candidates), o.temperature, o.maxTokens)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSONObject(content)
	if err != nil {
		// Se devuelve el texto crudo igual: el reconciliador lo resolverá a use_tool
		return json.RawMessage(content), nil
	}
	return raw, nil
}

func (o *LLMOracle) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

// pick elige una opción al azar; rand.Rand no es seguro para concurrencia
func (o *LLMOracle) pick(options []string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return options[o.rng.Intn(len(options))]
}

// shuffle baraja el orden de presentación de los señuelos
func (o *LLMOracle) shuffle(answers []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rng.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
}
