package oracle

import (
	"context"
	"encoding/json"

	"github.com/backsoul/guesshuman/pkg/models"
)

// Oracle es la capacidad externa de generación: preguntas, señuelos y la
// decisión del adivinador. Todas las llamadas pueden fallar o devolver datos
// malformados; los consumidores aplican los valores de respaldo en vez de
// propagar el error como falla dura.
type Oracle interface {
	// InitialQuestion genera la pregunta de la primera ronda
	InitialQuestion(ctx context.Context) (string, error)
	// FollowUpQuestion genera una pregunta nueva condicionada al historial completo
	FollowUpQuestion(ctx context.Context, history []models.RoundRecord) (string, error)
	// DecoyAnswers genera las 3 respuestas señuelo para una pregunta
	DecoyAnswers(ctx context.Context, question string) ([]string, error)
	// Decide devuelve el payload crudo de la decisión del adivinador.
	// El orden de presentación es [humano, señuelo1, señuelo2, señuelo3];
	// al oráculo nunca se le dice cuál índice es el humano.
	Decide(ctx context.Context, question, humanAnswer string, candidates []string) (json.RawMessage, error)
}

// Valores de respaldo cuando el oráculo falla o devuelve basura
const (
	FallbackInitialQuestion  = "In one sentence, how would you approach solving an unfamiliar problem?"
	FallbackFollowUpQuestion = "Give one sentence describing a subtle preference you have in daily life."
)

// FallbackDecoys devuelve las 3 respuestas señuelo de respaldo
func FallbackDecoys() []string {
	return []string{
		"I would choose a practical option based on available data.",
		"My response depends on optimizing for clear objectives and constraints.",
		"I would consider trade-offs and select the most consistent approach.",
	}
}
