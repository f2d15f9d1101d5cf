package services

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/backsoul/guesshuman/pkg/models"
)

// FallbackReason motivo estándar cuando la decisión del oráculo no se
// puede interpretar; va en inglés porque vuelve al oráculo en el historial
const FallbackReason = "Could not parse; ask another question."

// ReconcileDecision convierte el payload crudo del oráculo en una decisión
// válida. Es una función total y pura: cualquier entrada, incluso vacía o
// malformada, produce siempre la misma decisión segura.
//
// Reglas:
//   - payload ausente o no parseable        -> use_tool con motivo estándar
//   - decision fuera de {respond, use_tool} -> use_tool
//   - respond con guess ausente o fuera de 0..3 -> respond con guess nil
//     (la máquina de estados lo resuelve como victoria humana)
func ReconcileDecision(raw json.RawMessage) models.Decision {
	fallback := models.Decision{
		Kind:   models.DecisionUseTool,
		Reason: FallbackReason,
	}

	if len(raw) == 0 {
		return fallback
	}

	var payload struct {
		Decision string      `json:"decision"`
		Guess    interface{} `json:"guess"`
		Reason   string      `json:"reason"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fallback
	}

	kind := strings.TrimSpace(payload.Decision)
	switch kind {
	case models.DecisionRespond:
		return models.Decision{
			Kind:   models.DecisionRespond,
			Guess:  normalizeGuess(payload.Guess),
			Reason: payload.Reason,
		}
	case models.DecisionUseTool:
		return models.Decision{
			Kind:   models.DecisionUseTool,
			Reason: payload.Reason,
		}
	default:
		// Campo presente pero con un valor desconocido (o vacío)
		reason := payload.Reason
		if reason == "" {
			reason = FallbackReason
		}
		return models.Decision{
			Kind:   models.DecisionUseTool,
			Reason: reason,
		}
	}
}

// normalizeGuess acepta solo un entero 0..3; todo lo demás queda en nil.
// Los números JSON llegan como float64.
func normalizeGuess(guess interface{}) *int {
	f, ok := guess.(float64)
	if !ok {
		return nil
	}
	if f != math.Trunc(f) {
		return nil
	}
	n := int(f)
	if n < 0 || n > models.NumCandidates {
		return nil
	}
	return &n
}
