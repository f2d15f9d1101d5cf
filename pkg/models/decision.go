package models

// Decision es la decisión del oráculo ya validada por el reconciliador.
// Kind siempre es DecisionRespond o DecisionUseTool; Guess solo puede ser
// un índice 0..3 (0 es la respuesta humana) o nil si no hubo guess válido.
type Decision struct {
	Kind   string `json:"decision"`
	Guess  *int   `json:"guess,omitempty"`
	Reason string `json:"reason,omitempty"`
}
