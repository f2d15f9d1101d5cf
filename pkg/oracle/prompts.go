package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/backsoul/guesshuman/pkg/models"
)

// Los prompts van en inglés porque es el idioma con el que mejor responden
// los modelos; las respuestas son JSON estructurado.

func buildInitialQuestionPrompt() string {
	return "Your task is to identify who is the real human player among 4 players. " +
		"The human is trying to pretend to be an AI. " +
		"Ask smart, short questions (max ~20 words) to distinguish human from AI style.\n\n" +
		"Return 5 different, creative, varied questions as JSON only: {\"questions\":[...]}."
}

func buildFollowUpPrompt(history []models.RoundRecord) string {
	var rounds []string
	for _, h := range history {
		rounds = append(rounds, fmt.Sprintf(
			"Q: %s\nUser: %s\nAI candidates: %v\nDecision: %s\nReason: %s",
			h.Question, h.HumanAnswer, h.CandidateAnswers, h.Decision, h.Reason,
		))
	}

	return "We are playing 'Guess Human'. Based on the past rounds (questions and all 4 answers), " +
		"propose improved, short questions (max ~20 words) that better distinguish a human from AI.\n\n" +
		"Past results:\n" + strings.Join(rounds, "\n\n") + "\n\n" +
		"Return JSON only: {\"questions\":[...]} with 3 to 5 options."
}

func buildDecoyPrompt(question string) string {
	return "Create three distinct, concise answers (1 sentence each) to the following question, " +
		"written in a neutral AI style. Return only JSON with field 'answers' (3 items).\n\n" +
		"Question: " + question
}

func buildDecidePrompt(question, humanAnswer string, candidates []string) string {
	var sb strings.Builder
	sb.WriteString("You are playing 'Guess Human'. You see 4 short answers to the same question. ")
	sb.WriteString("Exactly one is from a human, the other three are from AIs. ")
	sb.WriteString("Decide whether to guess now (respond) or ask for another distinguishing question (use_tool).\n\n")
	sb.WriteString("Question: " + question + "\n")
	sb.WriteString("Answers (index: text):\n")
	for i, a := range append([]string{humanAnswer}, candidates...) {
		sb.WriteString(fmt.Sprintf("%d: %s\n", i, a))
	}
	sb.WriteString("\nRules:\n")
	sb.WriteString("- If you are highly confident, set decision='respond' and give 'guess' index (0..3) for the human.\n")
	sb.WriteString("- Always include a concise 'reason' explaining markers of human style for your choice.\n")
	sb.WriteString("- Otherwise set decision='use_tool'.\n")
	sb.WriteString("Return JSON only: {\"decision\":\"respond\"|\"use_tool\",\"guess\":0,\"reason\":\"...\"}")
	return sb.String()
}

// parseQuestions extrae la lista "questions" de la respuesta del modelo.
// Tolera texto alrededor del JSON (el modelo a veces agrega prosa).
func parseQuestions(content string, min int) ([]string, error) {
	raw, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("error parsing questions: %w", err)
	}

	var questions []string
	for _, q := range payload.Questions {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}
	if len(questions) < min {
		return nil, fmt.Errorf("el oráculo devolvió %d preguntas, se esperaban al menos %d", len(questions), min)
	}
	return questions, nil
}

// parseAnswers extrae la lista "answers" y la recorta a 3 señuelos
func parseAnswers(content string) ([]string, error) {
	raw, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Answers []string `json:"answers"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("error parsing answers: %w", err)
	}

	var answers []string
	for _, a := range payload.Answers {
		if a = strings.TrimSpace(a); a != "" {
			answers = append(answers, a)
		}
	}
	if len(answers) < models.NumCandidates {
		return nil, fmt.Errorf("el oráculo devolvió %d señuelos, se esperaban %d", len(answers), models.NumCandidates)
	}
	return answers[:models.NumCandidates], nil
}

// extractJSONObject encuentra el primer objeto JSON dentro del texto,
// tolerando etiquetas o prosa antes del payload
func extractJSONObject(content string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	if start == -1 {
		return nil, fmt.Errorf("la respuesta no contiene JSON")
	}

	decoder := json.NewDecoder(strings.NewReader(trimmed[start:]))
	var raw json.RawMessage
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("error decodificando JSON: %w", err)
	}
	return raw, nil
}
