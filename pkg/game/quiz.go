package game

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/dmitrymomot/fortunecookie/pkg/session"
)

// Quiz protocol.
const (
	QuizAnswerHeader = "X-Quiz-Answer"
	QuizIndexKey     = "quizIndex"
)

// Quiz catalog keys.
const (
	KeyQuizDisplay = "game.quiz.display"
	KeyQuizPrompt  = "game.quiz_prompt"
	KeyQuizCorrect = "game.quiz.correct"
	KeyQuizWrong   = "game.quiz.wrong"
)

const (
	defaultQuizDisplay = "Quiz: %{question}"
	defaultQuizPrompt  = "Send your answer in the X-Quiz-Answer header."
	defaultQuizCorrect = "Correct! The answer was %{answer}."
	defaultQuizWrong   = "Wrong answer, try again!"
)

// Question is one quiz entry.
type Question struct {
	Text   string `yaml:"question" json:"question"`
	Answer string `yaml:"answer" json:"answer"`
}

// DefaultQuestions is used when a quiz is created without questions.
var DefaultQuestions = []Question{
	{Text: "What is the capital of France?", Answer: "Paris"},
	{Text: "How many continents are there on Earth?", Answer: "7"},
	{Text: "Which planet is known as the Red Planet?", Answer: "Mars"},
	{Text: "What is the largest ocean on Earth?", Answer: "Pacific"},
	{Text: "What is the chemical symbol for gold?", Answer: "Au"},
}

// Quiz asks one question per round. The current question index lives in the session;
// it changes only after a correct answer.
type Quiz struct {
	options
	questions []Question
}

// NewQuiz creates a quiz over questions, or DefaultQuestions when empty.
func NewQuiz(questions []Question, opts ...Option) *Quiz {
	if len(questions) == 0 {
		questions = DefaultQuestions
	}
	return &Quiz{
		options:   newOptions(opts),
		questions: questions,
	}
}

// Questions returns the configured questions.
func (q *Quiz) Questions() []Question {
	return q.questions
}

// Play implements Game.
func (q *Quiz) Play(in Input, message string) string {
	if in.Session == nil {
		q.logger.Debug("quiz skipped: no session")
		return message
	}

	idx := q.index(in)
	current := q.questions[idx]

	answer, ok := in.header(QuizAnswerHeader)
	if !ok {
		return appendMessage(message,
			q.translator.Td(in.Locale, KeyQuizDisplay, defaultQuizDisplay, "question", current.Text),
			q.translator.Td(in.Locale, KeyQuizPrompt, defaultQuizPrompt),
		)
	}

	if !q.matches(answer, current.Answer) {
		return appendMessage(message, q.translator.Td(in.Locale, KeyQuizWrong, defaultQuizWrong))
	}

	in.Session.Set(QuizIndexKey, q.rng.IntN(len(q.questions)))
	return appendMessage(message, q.translator.Td(in.Locale, KeyQuizCorrect, defaultQuizCorrect,
		"answer", current.Answer))
}

// matches compares answers trimmed and case-folded.
// Casers are stateful, so each comparison gets its own.
func (q *Quiz) matches(given, want string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(given)) == fold.String(strings.TrimSpace(want))
}

// index returns the stored question index, drawing a new one when none is usable.
func (q *Quiz) index(in Input) int {
	if v, ok := in.Session.Get(QuizIndexKey); ok {
		if n, ok := session.ToInt(v); ok && n >= 0 && n < len(q.questions) {
			return n
		}
	}

	n := q.rng.IntN(len(q.questions))
	in.Session.Set(QuizIndexKey, n)
	return n
}
