package game

import (
	"strconv"
	"strings"

	"github.com/dmitrymomot/fortunecookie/pkg/session"
)

// Number-guess protocol.
const (
	GuessHeader     = "X-Guess"
	SecretNumberKey = "secretNumber"
)

// Number-guess catalog keys.
const (
	KeyGuessPrompt      = "game.guess_prompt"
	KeyInvalidGuess     = "game.invalid_guess"
	KeyWrongGuess       = "game.wrong_guess"
	KeyGuessedCorrectly = "game.guessed_correctly"
)

const (
	defaultGuessPrompt      = "Guess a number between 1 and %{range} with the X-Guess header!"
	defaultInvalidGuess     = "That guess is not a number."
	defaultWrongGuess       = "Wrong guess, try again!"
	defaultGuessedCorrectly = "Correct! The number was %{number}. A new number has been picked."
)

// NumberGuess asks the player to guess a secret number in [1, Range].
// The secret lives in the session and is replaced after a correct guess.
type NumberGuess struct {
	options
}

// NewNumberGuess creates the number-guess game.
func NewNumberGuess(opts ...Option) *NumberGuess {
	return &NumberGuess{options: newOptions(opts)}
}

// Play implements Game.
func (g *NumberGuess) Play(in Input, message string) string {
	if in.Session == nil {
		g.logger.Debug("number guess skipped: no session")
		return message
	}

	secret := g.secret(in)

	raw, ok := in.header(GuessHeader)
	if !ok {
		return appendMessage(message, g.translator.Td(in.Locale, KeyGuessPrompt, defaultGuessPrompt,
			"range", strconv.Itoa(in.gameRange())))
	}

	guess, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return appendMessage(message, g.translator.Td(in.Locale, KeyInvalidGuess, defaultInvalidGuess))
	}

	if guess != secret {
		return appendMessage(message, g.translator.Td(in.Locale, KeyWrongGuess, defaultWrongGuess))
	}

	in.Session.Set(SecretNumberKey, g.draw(in))
	return appendMessage(message, g.translator.Td(in.Locale, KeyGuessedCorrectly, defaultGuessedCorrectly,
		"number", strconv.Itoa(secret)))
}

// secret returns the stored secret, drawing a new one when none is usable.
func (g *NumberGuess) secret(in Input) int {
	if v, ok := in.Session.Get(SecretNumberKey); ok {
		if n, ok := session.ToInt(v); ok && n >= 1 && n <= in.gameRange() {
			return n
		}
	}

	n := g.draw(in)
	in.Session.Set(SecretNumberKey, n)
	return n
}

func (g *NumberGuess) draw(in Input) int {
	return g.rng.IntN(in.gameRange()) + 1
}
