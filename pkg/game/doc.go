// Package game implements small stateful mini-games whose feedback is appended to a message.
//
// Two games are available:
//
//   - NumberGuess: a secret in [1, range] is drawn per session; the player sends
//     it in the X-Guess header. A missing header yields a prompt, a non-integer an
//     "invalid format" note, a wrong guess a retry hint. A correct guess reveals
//     the number and draws a new one.
//   - Quiz: a question is drawn per session; the player answers with
//     X-Quiz-Answer. Answers compare trimmed and case-folded. A wrong answer keeps
//     the question, a correct one reveals the answer and draws the next question.
//
// Round state lives in the caller's session under "secretNumber" and "quizIndex".
// Feedback strings come from a Translator (the message catalog) in the request
// locale, with English built-ins when a key is missing.
//
// A Registry dispatches by Type. Unknown types and games that panic leave the
// message unchanged:
//
//	games := game.NewRegistry(game.WithTranslator(catalog))
//	games.Register(game.TypeQuiz, game.NewQuiz(questions, game.WithTranslator(catalog)))
//
//	body := games.Play(game.TypeNumber, game.Input{
//		Header:  r.Header,
//		Session: sess,
//		Locale:  "ko",
//		Range:   10,
//	}, body)
//
// Games assume a single writer per session for the duration of one call; concurrent requests
// for the same session must be serialised by the session layer if strict consistency matters.
package game
