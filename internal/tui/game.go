package tui

import "github.com/lox/wordscramble/internal/game"

// Game is what the model plays against: a local session or a remote one.
type Game interface {
	RootWord() string
	UsedWords() []string
	Submit(raw string) (game.Outcome, error)
}

// Local adapts an in-process session to Game.
func Local(s *game.Session) Game {
	return localGame{s}
}

type localGame struct {
	*game.Session
}

func (g localGame) Submit(raw string) (game.Outcome, error) {
	return g.Session.Submit(raw), nil
}
