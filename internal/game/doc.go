// Package game implements the word scramble session: one root word and the
// words a player has found inside it.
//
// The main type is Session. It is driven through a single entry point,
// Submit, which normalizes the raw input and runs it through a fixed
// pipeline of checks. The first failing check decides the rejection:
//
//  1. originality: the word has not been accepted before
//  2. possibility: the word can be spelled from the root's letters
//  3. reality: the dictionary recognises the word
//  4. identity: the word is not the root word itself
//
// # Basic Usage
//
//	s, err := game.NewSession("balloon", dict)
//	out := s.Submit(" Ball\n")
//	if out.Status == game.StatusRejected {
//	    fmt.Println(out.Rejection.Title, out.Rejection.Message)
//	}
//	fmt.Println(s.UsedWords()) // [ball]
//
// Empty submissions are ignored: Submit returns StatusIgnored and nothing
// changes.
//
// # Observing a Session
//
// Presentation layers can register an Observer with WithObserver to be told
// about accepted and rejected words and about the session ending. Events are
// delivered synchronously from Submit and End.
//
// # Concurrency
//
// A Session has exactly one driver and is not safe for concurrent use.
package game
