// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 1

// ITERATIONS defines the number of MCTS iterations per move.
const ITERATIONS = 25000

// MAX_TURNS caps a game. A game can last at most 48 placements and one
// pass between each of them.
const MAX_TURNS = 120

// GAMES defines the number of games per match up in an experiment.
const GAMES = 10
