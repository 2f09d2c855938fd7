package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Rocket-Z/Astra-Do/game"
	"github.com/Rocket-Z/Astra-Do/searcher/agent"
)

// updateBuffer holds every move of a game. A game has at most 48 placements
// and never two passes in a row before the end.
const updateBuffer = 112

var (
	ErrNoGame      = errors.New("no game in progress")
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrNotYourTurn = errors.New("waiting for the computer to move")
	ErrCannotSkip  = errors.New("cannot skip while a placement is available")
)

type Mode int

const (
	Idle Mode = iota
	PlayAsBlack
	PlayAsWhite
	PlayMyself
	GameOver
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case PlayAsBlack:
		return "play as black"
	case PlayAsWhite:
		return "play as white"
	case PlayMyself:
		return "play myself"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

type Update struct {
	Move     game.Cell
	Position game.Position
}

// UpdateGetter returns the next pending update without blocking. ok is false
// when nothing is pending or the game is over and every update was read.
type UpdateGetter func() (u Update, ok bool)

// Session drives one human game at a time against an agent.
type Session struct {
	mu       sync.Mutex
	ai       agent.Agent
	mode     Mode
	human    game.Side
	position game.Position
	updateCh chan Update
}

func NewSession(ai agent.Agent) *Session {
	return &Session{ai: ai, mode: Idle, position: game.NewPosition()}
}

// Start begins a new game from the opening. If the computer plays black it
// moves before Start returns.
func (s *Session) Start(ctx context.Context, mode Mode) (game.Position, UpdateGetter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var human game.Side
	switch mode {
	case PlayAsBlack:
		human = game.Black
	case PlayAsWhite:
		human = game.White
	case PlayMyself:
		human = game.None
	default:
		return s.position, nil, fmt.Errorf("cannot start a game in mode %q", mode)
	}
	if s.ai == nil && mode != PlayMyself {
		return s.position, nil, fmt.Errorf("mode %q needs a computer player", mode)
	}

	s.closeUpdates()
	s.mode = mode
	s.human = human
	s.position = game.NewPosition()
	updateCh := make(chan Update, updateBuffer)
	s.updateCh = updateCh
	log.Info().Msgf("new game: %s", mode)

	start := s.position
	s.replyLocked(ctx)

	return start, func() (Update, bool) {
		select {
		case u, ok := <-updateCh:
			return u, ok
		default:
			return Update{}, false
		}
	}, nil
}

// Play places a piece for the human side to move. In a game against the
// computer the reply is played before Play returns.
func (s *Session) Play(ctx context.Context, cell game.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTurn(); err != nil {
		return err
	}
	if cell == game.Pass {
		return fmt.Errorf("%w: use skip to pass", game.ErrInvalidMove)
	}
	if err := s.apply(cell); err != nil {
		return err
	}
	s.replyLocked(ctx)
	return nil
}

// Skip passes for the human side, allowed only when it has no placement.
func (s *Session) Skip(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTurn(); err != nil {
		return err
	}
	if s.position.NumLegalMoves() > 0 {
		return ErrCannotSkip
	}
	if err := s.apply(game.Pass); err != nil {
		return err
	}
	s.replyLocked(ctx)
	return nil
}

// Restart abandons the current game and returns to Idle.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeUpdates()
	s.mode = Idle
	s.position = game.NewPosition()
}

func (s *Session) Position() game.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Result describes the outcome of a finished game and is empty otherwise.
func (s *Session) Result() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != GameOver {
		return ""
	}
	return ResultText(s.position)
}

func ResultText(pos game.Position) string {
	score := pos.Score()
	switch pos.Winner() {
	case game.Black:
		return fmt.Sprintf("Black wins by %d pieces!", score)
	case game.White:
		return fmt.Sprintf("White wins by %d pieces!", -score)
	case game.Draw:
		return "Draw!"
	default:
		return ""
	}
}

func (s *Session) checkTurn() error {
	switch s.mode {
	case Idle:
		return ErrNoGame
	case GameOver:
		return ErrGameOver
	}
	if s.human != game.None && s.position.ToMove() != s.human {
		return ErrNotYourTurn
	}
	return nil
}

// replyLocked lets the computer move while it is its turn.
func (s *Session) replyLocked(ctx context.Context) {
	for s.mode != GameOver && s.human != game.None && s.position.ToMove() != s.human {
		move, metric := s.ai.FindMove(ctx, s.position)
		if err := s.apply(move); err != nil {
			// Searchers only return legal moves, fall back to the first one
			log.Error().Err(err).Msg("computer move rejected")
			if err := s.apply(s.position.LegalMask().Nth(0)); err != nil {
				log.Error().Err(err).Msg("no fallback move")
				return
			}
			continue
		}
		log.Debug().Msgf("computer plays %s after %d episodes", move, metric.Episodes)
	}
}

func (s *Session) apply(move game.Cell) error {
	next, err := s.position.PlayChecked(move)
	if err != nil {
		return err
	}
	s.position = next
	s.updateCh <- Update{Move: move, Position: next}

	if next.IsTerminal() {
		s.mode = GameOver
		close(s.updateCh)
		s.updateCh = nil
		log.Info().Msg(ResultText(next))
	}
	return nil
}

func (s *Session) closeUpdates() {
	if s.updateCh != nil {
		close(s.updateCh)
		s.updateCh = nil
	}
}
