package usecase

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
	"github.com/rocketscienceinc/xo-engine/internal/pkg"
	"github.com/rocketscienceinc/xo-engine/internal/tictactoe"
)

var ErrNoBotService = errors.New("bot service is required")

type State string

const (
	StateAwaitingHumanMove     State = "awaiting_human_move"
	StateAwaitingAutomatedMove State = "awaiting_automated_move"
	StateTerminal              State = "terminal"
)

type botService interface {
	SelectMove(board entity.Board, difficulty entity.Difficulty) (int, error)
}

// Settings configure a new Session.
type Settings struct {
	Mode       entity.Mode
	Difficulty entity.Difficulty
	// BotDelay is how long the automated opponent waits before replying. Zero replies immediately.
	BotDelay time.Duration
}

// Snapshot is a consistent read of the whole session.
type Snapshot struct {
	ID         string            `json:"id"`
	Board      entity.Board      `json:"board"`
	Outcome    entity.Outcome    `json:"outcome"`
	State      State             `json:"state"`
	Turn       entity.Cell       `json:"turn"`
	Mode       entity.Mode       `json:"mode"`
	Difficulty entity.Difficulty `json:"difficulty"`
	Tally      entity.Tally      `json:"tally"`
}

// Session owns the authoritative game state, the running tally and the deferred automated move.
// It is safe to call from several goroutines; the deferred move itself runs on a timer goroutine.
type Session struct {
	logger *slog.Logger
	bot    botService
	clock  pkg.Clock
	delay  time.Duration

	mu         sync.Mutex
	id         string
	game       *entity.Game
	tally      entity.Tally
	pending    pkg.Timer
	generation uint64
	closed     bool

	subscribers    map[uint64]func(Snapshot)
	nextSubscriber uint64

	// outbox holds snapshots in mutation order until the dispatching goroutine delivers them.
	outbox      []Snapshot
	dispatching bool
}

// NewSession - creates a session with an empty board and a zero tally.
func NewSession(logger *slog.Logger, bot botService, clock pkg.Clock, settings Settings) (*Session, error) {
	if _, err := entity.ParseMode(string(settings.Mode)); err != nil {
		return nil, err
	}

	if _, err := entity.ParseDifficulty(string(settings.Difficulty)); err != nil {
		return nil, err
	}

	if bot == nil {
		return nil, ErrNoBotService
	}

	if settings.BotDelay < 0 {
		return nil, fmt.Errorf("bot delay must not be negative: %s", settings.BotDelay)
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if clock == nil {
		clock = pkg.NewClock()
	}

	id := pkg.GenerateSessionID()

	return &Session{
		logger:      logger.With("component", "session", "sessionID", id),
		bot:         bot,
		clock:       clock,
		delay:       settings.BotDelay,
		id:          id,
		game:        entity.NewGame(settings.Mode, settings.Difficulty),
		subscribers: make(map[uint64]func(Snapshot)),
	}, nil
}

func (that *Session) ID() string {
	return that.id
}

// Board returns a copy of the current board.
func (that *Session) Board() entity.Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Board
}

func (that *Session) Outcome() entity.Outcome {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Outcome
}

func (that *Session) Tally() entity.Tally {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.tally
}

func (that *Session) State() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return stateOf(that.game)
}

func (that *Session) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// CanMove - reports whether AttemptMove(cell) would change the board.
func (that *Session) CanMove(cell int) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return !that.closed && tictactoe.CanMove(that.game, cell)
}

// AttemptMove - applies the human move at cell and schedules the automated reply when one is due.
// Illegal moves are ignored; only an index outside the board is reported.
func (that *Session) AttemptMove(cell int) error {
	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrIndexOutOfRange, cell)
	}

	log := that.logger.With("method", "AttemptMove", "cell", cell)

	that.mu.Lock()

	if that.closed {
		that.mu.Unlock()
		log.Debug("move ignored, session closed")
		return nil
	}

	if err := tictactoe.MakeHumanTurn(that.game, cell); err != nil {
		that.mu.Unlock()
		log.Debug("move ignored", "reason", err)
		return nil
	}

	that.invalidateLocked()
	changes := []Snapshot{that.snapshotLocked()}
	that.logFinishedLocked(log)
	changes = that.scheduleBotLocked(changes)

	that.publishAndUnlock(changes...)

	return nil
}

// Reset - folds a finished outcome into the tally and starts a new round with the same settings.
func (that *Session) Reset() {
	that.mu.Lock()
	that.resetLocked("reset")
	that.publishAndUnlock(that.snapshotLocked())
}

// SetMode - switches the mode and implicitly resets.
func (that *Session) SetMode(mode entity.Mode) error {
	if _, err := entity.ParseMode(string(mode)); err != nil {
		return err
	}

	that.mu.Lock()
	that.game.Mode = mode
	that.resetLocked("mode changed")
	that.publishAndUnlock(that.snapshotLocked())

	return nil
}

// SetDifficulty - switches the bot tier and implicitly resets.
func (that *Session) SetDifficulty(difficulty entity.Difficulty) error {
	if _, err := entity.ParseDifficulty(string(difficulty)); err != nil {
		return err
	}

	that.mu.Lock()
	that.game.Difficulty = difficulty
	that.resetLocked("difficulty changed")
	that.publishAndUnlock(that.snapshotLocked())

	return nil
}

// Subscribe - registers fn to receive a snapshot after every state change.
// fn runs outside the session lock and receives snapshots in the order the changes happened.
func (that *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	key := that.nextSubscriber
	that.nextSubscriber++
	that.subscribers[key] = fn

	var once sync.Once

	return func() {
		once.Do(func() {
			that.mu.Lock()
			delete(that.subscribers, key)
			that.mu.Unlock()
		})
	}
}

// Close - cancels a pending automated move. Moves attempted afterwards are ignored.
func (that *Session) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.invalidateLocked()
	that.closed = true
}

func (that *Session) resetLocked(reason string) {
	that.invalidateLocked()
	that.tally.Record(that.game.Outcome)
	that.game = entity.NewGame(that.game.Mode, that.game.Difficulty)

	that.logger.Info("game reset",
		"reason", reason,
		"mode", that.game.Mode,
		"difficulty", that.game.Difficulty,
		"tally", that.tally,
	)
}

// invalidateLocked - stops the pending automated move and makes any already fired one stale.
func (that *Session) invalidateLocked() {
	that.generation++

	if that.pending != nil {
		that.pending.Stop()
		that.pending = nil
	}
}

func (that *Session) scheduleBotLocked(changes []Snapshot) []Snapshot {
	if !that.game.IsBotTurn() {
		return changes
	}

	if that.delay <= 0 {
		return that.playBotLocked(changes)
	}

	generation := that.generation
	that.pending = that.clock.AfterFunc(that.delay, func() {
		that.runScheduledBot(generation)
	})

	that.logger.Debug("automated move scheduled", "delay", that.delay)

	return changes
}

func (that *Session) runScheduledBot(generation uint64) {
	that.mu.Lock()

	if that.closed || generation != that.generation {
		that.mu.Unlock()
		that.logger.Debug("stale automated move dropped")
		return
	}

	that.pending = nil
	changes := that.playBotLocked(nil)

	that.publishAndUnlock(changes...)
}

func (that *Session) playBotLocked(changes []Snapshot) []Snapshot {
	log := that.logger.With("method", "playBot")

	cell, err := that.bot.SelectMove(that.game.Board, that.game.Difficulty)
	if err != nil {
		log.Error("bot failed to select a move", "error", err)
		cell = that.game.Board.EmptyCells()[0]
	}

	if err = tictactoe.MakeTurn(that.game, entity.BotMark, cell); err != nil {
		fallback := that.game.Board.EmptyCells()[0]
		log.Error("bot failed to make turn", "cell", cell, "fallback", fallback, "error", err)

		// the first free cell is always legal while the bot is due
		cell = fallback
		if err = tictactoe.MakeTurn(that.game, entity.BotMark, cell); err != nil {
			log.Error("fallback turn failed", "cell", cell, "error", err)
			return changes
		}
	}

	that.invalidateLocked()
	log.Debug("automated move applied", "cell", cell)
	that.logFinishedLocked(log)

	return append(changes, that.snapshotLocked())
}

func (that *Session) logFinishedLocked(log *slog.Logger) {
	if that.game.IsFinished() {
		log.Info("game finished", "outcome", that.game.Outcome.String())
	}
}

func (that *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:         that.id,
		Board:      that.game.Board,
		Outcome:    that.game.Outcome,
		State:      stateOf(that.game),
		Turn:       that.game.Turn(),
		Mode:       that.game.Mode,
		Difficulty: that.game.Difficulty,
		Tally:      that.tally,
	}
}

// publishAndUnlock - queues changes and releases the lock. The first goroutine to find the outbox idle
// delivers everything queued, including changes other goroutines add meanwhile, so subscribers see
// snapshots in the order they were taken.
func (that *Session) publishAndUnlock(changes ...Snapshot) {
	that.outbox = append(that.outbox, changes...)

	if that.dispatching {
		that.mu.Unlock()
		return
	}

	that.dispatching = true
	defer func() {
		that.dispatching = false
		that.mu.Unlock()
	}()

	for len(that.outbox) > 0 {
		snapshot := that.outbox[0]
		that.outbox = that.outbox[1:]

		subscribers := make([]func(Snapshot), 0, len(that.subscribers))
		for _, fn := range that.subscribers {
			subscribers = append(subscribers, fn)
		}

		that.deliver(subscribers, snapshot)
	}
}

// deliver - runs subscribers without the lock and takes it back afterwards, even if one panics.
func (that *Session) deliver(subscribers []func(Snapshot), snapshot Snapshot) {
	that.mu.Unlock()
	defer that.mu.Lock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

func stateOf(game *entity.Game) State {
	switch {
	case game.IsFinished():
		return StateTerminal
	case game.IsBotTurn():
		return StateAwaitingAutomatedMove
	default:
		return StateAwaitingHumanMove
	}
}
