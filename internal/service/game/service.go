package game

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
	"github.com/iamasit07/connect4-minimax/pkg/uid"
)

const (
	ErrSessionNotFound domain.Error = "game session not found"
	ErrTooManySessions domain.Error = "too many live games, try again later"
)

type ConnectionManagerInterface interface {
	SendMessage(gameID string, message domain.ServerMessage) error
	RemoveConnection(gameID string)
}

type GameOverPublisher interface {
	EmitGameOver(gameID, winner, reason string, difficulty, moves int, duration float64)
}

type Options struct {
	Geometry domain.Geometry
	// BotDelay is how long the agent waits before answering a move.
	BotDelay time.Duration
	// FinishedTTL and IdleTTL bound how long finished and untouched sessions stay in memory.
	FinishedTTL time.Duration
	IdleTTL     time.Duration
	// MaxSessions caps how many sessions are held at once.
	MaxSessions int
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session   map[string]*GameSession // gameID → GameSession
	mu        sync.RWMutex
	opts      Options
	publisher GameOverPublisher
	now       func() time.Time
}

func NewSessionManager(opts Options, publisher GameOverPublisher) *SessionManager {
	if !opts.Geometry.Valid() {
		opts.Geometry = domain.DefaultGeometry
	}
	if opts.FinishedTTL <= 0 {
		opts.FinishedTTL = time.Hour
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 30 * time.Minute
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 1000
	}
	return &SessionManager{
		Session:   make(map[string]*GameSession),
		opts:      opts,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateSession starts a game between username and an agent searching difficulty plies.
// The human always plays SideA; playFirst decides who opens.
func (sm *SessionManager) CreateSession(username string, difficulty int, playFirst bool) (*GameSession, error) {
	if difficulty < bot.MinDifficulty || difficulty > bot.MaxDifficulty {
		return nil, fmt.Errorf("%w: got %d", bot.ErrInvalidDifficulty, difficulty)
	}
	agent, err := bot.NewAgent(domain.SideB, difficulty)
	if err != nil {
		return nil, err
	}

	now := sm.now()
	gs := &GameSession{
		GameID:       uid.GenerateGameID(),
		Username:     username,
		BotName:      bot.BotName(difficulty),
		Difficulty:   difficulty,
		PlayFirst:    playFirst,
		CreatedAt:    now,
		LastActivity: now,
		agent:        agent,
		manager:      sm,
	}
	gs.resetGame()

	sm.mu.Lock()
	if len(sm.Session) >= sm.opts.MaxSessions {
		sm.mu.Unlock()
		log.Printf("[SESSION] Refusing new game for %s: %d sessions live", username, sm.opts.MaxSessions)
		return nil, ErrTooManySessions
	}
	sm.Session[gs.GameID] = gs
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %s vs %s (depth %d, player first: %v)",
		gs.GameID, username, gs.BotName, difficulty, playFirst)
	return gs, nil
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.Session[gameID]
	if !exists {
		return ErrSessionNotFound
	}

	log.Printf("[SESSION] Removing session %s", gameID)
	session.stopBotTimer()
	delete(sm.Session, gameID)
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// CleanupOldSessions drops finished sessions after FinishedTTL and untouched ones after IdleTTL.
func (sm *SessionManager) CleanupOldSessions() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := sm.now()

	for gameID, session := range sm.Session {
		session.mu.Lock()
		expired := false
		if session.Game.IsFinished() {
			expired = now.Sub(session.FinishedAt) > sm.opts.FinishedTTL
		} else {
			expired = now.Sub(session.LastActivity) > sm.opts.IdleTTL
		}
		session.mu.Unlock()

		if expired {
			session.stopBotTimer()
			delete(sm.Session, gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}

type ActiveGame struct {
	GameID     string
	Username   string
	BotName    string
	Difficulty int
	MoveCount  int
	StartedAt  time.Time
}

// ActiveGames lists games that are still being played, oldest first.
func (sm *SessionManager) ActiveGames() []ActiveGame {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	games := make([]ActiveGame, 0, len(sm.Session))
	for _, session := range sm.Session {
		session.mu.Lock()
		if !session.Game.IsFinished() {
			games = append(games, ActiveGame{
				GameID:     session.GameID,
				Username:   session.Username,
				BotName:    session.BotName,
				Difficulty: session.Difficulty,
				MoveCount:  session.Game.MoveCount,
				StartedAt:  session.StartedAt,
			})
		}
		session.mu.Unlock()
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].StartedAt.Before(games[j].StartedAt)
	})
	return games
}
