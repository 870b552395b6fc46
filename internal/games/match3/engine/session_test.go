package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	c := NewClock(10 * time.Second)
	assert.False(t, c.Running())

	c.Advance(time.Second)
	assert.Equal(t, 10*time.Second, c.Remaining(), "stopped clock does not advance")

	c.Start()
	c.Start()
	assert.True(t, c.Running())
	c.Advance(3 * time.Second)
	c.Advance(-time.Second)
	assert.Equal(t, 7*time.Second, c.Remaining())

	c.Stop()
	c.Stop()
	assert.False(t, c.Running())
	c.Advance(time.Second)
	assert.Equal(t, 7*time.Second, c.Remaining())

	c.Start()
	c.Advance(time.Minute)
	assert.True(t, c.Expired())
	assert.Zero(t, c.Remaining())
	assert.Equal(t, 10*time.Second, c.Elapsed())
}

func sessionConfig() Config {
	cfg := smallConfig()
	cfg.Duration = 10 * time.Second
	return cfg
}

func TestSessionLosesBelowTarget(t *testing.T) {
	var (
		outcomes []Outcome
		scores   []int
		matches  int
	)
	s, err := NewSession(sessionConfig(), rand.New(rand.NewSource(1)), SessionOptions{
		Hooks: Hooks{
			OnMatch: func(TileType, int) { matches++ },
			OnOutcome: func(o Outcome, score int) {
				outcomes = append(outcomes, o)
				scores = append(scores, score)
			},
		},
	})
	require.NoError(t, err)
	s.board.score = 650

	for i := range 9 {
		assert.Equal(t, OutcomeNone, s.Tick(time.Second), "tick %d", i+1)
	}
	assert.Empty(t, outcomes)
	assert.Equal(t, OutcomeLost, s.Tick(time.Second))

	for range 5 {
		s.Tick(time.Second)
	}
	assert.Equal(t, []Outcome{OutcomeLost}, outcomes)
	assert.Equal(t, []int{650}, scores)
	assert.False(t, s.Running())
	assert.Zero(t, s.Remaining())

	// Input through the session is dropped, and events from the board are
	// no longer forwarded.
	assert.Equal(t, SelectIgnored, s.Select(C(0, 0)))
	assert.Equal(t, SelectIgnored, s.AutoPlay())
	_, ok := s.Hint()
	assert.False(t, ok)

	require.NoError(t, s.Board().Load(MustMatrix(fixture)))
	s.Board().Select(C(1, 0))
	require.Equal(t, SelectMatched, s.Board().Select(C(1, 1)))
	assert.Zero(t, matches)
	assert.Equal(t, 650, s.Score(), "score is frozen once the round ends")

	s.Start()
	assert.False(t, s.Running(), "finished round cannot be resumed")
}

func TestSessionWinsAtTarget(t *testing.T) {
	var outcome Outcome
	s, err := NewSession(sessionConfig(), rand.New(rand.NewSource(1)), SessionOptions{
		Hooks: Hooks{OnOutcome: func(o Outcome, _ int) { outcome = o }},
	})
	require.NoError(t, err)
	s.board.score = 700

	assert.Equal(t, OutcomeWon, s.Tick(10*time.Second))
	assert.Equal(t, OutcomeWon, outcome)
	assert.Equal(t, OutcomeWon, s.Summary().Outcome)
	assert.Equal(t, 700, s.Summary().Score)
}

func TestSessionForwardsEventsWhileRunning(t *testing.T) {
	var sizes []int
	var scores []int
	s, err := NewSession(sessionConfig(), rand.New(rand.NewSource(1)), SessionOptions{
		Hooks: Hooks{
			OnMatch: func(_ TileType, size int) { sizes = append(sizes, size) },
			OnScore: func(score int) { scores = append(scores, score) },
		},
	})
	require.NoError(t, err)
	require.NoError(t, s.Board().Load(MustMatrix(fixture)))

	assert.Equal(t, SelectPending, s.Select(C(1, 0)))
	assert.Equal(t, SelectMatched, s.Select(C(1, 1)))

	require.NotEmpty(t, sizes)
	assert.Equal(t, 3, sizes[0])
	require.Len(t, scores, len(sizes))
	assert.Equal(t, DefaultScorePerCascade, scores[0])
	assert.Equal(t, scores[len(scores)-1], s.Score())
}

func TestSessionPause(t *testing.T) {
	s, err := NewSession(sessionConfig(), rand.New(rand.NewSource(1)), SessionOptions{})
	require.NoError(t, err)
	require.True(t, s.Running())

	s.Tick(2 * time.Second)
	s.Stop()
	s.Tick(5 * time.Second)
	assert.Equal(t, 8*time.Second, s.Remaining())

	s.Start()
	s.Tick(time.Second)
	assert.Equal(t, 7*time.Second, s.Remaining())
	assert.Equal(t, 3*time.Second, s.Summary().Elapsed)
}

func TestSessionRestart(t *testing.T) {
	s, err := NewSession(sessionConfig(), rand.New(rand.NewSource(1)), SessionOptions{})
	require.NoError(t, err)
	firstID := s.RoundID()
	s.board.score = 120
	s.Tick(10 * time.Second)
	require.Equal(t, OutcomeLost, s.Outcome())

	require.NoError(t, s.Restart())
	assert.NotEqual(t, firstID, s.RoundID())
	assert.Equal(t, 2, s.Round())
	assert.Equal(t, OutcomeNone, s.Outcome())
	assert.Zero(t, s.Score())
	assert.Equal(t, 10*time.Second, s.Remaining())
	assert.True(t, s.Running())
	assert.False(t, HasMatch(s.Board().Snapshot()))
}

func TestSessionRestartWhileBusy(t *testing.T) {
	var restartErr error
	var s *Session
	s, err := NewSession(sessionConfig(), rand.New(rand.NewSource(1)), SessionOptions{
		Effects: EffectsFunc(func(e Effect) {
			if e.Kind == EffectSwap {
				restartErr = s.Restart()
			}
		}),
	})
	require.NoError(t, err)
	require.NoError(t, s.Board().Load(MustMatrix(fixture)))
	id := s.RoundID()

	s.Select(C(1, 0))
	s.Select(C(1, 1))
	assert.ErrorIs(t, restartErr, ErrBusy)
	assert.Equal(t, id, s.RoundID())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{"default", func(*Config) {}, nil},
		{"two types narrow board", func(c *Config) { c.TileTypes = 2; c.Width = 2 }, ErrTooFewTileTypes},
		{"two by two", func(c *Config) { c.Width, c.Height = 2, 2 }, ErrBoardTooSmall},
		{"single row", func(c *Config) { c.Width, c.Height = 8, 1 }, ErrBoardTooSmall},
		{"three by two", func(c *Config) { c.Width, c.Height = 3, 2 }, nil},
		{"too many types", func(c *Config) { c.TileTypes = 300 }, ErrTooManyTypes},
		{"zero scoring", func(c *Config) { c.ScorePerCascade = 0 }, ErrBadScoring},
		{"negative target", func(c *Config) { c.TargetScore = -1 }, ErrBadTarget},
		{"zero duration", func(c *Config) { c.Duration = 0 }, ErrBadDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewSessionRejectsUnplayableConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TileTypes = 2
	cfg.Width = 2
	_, err := NewSession(cfg, nil, SessionOptions{})
	assert.ErrorIs(t, err, ErrTooFewTileTypes)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "none", OutcomeNone.String())
	assert.Equal(t, "won", OutcomeWon.String())
	assert.Equal(t, "lost", OutcomeLost.String())
}
