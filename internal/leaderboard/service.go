package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/preguntados/trivia-server/internal/game"
	"github.com/preguntados/trivia-server/pkg/http/ws"
)

// Supported leaderboard windows.
const (
	WindowDaily   = "daily"
	WindowWeekly  = "weekly"
	WindowAllTime = "all_time"
)

var defaultWindows = []string{WindowDaily, WindowWeekly, WindowAllTime}

// KnownWindow reports whether the window name is served.
func KnownWindow(window string) bool {
	for _, w := range defaultWindows {
		if w == window {
			return true
		}
	}
	return false
}

// Entry is a ranked leaderboard record keyed by username. Scores come
// from finished matches only; abandoned matches never count.
type Entry struct {
	Rank     int     `json:"rank"`
	Username string  `json:"username"`
	Score    int     `json:"score"`
	Wins     int     `json:"wins"`
	Games    int     `json:"games"`
	Accuracy float64 `json:"accuracy"`
}

// ServiceOptions configures leaderboard behavior.
type ServiceOptions struct {
	TopN           int
	PubSubChannel  string
	Windows        []string
	EntryTTL       time.Duration
	RedisKeyPrefix string
}

// Service keeps ranked score aggregates in Redis sorted sets, one per
// window, and announces changes over Pub/Sub so every API instance can
// push leaderboard_update frames to its own clients.
type Service struct {
	redis         *redis.Client
	logger        zerolog.Logger
	topN          int
	pubsubChannel string
	windows       []string
	entryTTL      time.Duration
	prefix        string
}

// NewService constructs a leaderboard service.
func NewService(rdb *redis.Client, logger zerolog.Logger, opts ServiceOptions) *Service {
	topN := opts.TopN
	if topN <= 0 {
		topN = 50
	}
	channel := opts.PubSubChannel
	if channel == "" {
		channel = "lb:updates"
	}
	windows := opts.Windows
	if len(windows) == 0 {
		windows = defaultWindows
	}
	prefix := opts.RedisKeyPrefix
	if prefix == "" {
		prefix = "lb"
	}

	return &Service{
		redis:         rdb,
		logger:        logger.With().Str("component", "leaderboard").Logger(),
		topN:          topN,
		pubsubChannel: channel,
		windows:       windows,
		entryTTL:      opts.EntryTTL,
		prefix:        prefix,
	}
}

// RecordResult folds a finished match into every window's aggregates
// and publishes an update. Implements the coordinator's recorder hook.
func (s *Service) RecordResult(ctx context.Context, res game.MatchResult) error {
	for _, p := range res.Players {
		for _, window := range s.windows {
			if err := s.updateWindow(ctx, window, p, res.Rounds); err != nil {
				return err
			}
		}
	}

	// Broadcast runs detached; the aggregates are already committed.
	go s.publishUpdate(context.Background())
	return nil
}

// Top retrieves the highest-ranked entries for a window.
func (s *Service) Top(ctx context.Context, window string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.topN {
		limit = s.topN
	}

	zKey := s.leaderboardKey(window)
	results, err := s.redis.ZRevRangeWithScores(ctx, zKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(results))
	for i, z := range results {
		username, _ := z.Member.(string)
		entry, err := s.readMeta(ctx, window, username)
		if err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("leaderboard metadata read failed")
			continue
		}
		entry.Rank = i + 1
		entry.Score = int(z.Score)
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Service) updateWindow(ctx context.Context, window string, p game.PlayerScore, rounds int) error {
	zKey := s.leaderboardKey(window)
	metaKey := s.metaKey(window, p.Username)

	wins := 0
	if p.Won {
		wins = 1
	}

	pipe := s.redis.TxPipeline()
	pipe.ZIncrBy(ctx, zKey, float64(p.Score), p.Username)
	pipe.HIncrBy(ctx, metaKey, "wins", int64(wins))
	pipe.HIncrBy(ctx, metaKey, "games", 1)
	pipe.HIncrBy(ctx, metaKey, "correct", int64(p.Score))
	pipe.HIncrBy(ctx, metaKey, "questions", int64(rounds))
	if s.entryTTL > 0 && window != WindowAllTime {
		pipe.Expire(ctx, zKey, s.entryTTL)
		pipe.Expire(ctx, metaKey, s.entryTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("update leaderboard window %s: %w", window, err)
	}
	return nil
}

func (s *Service) publishUpdate(ctx context.Context) {
	for _, window := range s.windows {
		entries, err := s.Top(ctx, window, 10)
		if err != nil {
			s.logger.Warn().Err(err).Str("window", window).Msg("leaderboard update collect failed")
			continue
		}
		if len(entries) == 0 {
			continue
		}

		payload := ws.LeaderboardUpdatePayload{
			Window: window,
			Top:    toWSEntries(entries),
		}
		data, err := json.Marshal(payload)
		if err != nil {
			s.logger.Warn().Err(err).Msg("leaderboard update marshal failed")
			continue
		}
		if err := s.redis.Publish(ctx, s.pubsubChannel, data).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("leaderboard update publish failed")
		}
	}
}

func (s *Service) readMeta(ctx context.Context, window, username string) (Entry, error) {
	data, err := s.redis.HGetAll(ctx, s.metaKey(window, username)).Result()
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{Username: username}
	if len(data) == 0 {
		return entry, nil
	}
	entry.Wins = parseInt(data["wins"])
	entry.Games = parseInt(data["games"])
	correct := parseInt(data["correct"])
	questions := parseInt(data["questions"])
	if questions > 0 {
		entry.Accuracy = float64(correct) / float64(questions)
	}
	return entry, nil
}

func (s *Service) leaderboardKey(window string) string {
	return fmt.Sprintf("%s:%s", s.prefix, window)
}

func (s *Service) metaKey(window, username string) string {
	return fmt.Sprintf("%s:%s:meta:%s", s.prefix, window, username)
}

// Channel exposes the Pub/Sub channel name for subscribers.
func (s *Service) Channel() string {
	return s.pubsubChannel
}

func toWSEntries(entries []Entry) []ws.LeaderboardEntry {
	out := make([]ws.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ws.LeaderboardEntry{
			Rank:     e.Rank,
			Username: e.Username,
			Score:    e.Score,
			Wins:     e.Wins,
			Games:    e.Games,
			Accuracy: e.Accuracy,
		})
	}
	return out
}

func parseInt(val string) int {
	if val == "" {
		return 0
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return i
}
