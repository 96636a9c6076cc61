package logic

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/fplcentral/recommender-api/internal/cache"
	"github.com/fplcentral/recommender-api/internal/models"
)

// snapshotKey is the cache key for the current-gameweek dataset. The fetch
// scope never varies per request, so the keyspace stays at one entry.
const snapshotKey = "current"

type recommendService struct {
	provider PlayerProvider
	store    cache.Store
	logger   *zap.SugaredLogger
}

// NewRecommendService wires the upstream provider and the snapshot cache
// into the request-facing service.
func NewRecommendService(provider PlayerProvider, store cache.Store, logger *zap.SugaredLogger) RecommendService {
	return &recommendService{provider: provider, store: store, logger: logger}
}

// Recommend runs the full pipeline for one request: snapshot (through the
// cache), score, select. Request validation is the caller's job; by the time
// we get here the request is well-formed.
func (s *recommendService) Recommend(ctx context.Context, req models.SelectionRequest) (models.Recommendation, error) {
	players, err := s.snapshot(ctx)
	if err != nil {
		return models.Recommendation{}, err
	}

	pool := BuildPool(players, req.Exclude)
	return Select(pool, req)
}

// Search finds players by case-insensitive substring match on the short and
// full name, ordered by ownership so the household names come first.
func (s *recommendService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	players, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	results := make([]models.SearchResult, 0)
	matched := make([]models.Player, 0)
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.FullName), q) {
			matched = append(matched, p)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SelectedByPercent > matched[j].SelectedByPercent
	})

	for _, p := range matched {
		results = append(results, models.SearchResult{
			ID:       p.ID,
			Name:     p.Name,
			FullName: p.FullName,
			TeamName: p.TeamName,
			Position: p.PositionCode,
			Price:    p.Price,
		})
	}
	return results, nil
}

// Players returns the full snapshot ordered by ownership descending, for
// roster listings.
func (s *recommendService) Players(ctx context.Context) ([]models.Player, error) {
	players, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Player, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SelectedByPercent > out[j].SelectedByPercent
	})
	return out, nil
}

// snapshot returns the normalized player set, reading the cache first and
// refetching upstream on a miss. A failed cache write is logged and ignored:
// the cache is best-effort, the fetched data is still good.
func (s *recommendService) snapshot(ctx context.Context) ([]models.Player, error) {
	snap, err := s.store.Load(ctx, snapshotKey)
	if err == nil {
		return snap.Players, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warnw("cache read failed", "key", snapshotKey, "error", err)
	}

	players, err := s.provider.FetchPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch upstream: %w", err)
	}
	s.logger.Infow("fetched upstream snapshot", "players", len(players))

	snap = cache.Snapshot{FetchedAt: timeNow(), Players: players}
	if err := s.store.Save(ctx, snapshotKey, snap); err != nil {
		s.logger.Warnw("cache write failed", "key", snapshotKey, "error", err)
	}
	return players, nil
}
