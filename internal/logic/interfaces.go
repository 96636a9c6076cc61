package logic

import (
	"context"

	"github.com/fplcentral/recommender-api/internal/models"
)

// PlayerProvider abstracts the upstream fetch so the service can be tested
// without the FPL API.
type PlayerProvider interface {
	FetchPlayers(ctx context.Context) ([]models.Player, error)
}

// RecommendService is what the HTTP handlers and the CLI consume.
type RecommendService interface {
	Recommend(ctx context.Context, req models.SelectionRequest) (models.Recommendation, error)
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	Players(ctx context.Context) ([]models.Player, error)
}
