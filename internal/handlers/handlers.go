package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fplcentral/recommender-api/internal/logic"
)

type Config struct {
	Logger *zap.Logger
	// Services
	Recommender logic.RecommendService
}

type Handler struct {
	recommender logic.RecommendService
	logger      *zap.SugaredLogger
	validator   *validator.Validate
}

func New(cfg Config) *Handler {
	return &Handler{
		recommender: cfg.Recommender,
		logger:      cfg.Logger.Sugar(),
		validator:   validator.New(),
	}
}
