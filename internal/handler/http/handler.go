// Package http exposes the local operator surface: a small JSON API bound
// to loopback for inspecting the cached account registry and the current
// session, and for revoking cached accounts.
package http

import (
	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
