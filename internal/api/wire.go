//go:build wireinject

//go:generate wire

package api

import (
	"github.com/google/wire"

	"github.com/lyralabs/watermark-service/internal/config"
	"github.com/lyralabs/watermark-service/internal/metrics"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

var serviceSet = wire.NewSet(
	newServerWithComponents,
	metrics.New,
	NewKeyring,
	NewCodecs,
	NewWatermarkService,
	NewProvenanceService,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
