package grpc

import (
	"context"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/polls/pkg/internal/database"
	"github.com/rs/zerolog/log"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "hypernet.polls"

func pingDatabase(ctx context.Context) error {
	if database.C == nil {
		return fmt.Errorf("database is not connected")
	}
	conn, err := database.C.DB()
	if err != nil {
		return err
	}
	return conn.PingContext(ctx)
}

// RefreshHealth reports NOT_SERVING for as long as the database cannot be reached.
func (v *App) RefreshHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := pingDatabase(ctx); err != nil {
		log.Warn().Err(err).Msg("Unable to reach database, marking service as not serving...")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	v.health.SetServingStatus("", status)
	v.health.SetServingStatus(ServiceName, status)
}
