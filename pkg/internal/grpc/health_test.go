package grpc

import (
	"context"
	"testing"

	"git.solsynth.dev/hypernet/polls/pkg/internal/database"
	"git.solsynth.dev/hypernet/polls/pkg/internal/database/dbtest"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func checkStatus(t *testing.T, app *App) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := app.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	return resp.GetStatus()
}

func TestRefreshHealth(t *testing.T) {
	dbtest.Setup(t)
	app := NewGrpc()

	app.RefreshHealth()
	if status := checkStatus(t, app); status != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("Expected SERVING, got %s", status)
	}

	database.C = nil
	app.RefreshHealth()
	if status := checkStatus(t, app); status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("Expected NOT_SERVING, got %s", status)
	}
}
