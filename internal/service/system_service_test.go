package service_test

import (
	"context"
	"testing"

	"github.com/liamba05/Fynnance/internal/testutil"
	"github.com/liamba05/Fynnance/internal/version"
)

// TestSystemService_CheckHealth tests the database health check.
//
// WHY: Load balancers use this endpoint; a closed database must report unhealthy.
func TestSystemService_CheckHealth(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)

		if err := svc.CheckHealth(context.Background()); err != nil {
			t.Errorf("CheckHealth() returned unexpected error: %v", err)
		}
	})

	t.Run("closed database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)
		db.Close()

		if err := svc.CheckHealth(context.Background()); err == nil {
			t.Error("Expected an error for a closed database")
		}
	})
}

// TestSystemService_CheckVersion tests version reporting.
func TestSystemService_CheckVersion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSystemService(t, db)

	info, err := svc.CheckVersion(context.Background())

	if err != nil {
		t.Fatalf("CheckVersion() returned unexpected error: %v", err)
	}
	if info.AppVersion != version.Version {
		t.Errorf("Expected app version %q, got %q", version.Version, info.AppVersion)
	}
	if info.DbVersion != "2" {
		t.Errorf("Expected schema version 2, got %q", info.DbVersion)
	}
	if info.MigrationNeeded || info.MigrationMessage != nil {
		t.Errorf("Expected no migration needed, got %+v", info)
	}
	if !info.Features["plaid"] || !info.Features["rentcast"] {
		t.Errorf("Expected configured features, got %v", info.Features)
	}
}
