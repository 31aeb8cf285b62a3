package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/liamba05/Fynnance/internal/cache"
	"github.com/liamba05/Fynnance/internal/encryption"
	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/quota"
	"github.com/liamba05/Fynnance/internal/repository"
	"github.com/liamba05/Fynnance/internal/service"
)

// FixedNow is the reference clock used by service tests.
var FixedNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

// NewTestCipher creates a field cipher with a fresh random key.
func NewTestCipher(t *testing.T) *encryption.FieldCipher {
	t.Helper()

	key, err := encryption.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate encryption key: %v", err)
	}
	cipher, err := encryption.NewFieldCipher(key)
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}
	return cipher
}

func NewTestUserFactsRepository(t *testing.T, db *sql.DB) *repository.UserFactsRepository {
	t.Helper()
	return repository.NewUserFactsRepository(db, NewTestCipher(t))
}

func NewTestUserFactsService(t *testing.T, db *sql.DB) *service.UserFactsService {
	t.Helper()
	return service.NewUserFactsService(NewTestUserFactsRepository(t, db))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, map[string]bool{"plaid": true, "rentcast": true})
}

// NewTestProfileService creates a ProfileService over the given mocks, pinned to FixedNow.
// quotes may be nil.
func NewTestProfileService(t *testing.T, source *MockDataSource, quotes *MockYahooClient) *service.ProfileService {
	t.Helper()

	var svc *service.ProfileService
	if quotes == nil {
		svc = service.NewProfileService(source, nil)
	} else {
		svc = service.NewProfileService(source, quotes)
	}
	svc.SetClock(func() time.Time { return FixedNow })
	return svc
}

// NewTestMarketService creates a MarketService with an in-memory quota of limit
// calls per hour, pinned to FixedNow.
func NewTestMarketService(t *testing.T, client *MockRentCastClient, facts service.FactsReader, limit int64) *service.MarketService {
	t.Helper()

	svc := service.NewMarketService(
		client,
		cache.NewSessionRegistry(time.Hour, 16),
		quota.NewMemoryLimiter(limit, time.Hour),
		facts,
	)
	svc.SetClock(func() time.Time { return FixedNow })
	return svc
}

// CreateUser stores facts for a new user and returns the user ID.
func CreateUser(t *testing.T, svc *service.UserFactsService, update model.UserFactsUpdate) string {
	t.Helper()

	userID := MakeID()
	if _, err := svc.UpdateFacts(context.Background(), userID, update); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return userID
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
