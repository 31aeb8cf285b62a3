package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/repository"
)

// MaxMemories is how many memories are kept per user; the oldest are dropped first.
const MaxMemories = 50

// UserFactsService handles the facts, goals and memories a user shares.
type UserFactsService struct {
	repo *repository.UserFactsRepository
	now  func() time.Time
}

// NewUserFactsService creates a new UserFactsService.
func NewUserFactsService(repo *repository.UserFactsRepository) *UserFactsService {
	return &UserFactsService{
		repo: repo,
		now:  time.Now,
	}
}

// GetFacts retrieves the facts of a user.
// Returns apperrors.ErrUserNotFound when the user has never stored facts.
func (s *UserFactsService) GetFacts(ctx context.Context, userID string) (model.UserFacts, error) {
	facts, err := s.repo.GetFacts(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return model.UserFacts{}, err
		}
		return model.UserFacts{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveFacts, err)
	}
	return facts, nil
}

// UpdateFacts applies a partial update, creating the user on first write.
func (s *UserFactsService) UpdateFacts(ctx context.Context, userID string, update model.UserFactsUpdate) (model.UserFacts, error) {
	facts, err := s.repo.GetFacts(ctx, userID)
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		facts = model.UserFacts{UserID: userID}
	case err != nil:
		return model.UserFacts{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToUpdateFacts, err)
	}

	if update.Income != nil {
		facts.Income = update.Income
	}
	if update.CreditScore != nil {
		facts.CreditScore = update.CreditScore
	}
	if update.ZipCode != nil {
		zip := strings.TrimSpace(*update.ZipCode)
		facts.ZipCode = &zip
	}
	if update.Assets != nil {
		facts.Assets = update.Assets
	}
	facts.UpdatedAt = s.now().UTC()

	if err := s.repo.UpsertFacts(ctx, facts); err != nil {
		return model.UserFacts{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToUpdateFacts, err)
	}
	return facts, nil
}

// GetGoals retrieves the goals, preferences and memories of a user.
func (s *UserFactsService) GetGoals(ctx context.Context, userID string) (model.UserGoals, error) {
	goals, err := s.repo.GetGoals(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return model.UserGoals{}, err
		}
		return model.UserGoals{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveGoals, err)
	}
	return goals, nil
}

// UpdateGoals applies a partial update of goals and preferences.
func (s *UserFactsService) UpdateGoals(ctx context.Context, userID string, update model.UserGoalsUpdate) (model.UserGoals, error) {
	current, err := s.GetGoals(ctx, userID)
	if err != nil {
		return model.UserGoals{}, err
	}

	if update.Goals != nil {
		current.Goals = *update.Goals
	}
	if update.Preferences != nil {
		current.Preferences = *update.Preferences
	}
	current.UpdatedAt = s.now().UTC()

	if err := s.repo.UpsertGoals(ctx, userID, current.Goals, current.Preferences, current.UpdatedAt); err != nil {
		return model.UserGoals{}, fmt.Errorf("failed to store goals: %w", err)
	}
	return current, nil
}

// AddMemories appends memories to the user's list.
//
// Blank entries are ignored. A memory that is already stored moves to the end
// instead of being duplicated. Only the MaxMemories most recent are kept.
func (s *UserFactsService) AddMemories(ctx context.Context, userID string, memories []string) (model.UserGoals, error) {
	current, err := s.GetGoals(ctx, userID)
	if err != nil {
		return model.UserGoals{}, err
	}

	current.Memories = MergeMemories(current.Memories, memories, MaxMemories)

	if err := s.repo.ReplaceMemories(ctx, userID, current.Memories, s.now()); err != nil {
		return model.UserGoals{}, fmt.Errorf("failed to store memories: %w", err)
	}
	return current, nil
}

// MergeMemories appends added to existing, deduplicating and keeping at most limit entries.
// When a memory occurs more than once its latest position wins.
func MergeMemories(existing, added []string, limit int) []string {
	all := make([]string, 0, len(existing)+len(added))
	all = append(all, existing...)
	all = append(all, added...)

	seen := make(map[string]bool, len(all))
	kept := make([]string, 0, min(len(all), limit))
	for i := len(all) - 1; i >= 0 && len(kept) < limit; i-- {
		m := strings.TrimSpace(all[i])
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		kept = append(kept, m)
	}
	slices.Reverse(kept)
	return kept
}
