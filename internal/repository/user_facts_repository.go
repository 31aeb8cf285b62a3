package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
)

// FieldCipher encrypts individual column values.
type FieldCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(token string) (string, error)
}

// UserFactsRepository provides data access for the user_facts, user_goals and user_memory tables.
// Income and credit score are encrypted before they reach the database.
type UserFactsRepository struct {
	db     *sql.DB
	cipher FieldCipher
}

// NewUserFactsRepository creates a new UserFactsRepository.
func NewUserFactsRepository(db *sql.DB, cipher FieldCipher) *UserFactsRepository {
	return &UserFactsRepository{db: db, cipher: cipher}
}

// GetFacts retrieves the facts of a user.
// Returns apperrors.ErrUserNotFound when no row exists.
func (r *UserFactsRepository) GetFacts(ctx context.Context, userID string) (model.UserFacts, error) {
	query := `
		SELECT user_id, income_enc, credit_score_enc, zip_code, assets, updated_at
		FROM user_facts
		WHERE user_id = ?
	`

	var (
		f            model.UserFacts
		incomeEnc    sql.NullString
		creditEnc    sql.NullString
		zipCode      sql.NullString
		assets       sql.NullFloat64
		updatedAtStr string
	)

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&f.UserID,
		&incomeEnc,
		&creditEnc,
		&zipCode,
		&assets,
		&updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserFacts{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.UserFacts{}, fmt.Errorf("failed to query user facts: %w", err)
	}

	if incomeEnc.Valid {
		income, err := r.decryptFloat(incomeEnc.String)
		if err != nil {
			return model.UserFacts{}, fmt.Errorf("failed to read income: %w", err)
		}
		f.Income = &income
	}
	if creditEnc.Valid {
		score, err := r.decryptInt(creditEnc.String)
		if err != nil {
			return model.UserFacts{}, fmt.Errorf("failed to read credit score: %w", err)
		}
		f.CreditScore = &score
	}
	if zipCode.Valid {
		f.ZipCode = &zipCode.String
	}
	if assets.Valid {
		f.Assets = &assets.Float64
	}

	f.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.UserFacts{}, err
	}

	return f, nil
}

// UpsertFacts writes every field of facts, replacing the stored row.
func (r *UserFactsRepository) UpsertFacts(ctx context.Context, facts model.UserFacts) error {
	var incomeEnc, creditEnc sql.NullString

	if facts.Income != nil {
		enc, err := r.cipher.Encrypt(strconv.FormatFloat(*facts.Income, 'f', -1, 64))
		if err != nil {
			return err
		}
		incomeEnc = sql.NullString{String: enc, Valid: true}
	}
	if facts.CreditScore != nil {
		enc, err := r.cipher.Encrypt(strconv.Itoa(*facts.CreditScore))
		if err != nil {
			return err
		}
		creditEnc = sql.NullString{String: enc, Valid: true}
	}

	query := `
		INSERT INTO user_facts (user_id, income_enc, credit_score_enc, zip_code, assets, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			income_enc = excluded.income_enc,
			credit_score_enc = excluded.credit_score_enc,
			zip_code = excluded.zip_code,
			assets = excluded.assets,
			updated_at = excluded.updated_at
	`
	updatedAt := FormatTime(facts.UpdatedAt)

	_, err := r.db.ExecContext(ctx, query,
		facts.UserID,
		incomeEnc,
		creditEnc,
		nullString(facts.ZipCode),
		nullFloat(facts.Assets),
		updatedAt,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user facts: %w", err)
	}
	return nil
}

// GetGoals retrieves the goals, preferences and memories of a user.
// A user without a goals row yields empty goals. Memories are ordered oldest first.
func (r *UserFactsRepository) GetGoals(ctx context.Context, userID string) (model.UserGoals, error) {
	if err := r.requireUser(ctx, userID); err != nil {
		return model.UserGoals{}, err
	}

	g := model.UserGoals{UserID: userID, Memories: []string{}}

	var updatedAtStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT goals, preferences, updated_at FROM user_goals WHERE user_id = ?`, userID,
	).Scan(&g.Goals, &g.Preferences, &updatedAtStr)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return model.UserGoals{}, fmt.Errorf("failed to query user goals: %w", err)
	default:
		if g.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
			return model.UserGoals{}, err
		}
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT memory FROM user_memory WHERE user_id = ? ORDER BY seq ASC`, userID)
	if err != nil {
		return model.UserGoals{}, fmt.Errorf("failed to query user memories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return model.UserGoals{}, fmt.Errorf("failed to scan user memory: %w", err)
		}
		g.Memories = append(g.Memories, m)
	}
	if err := rows.Err(); err != nil {
		return model.UserGoals{}, fmt.Errorf("error iterating user memories: %w", err)
	}

	return g, nil
}

// UpsertGoals writes the goals and preferences of an existing user.
func (r *UserFactsRepository) UpsertGoals(ctx context.Context, userID, goals, preferences string, updatedAt time.Time) error {
	if err := r.requireUser(ctx, userID); err != nil {
		return err
	}

	query := `
		INSERT INTO user_goals (user_id, goals, preferences, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			goals = excluded.goals,
			preferences = excluded.preferences,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, userID, goals, preferences, FormatTime(updatedAt)); err != nil {
		return fmt.Errorf("failed to upsert user goals: %w", err)
	}
	return nil
}

// ReplaceMemories stores memories as the complete, ordered memory list of a user.
func (r *UserFactsRepository) ReplaceMemories(ctx context.Context, userID string, memories []string, createdAt time.Time) (err error) {
	if err := r.requireUser(ctx, userID); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback() //nolint:errcheck
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM user_memory WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear user memories: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO user_memory (id, user_id, memory, seq, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare memory insert: %w", err)
	}
	defer stmt.Close()

	ts := FormatTime(createdAt)
	for i, m := range memories {
		if _, err = stmt.ExecContext(ctx, uuid.New().String(), userID, m, i, ts); err != nil {
			return fmt.Errorf("failed to insert user memory: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user memories: %w", err)
	}
	return nil
}

func (r *UserFactsRepository) requireUser(ctx context.Context, userID string) error {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM user_facts WHERE user_id = ?`, userID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	return nil
}

func (r *UserFactsRepository) decryptFloat(token string) (float64, error) {
	plain, err := r.cipher.Decrypt(token)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(plain, 64)
}

func (r *UserFactsRepository) decryptInt(token string) (int, error) {
	plain, err := r.cipher.Decrypt(token)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(plain)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
