package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"persona/internal/config"
)

// Store manages profile persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the profile database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// InsertIfAbsent atomically inserts a profile unless its dedup key
// (admin_id, category, subcategory) is already present. The second return
// value reports whether a row was inserted; a duplicate returns the existing
// profile with inserted=false and is never an error.
func (s *Store) InsertIfAbsent(ctx context.Context, attrs NewProfile) (*Profile, bool, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO profiles (
            admin_id, category, subcategory, first_name, last_name,
            email, phone, organization_name, organization_town, languages,
            source_file, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (admin_id, category, subcategory) DO NOTHING`,
		attrs.AdminID,
		attrs.Category,
		attrs.Subcategory,
		attrs.FirstName,
		attrs.LastName,
		attrs.Email,
		attrs.Phone,
		attrs.OrganizationName,
		attrs.OrganizationTown,
		attrs.Languages,
		attrs.SourceFile,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		existing, err := s.getByKey(ctx, attrs.AdminID, attrs.Category, attrs.Subcategory)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, false, fmt.Errorf("last insert id: %w", err)
	}
	inserted, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return inserted, true, nil
}

// GetByID fetches a profile by identifier, returning ErrNotFound when no row
// exists.
func (s *Store) GetByID(ctx context.Context, id int64) (*Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *Store) getByKey(ctx context.Context, adminID int64, category, subcategory string) (*Profile, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE admin_id = ? AND category = ? AND subcategory = ?`,
		adminID, category, subcategory,
	)
	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile admin %d in %s/%s: %w", adminID, category, subcategory, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by key: %w", err)
	}
	return profile, nil
}

// SelectPending returns profiles whose stage status is pending with
// id >= startID, ordered by ascending id. Ascending id is the sole ordering
// guarantee; it is what makes cursor-based resumption work. A limit <= 0
// means unlimited.
func (s *Store) SelectPending(ctx context.Context, stage Stage, startID int64, limit int) ([]*Profile, error) {
	var where string
	switch stage {
	case StagePrompt:
		where = `prompt_generated = 0`
	case StageImage:
		where = `prompt_generated = 1 AND image_generated = 0`
	default:
		return nil, fmt.Errorf("unknown stage %q", stage)
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + where + ` AND id >= ? ORDER BY id`
	args := []any{startID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select pending %s: %w", stage, err)
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// MarkPromptDone stores the prompt artifact and flips prompt_generated. The
// flag only moves forward; re-marking an already-done profile overwrites the
// artifact but never clears the flag.
func (s *Store) MarkPromptDone(ctx context.Context, id int64, pair PromptPair) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE profiles
         SET positive_prompt = ?, negative_prompt = ?, prompt_generated = 1, updated_at = ?
         WHERE id = ?`,
		pair.Positive,
		pair.Negative,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("mark prompt done: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkImageDone stores the image artifact path and flips image_generated.
// The update is guarded by prompt_generated so the stage ordering invariant
// (image done implies prompt done) can never be violated, even by a buggy
// caller.
func (s *Store) MarkImageDone(ctx context.Context, id int64, imagePath string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE profiles
         SET image_path = ?, image_generated = 1, updated_at = ?
         WHERE id = ? AND prompt_generated = 1`,
		imagePath,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("mark image done: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrPromptNotReady
	}
	return nil
}

// ResetAll clears both stages' status flags and artifacts for every profile
// and returns the number of rows affected. Destructive; callers must obtain
// explicit confirmation before invoking.
func (s *Store) ResetAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE profiles
         SET prompt_generated = 0, image_generated = 0,
             positive_prompt = NULL, negative_prompt = NULL, image_path = NULL,
             updated_at = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("reset generation status: %w", err)
	}
	return res.RowsAffected()
}

// Recreate drops and redefines the backing schema. Destructive; used only
// for explicit initialization.
func (s *Store) Recreate(ctx context.Context) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS profiles`,
		`DROP TABLE IF EXISTS schema_migrations`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
	}
	return s.applyMigrations(ctx)
}

// List returns profiles matching the filter ordered by category, subcategory,
// then id. Used by CLI views only; pipeline drivers use SelectPending.
func (s *Store) List(ctx context.Context, filter Filter) ([]*Profile, error) {
	var clauses []string
	var args []any

	if strings.TrimSpace(filter.Category) != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Subcategory != nil {
		clauses = append(clauses, "subcategory = ?")
		args = append(args, *filter.Subcategory)
	}
	switch filter.PendingStage {
	case StagePrompt:
		clauses = append(clauses, "prompt_generated = 0")
	case StageImage:
		clauses = append(clauses, "prompt_generated = 1 AND image_generated = 0")
	}

	query := `SELECT ` + profileColumns + ` FROM profiles`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY category, subcategory, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// Stats aggregates pipeline progress across all profiles.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	row := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1), COALESCE(SUM(prompt_generated), 0), COALESCE(SUM(image_generated), 0) FROM profiles`,
	)
	if err := row.Scan(&stats.Total, &stats.Prompts, &stats.Images); err != nil {
		return Stats{}, fmt.Errorf("profile stats: %w", err)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT category, subcategory, COUNT(1),
                COALESCE(SUM(prompt_generated), 0), COALESCE(SUM(image_generated), 0)
         FROM profiles
         GROUP BY category, subcategory
         ORDER BY category, subcategory`,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("category stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cs CategoryStats
		if err := rows.Scan(&cs.Category, &cs.Subcategory, &cs.Total, &cs.Prompts, &cs.Images); err != nil {
			return Stats{}, err
		}
		stats.Categories = append(stats.Categories, cs)
	}
	return stats, rows.Err()
}

const profileColumns = "id, admin_id, category, subcategory, first_name, last_name, email, phone, organization_name, organization_town, languages, source_file, positive_prompt, negative_prompt, image_path, prompt_generated, image_generated, created_at, updated_at"

func scanProfile(scanner interface{ Scan(dest ...any) error }) (*Profile, error) {
	var (
		id              int64
		adminID         int64
		category        string
		subcategory     string
		firstName       string
		lastName        string
		email           string
		phone           string
		orgName         string
		orgTown         string
		languages       string
		sourceFile      string
		positivePrompt  sql.NullString
		negativePrompt  sql.NullString
		imagePath       sql.NullString
		promptGenerated int64
		imageGenerated  int64
		createdRaw      string
		updatedRaw      string
	)

	if err := scanner.Scan(
		&id,
		&adminID,
		&category,
		&subcategory,
		&firstName,
		&lastName,
		&email,
		&phone,
		&orgName,
		&orgTown,
		&languages,
		&sourceFile,
		&positivePrompt,
		&negativePrompt,
		&imagePath,
		&promptGenerated,
		&imageGenerated,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	profile := &Profile{
		ID:               id,
		AdminID:          adminID,
		Category:         category,
		Subcategory:      subcategory,
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		Phone:            phone,
		OrganizationName: orgName,
		OrganizationTown: orgTown,
		Languages:        languages,
		SourceFile:       sourceFile,
		PositivePrompt:   positivePrompt.String,
		NegativePrompt:   negativePrompt.String,
		ImagePath:        imagePath.String,
		PromptGenerated:  promptGenerated != 0,
		ImageGenerated:   imageGenerated != 0,
	}

	if created, err := parseTimeString(createdRaw); err == nil {
		profile.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		profile.UpdatedAt = updated
	}
	return profile, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
