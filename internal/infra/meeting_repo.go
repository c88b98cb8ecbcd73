package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"meetscribe/internal/models"
	"meetscribe/internal/ports"
)

type PostgresMeetingRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresMeetingRepo(pool *pgxpool.Pool) ports.MeetingRepository {
	return &PostgresMeetingRepo{pool: pool}
}

func (r *PostgresMeetingRepo) InsertMeeting(ctx context.Context, m *models.Meeting) (*models.Meeting, error) {
	query := `
		INSERT INTO meetings (owner_id, title, audio_path)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	row := r.pool.QueryRow(ctx, query, m.OwnerID, m.Title, m.AudioPath)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert meeting: %w", err)
	}
	return m, nil
}

func (r *PostgresMeetingRepo) UpdateResults(ctx context.Context, id int, transcript, diarized, summary string) error {
	query := `
		UPDATE meetings
		SET transcript = $1, diarized_transcript = $2, summary = $3
		WHERE id = $4
	`
	if _, err := r.pool.Exec(ctx, query, transcript, diarized, summary, id); err != nil {
		return fmt.Errorf("update meeting results: %w", err)
	}
	return nil
}

func (r *PostgresMeetingRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Meeting, error) {
	query := `
		SELECT id, owner_id, title, audio_path, transcript, diarized_transcript, summary, created_at
		FROM meetings
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	items := make([]models.Meeting, 0)
	for rows.Next() {
		var m models.Meeting
		if err := rows.Scan(
			&m.ID,
			&m.OwnerID,
			&m.Title,
			&m.AudioPath,
			&m.Transcript,
			&m.DiarizedTranscript,
			&m.Summary,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *PostgresMeetingRepo) GetByIDAndOwner(ctx context.Context, id int, ownerID string) (*models.Meeting, error) {
	query := `
		SELECT id, owner_id, title, audio_path, transcript, diarized_transcript, summary, created_at
		FROM meetings
		WHERE id = $1 AND owner_id = $2
	`

	var m models.Meeting
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&m.ID,
		&m.OwnerID,
		&m.Title,
		&m.AudioPath,
		&m.Transcript,
		&m.DiarizedTranscript,
		&m.Summary,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meeting by id: %w", err)
	}

	return &m, nil
}
