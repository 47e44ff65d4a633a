package workoutlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/traintally/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrAggregateNotFound = errors.New("work score aggregate not found")

type ListParams struct {
	UserID string
	Page   int
	Size   int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add inserts one workout record. The client_ref column carries a unique
// constraint, so a redelivered creation event for the same session inserts
// nothing; inserted reports whether a row was actually created.
func (r *Repo) Add(ctx context.Context, record Record) (_ *Record, inserted bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercisesJson, err := json.Marshal(record.Exercises)
	if err != nil {
		return nil, false, fmt.Errorf("marshal exercises: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO workout_log
				(user_id, client_ref, workout_type, calories, total_volume, notes, exercises, work_score, source, version, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (client_ref) DO NOTHING
			RETURNING id;`,
		record.UserID, record.ClientRef, record.WorkoutType,
		record.Calories, record.TotalVolume, record.Notes,
		exercisesJson, record.WorkScore, record.Source, record.Version, record.CreatedAt,
	)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	if !rows.Next() {
		// conflict on client_ref, the record is already there
		return &record, false, nil
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, false, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("workout.id", id))

	record.ID = id
	return &record, true, nil
}

// IncrementWorkScore upserts the per-user aggregate with atomic additions,
// so concurrent triggers for the same user cannot lose updates.
func (r *Repo) IncrementWorkScore(ctx context.Context, userID string, workoutType WorkoutType, score int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.incrementworkscore")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))
	span.SetAttributes(attribute.Int("score", score))

	strengthScore := 0
	cardioScore := 0
	switch workoutType {
	case WorkoutTypeStrength:
		strengthScore = score
	case WorkoutTypeCardio:
		cardioScore = score
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_work_score
				(user_id, total_work_score, strength_work_score, cardio_work_score, last_updated_at)
				VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (user_id) DO UPDATE SET
				total_work_score = user_work_score.total_work_score + EXCLUDED.total_work_score,
				strength_work_score = user_work_score.strength_work_score + EXCLUDED.strength_work_score,
				cardio_work_score = user_work_score.cardio_work_score + EXCLUDED.cardio_work_score,
				last_updated_at = now();`,
		userID, score, strengthScore, cardioScore,
	)
	return err
}

func (r *Repo) GetAggregate(ctx context.Context, userID string) (_ *Aggregate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.getaggregate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var aggregate Aggregate
	err = r.db.QueryRow(
		ctx,
		`SELECT user_id, total_work_score, strength_work_score, cardio_work_score, last_updated_at
			FROM user_work_score
			WHERE user_id = $1;`,
		userID,
	).Scan(
		&aggregate.UserID, &aggregate.TotalWorkScore,
		&aggregate.StrengthWorkScore, &aggregate.CardioWorkScore,
		&aggregate.LastUpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAggregateNotFound
	}
	if err != nil {
		return nil, err
	}

	return &aggregate, nil
}

func (r *Repo) Count(ctx context.Context, userID string) (count int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workout_log WHERE ($1::text = '' OR user_id = $1);`,
		userID,
	).Scan(&count)
	if err != nil {
		return -1, err
	}
	return count, nil
}

// List returns one page of workout records, newest first, plus the total
// record count for the same filter.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Record, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))
	span.SetAttributes(attribute.String("user.id", params.UserID))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	countAll, err := r.Count(ctx, params.UserID)
	if err != nil {
		return nil, -1, err
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	if offset >= countAll {
		return []Record{}, countAll, nil
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, client_ref, workout_type, calories, total_volume, notes, exercises, work_score, source, version, created_at
			FROM workout_log
			WHERE ($1::text = '' OR user_id = $1)
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3;`,
		params.UserID, limit, offset,
	)
	if err != nil {
		return nil, -1, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, fmt.Errorf("rows: %w", err)
	}

	records, err := r.rows2records(rows)
	if err != nil {
		return nil, -1, fmt.Errorf("rows2records: %w", err)
	}
	return records, countAll, nil
}

func (r *Repo) rows2records(rows pgx.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var record Record
		var exercisesJson []byte
		if err := rows.Scan(
			&record.ID, &record.UserID, &record.ClientRef, &record.WorkoutType,
			&record.Calories, &record.TotalVolume, &record.Notes,
			&exercisesJson, &record.WorkScore, &record.Source, &record.Version,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(exercisesJson) > 0 {
			if err := json.Unmarshal(exercisesJson, &record.Exercises); err != nil {
				return nil, fmt.Errorf("unmarshal exercises: %w", err)
			}
		}
		records = append(records, record)
	}
	return records, nil
}
