// internal/storage/postgres.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"loyaltyhub/internal/membership"
)

// PostgresRepository stores membership records in PostgreSQL. The schema
// carries UNIQUE (user_id, membership_type), so the one-record-per-pair
// rule holds even when two registrations race past the service's
// existence check.
type PostgresRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		tracer: otel.Tracer("loyaltyhub/storage"),
	}
}

func (r *PostgresRepository) Insert(ctx context.Context, m *membership.Membership) (*membership.Membership, error) {
	ctx, span := r.tracer.Start(ctx, "storage.insert",
		trace.WithAttributes(
			attribute.String("membership.user_id", m.UserID),
			attribute.String("membership.type", string(m.MembershipType)),
		),
	)
	defer span.End()

	record := *m
	record.ID = uuid.New()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO memberships (id, user_id, membership_type, point, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, record.ID, record.UserID, record.MembershipType, record.Point, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		// 23505: the (user_id, membership_type) unique index caught a
		// registration race.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, membership.ErrDuplicatedMembershipRegister
		}
		return nil, fmt.Errorf("insert membership: %w", err)
	}

	span.SetAttributes(attribute.String("membership.id", record.ID.String()))
	return &record, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Membership, error) {
	ctx, span := r.tracer.Start(ctx, "storage.find_by_id",
		trace.WithAttributes(attribute.String("membership.id", id.String())),
	)
	defer span.End()

	return r.queryOne(ctx, `
		SELECT id, user_id, membership_type, point, created_at, updated_at
		FROM memberships
		WHERE id = $1
	`, id)
}

func (r *PostgresRepository) FindByUserAndType(ctx context.Context, userID string, membershipType membership.MembershipType) (*membership.Membership, error) {
	ctx, span := r.tracer.Start(ctx, "storage.find_by_user_and_type",
		trace.WithAttributes(
			attribute.String("membership.user_id", userID),
			attribute.String("membership.type", string(membershipType)),
		),
	)
	defer span.End()

	return r.queryOne(ctx, `
		SELECT id, user_id, membership_type, point, created_at, updated_at
		FROM memberships
		WHERE user_id = $1 AND membership_type = $2
	`, userID, membershipType)
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*membership.Membership, error) {
	m := &membership.Membership{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.UserID,
		&m.MembershipType,
		&m.Point,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query membership: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) FindAllByUser(ctx context.Context, userID string) ([]*membership.Membership, error) {
	ctx, span := r.tracer.Start(ctx, "storage.find_all_by_user",
		trace.WithAttributes(attribute.String("membership.user_id", userID)),
	)
	defer span.End()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, membership_type, point, created_at, updated_at
		FROM memberships
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query memberships: %w", err)
	}
	defer rows.Close()

	var records []*membership.Membership
	for rows.Next() {
		m := &membership.Membership{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.MembershipType, &m.Point, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}

	span.SetAttributes(attribute.Int("memberships.loaded", len(records)))
	return records, nil
}

func (r *PostgresRepository) AccumulatePoint(ctx context.Context, id uuid.UUID, delta int) error {
	ctx, span := r.tracer.Start(ctx, "storage.accumulate_point",
		trace.WithAttributes(
			attribute.String("membership.id", id.String()),
			attribute.Int("point.delta", delta),
		),
	)
	defer span.End()

	// Single-statement increment; concurrent credits compose additively.
	res, err := r.db.ExecContext(ctx, `
		UPDATE memberships
		SET point = point + $1, updated_at = NOW()
		WHERE id = $2
	`, delta, id)
	if err != nil {
		return fmt.Errorf("accumulate point: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("accumulate point result: %w", err)
	}
	if affected == 0 {
		return membership.ErrMembershipNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := r.tracer.Start(ctx, "storage.delete",
		trace.WithAttributes(attribute.String("membership.id", id.String())),
	)
	defer span.End()

	res, err := r.db.ExecContext(ctx, `DELETE FROM memberships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete membership result: %w", err)
	}
	if affected == 0 {
		return membership.ErrMembershipNotFound
	}
	return nil
}
