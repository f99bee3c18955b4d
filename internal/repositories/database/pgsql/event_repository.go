package pgsql

import (
	"context"
	"fmt"

	"github.com/ginagrosso/biblioteca/internal/apperrors"
	"github.com/ginagrosso/biblioteca/internal/core/domain"
	portsrepo "github.com/ginagrosso/biblioteca/internal/core/ports/repositories"
	"github.com/ginagrosso/biblioteca/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
)

var payloadJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type PgxEventRepository struct {
	pool *pgxpool.Pool
}

func newPgxEventRepository(pool *pgxpool.Pool) portsrepo.EventRepository {
	return &PgxEventRepository{pool: pool}
}

var _ portsrepo.EventRepository = (*PgxEventRepository)(nil)

func toModelEvent(d domain.CirculationEvent) (models.CirculationEvent, error) {
	payload := []byte("{}")
	if len(d.Payload) > 0 {
		var err error
		payload, err = payloadJSON.Marshal(d.Payload)
		if err != nil {
			return models.CirculationEvent{}, err
		}
	}
	return models.CirculationEvent{
		EventID:    d.EventID,
		EventType:  string(d.Type),
		MemberID:   nullIfEmpty(d.MemberID),
		LoanID:     nullIfEmpty(d.LoanID),
		CopyCode:   nullIfEmpty(d.CopyCode),
		FineID:     nullIfEmpty(d.FineID),
		ISBN:       nullIfEmpty(d.ISBN),
		ActorID:    d.ActorID,
		OccurredAt: d.OccurredAt,
		Payload:    payload,
	}, nil
}

func toDomainEvent(m models.CirculationEvent) (domain.CirculationEvent, error) {
	var payload map[string]any
	if len(m.Payload) > 0 {
		if err := payloadJSON.Unmarshal(m.Payload, &payload); err != nil {
			return domain.CirculationEvent{}, err
		}
	}
	if len(payload) == 0 {
		payload = nil
	}
	return domain.CirculationEvent{
		EventID:    m.EventID,
		Type:       domain.EventType(m.EventType),
		MemberID:   emptyIfNull(m.MemberID),
		LoanID:     emptyIfNull(m.LoanID),
		CopyCode:   emptyIfNull(m.CopyCode),
		FineID:     emptyIfNull(m.FineID),
		ISBN:       emptyIfNull(m.ISBN),
		ActorID:    m.ActorID,
		OccurredAt: m.OccurredAt,
		Payload:    payload,
	}, nil
}

// AppendEventsInTx writes events in one batch on tx.
func (r *PgxEventRepository) AppendEventsInTx(ctx context.Context, tx pgx.Tx, events []domain.CirculationEvent) error {
	if len(events) == 0 {
		return nil
	}

	query := `
		INSERT INTO circulation_events (event_id, event_type, member_id, loan_id, copy_code, fine_id, isbn,
		                                actor_id, occurred_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, event := range events {
		m, err := toModelEvent(event)
		if err != nil {
			return apperrors.NewStorageError("failed to encode payload of event "+string(event.Type), err)
		}
		batch.Queue(query,
			m.EventID, m.EventType, m.MemberID, m.LoanID, m.CopyCode, m.FineID, m.ISBN,
			m.ActorID, m.OccurredAt, m.Payload,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to append %d circulation events", len(events)), err)
	}
	return nil
}

// ListEvents retrieves events matching the filter, newest first.
func (r *PgxEventRepository) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.CirculationEvent, error) {
	query, args, err := buildListEventsQuery(filter)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to build event listing query", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapListError(err, "circulation events")
	}
	defer rows.Close()

	events := []domain.CirculationEvent{}
	for rows.Next() {
		var m models.CirculationEvent
		if err := rows.Scan(
			&m.EventID,
			&m.EventType,
			&m.MemberID,
			&m.LoanID,
			&m.CopyCode,
			&m.FineID,
			&m.ISBN,
			&m.ActorID,
			&m.OccurredAt,
			&m.Payload,
		); err != nil {
			return nil, apperrors.NewStorageError("failed to scan circulation event row", err)
		}
		event, err := toDomainEvent(m)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to decode payload of event "+m.EventID, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, mapListError(err, "circulation events")
	}
	return events, nil
}
