package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/golazozone/prediction-league/internal/domain/audit"
	qb "github.com/golazozone/prediction-league/internal/platform/querybuilder"
)

var auditJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, entry audit.Entry) error {
	metadata, err := auditJSON.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	insertModel := auditEntryInsertModel{
		PublicID:   entry.ID,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Metadata:   metadata,
		CreatedAt:  timeToUnix(entry.CreatedAt),
	}
	query, args, err := qb.InsertModel("audit_log", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert audit entry query: %w", err)
	}
	if _, err := ext(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	query, args, err := qb.Select("*").From("audit_log").
		OrderBy("id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list audit entries query: %w", err)
	}

	var rows []auditEntryTableModel
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	out := make([]audit.Entry, 0, len(rows))
	for _, row := range rows {
		var metadata map[string]any
		if len(row.Metadata) > 0 {
			if err := auditJSON.Unmarshal(row.Metadata, &metadata); err != nil {
				return nil, fmt.Errorf("unmarshal audit metadata id=%s: %w", row.PublicID, err)
			}
		}
		out = append(out, audit.Entry{
			ID:         row.PublicID,
			ActorID:    row.ActorID,
			Action:     row.Action,
			EntityType: row.EntityType,
			EntityID:   row.EntityID,
			Metadata:   metadata,
			CreatedAt:  unixToTime(row.CreatedAt),
		})
	}
	return out, nil
}
