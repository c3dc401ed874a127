package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"KeywordEngine/internal/domain"
	"KeywordEngine/internal/ports"
)

// PostgresRepository persists extraction results onto content records.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ResultRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// AlreadyExtracted returns a map with content IDs that already have a stored
// extraction run, so callers can skip re-processing unchanged content.
func (r *PostgresRepository) AlreadyExtracted(ctx context.Context, contentIDs []string) (map[string]bool, error) {
	if r.db == nil || len(contentIDs) == 0 {
		return map[string]bool{}, nil
	}

	query, args, err := r.builder.
		Select("content_id").
		From("keyword_extractions").
		Where(sq.Expr("content_id = ANY(?)", pq.StringArray(contentIDs))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query extractions: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan content id: %w", err)
		}
		result[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// SaveResult upserts the extraction run for a content record and replaces its
// keyword and topic rows in one transaction.
func (r *PostgresRepository) SaveResult(ctx context.Context, contentID string, result domain.Result) error {
	if r.db == nil {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query, args, err := r.builder.
		Insert("keyword_extractions").
		Columns("content_id", "enriched", "keyword_count", "updated_at").
		Values(contentID, result.Enriched, len(result.Keywords), sq.Expr("NOW()")).
		Suffix(`ON CONFLICT (content_id) DO UPDATE
                SET enriched = EXCLUDED.enriched,
                    keyword_count = EXCLUDED.keyword_count,
                    updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build extraction upsert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert extraction: %w", err)
	}

	if err := r.replaceKeywords(ctx, tx, contentID, result.Keywords); err != nil {
		return err
	}
	if err := r.replaceTopics(ctx, tx, contentID, result.Topics); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresRepository) replaceKeywords(ctx context.Context, tx *sql.Tx, contentID string, keywords []domain.RankedKeyword) error {
	query, args, err := r.builder.
		Delete("content_keywords").
		Where(sq.Eq{"content_id": contentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build keyword delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete keywords: %w", err)
	}

	if len(keywords) == 0 {
		return nil
	}

	insert := r.builder.
		Insert("content_keywords").
		Columns("content_id", "position", "keyword", "score", "source")
	for i, kw := range keywords {
		insert = insert.Values(contentID, i, kw.Keyword, kw.Score, string(kw.Source))
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("build keyword insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert keywords: %w", err)
	}
	return nil
}

func (r *PostgresRepository) replaceTopics(ctx context.Context, tx *sql.Tx, contentID string, topics []domain.TopicSuggestion) error {
	query, args, err := r.builder.
		Delete("content_topics").
		Where(sq.Eq{"content_id": contentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build topic delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete topics: %w", err)
	}

	if len(topics) == 0 {
		return nil
	}

	insert := r.builder.
		Insert("content_topics").
		Columns("content_id", "position", "topic", "score", "reason")
	for i, topic := range topics {
		insert = insert.Values(contentID, i, topic.Topic, topic.Score, topic.Reason)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("build topic insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert topics: %w", err)
	}
	return nil
}
