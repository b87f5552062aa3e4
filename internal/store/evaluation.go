package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const evaluationsTable = "evaluations"

var evaluationColumns = []string{
	"id", "sequence", "created_at", "sentence_count", "overall_score",
	"grade", "cefr", "grammar_score", "vocabulary_score",
	"complexity_score", "readability_score", "classifier", "payload",
}

type evaluationRepo struct {
	store *Store
}

func (r *evaluationRepo) Save(ctx context.Context, rec *EvaluationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	seqNum, err := r.store.seq.Next(ctx)
	if err != nil {
		return err
	}
	rec.Sequence = seqNum

	query, args := r.store.sql.Insert(evaluationsTable).
		Columns(evaluationColumns...).
		Values(
			rec.ID, rec.Sequence, rec.CreatedAt.UnixMilli(), rec.SentenceCount, rec.OverallScore,
			rec.Grade, rec.CEFR, rec.GrammarScore, rec.VocabularyScore,
			rec.ComplexityScore, rec.ReadabilityScore, rec.Classifier, string(rec.Payload),
		).
		Query()
	if _, err := r.store.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepo) List(ctx context.Context, opts QueryOpts) ([]EvaluationRecord, error) {
	sel := r.store.sql.Select(evaluationColumns...).
		From(entsql.Table(evaluationsTable)).
		OrderBy(entsql.Desc("sequence"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	var out []EvaluationRecord
	for rows.Next() {
		rec, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *evaluationRepo) Get(ctx context.Context, id string) (*EvaluationRecord, error) {
	query, args := r.store.sql.Select(evaluationColumns...).
		From(entsql.Table(evaluationsTable)).
		Where(entsql.HasPrefix("id", id)).
		OrderBy(entsql.Desc("sequence")).
		Limit(2).
		Query()

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluation: %w", err)
	}
	defer rows.Close()

	var found []*EvaluationRecord
	for rows.Next() {
		rec, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if id == "" || len(found) == 0 {
		return nil, fmt.Errorf("evaluation %q: %w", id, ErrNotFound)
	}
	for _, rec := range found {
		if rec.ID == id {
			return rec, nil
		}
	}
	if len(found) > 1 {
		return nil, fmt.Errorf("evaluation id prefix %q is ambiguous", id)
	}
	return found[0], nil
}

func scanEvaluation(row rowScanner) (*EvaluationRecord, error) {
	var (
		rec     EvaluationRecord
		created int64
		payload string
	)
	err := row.Scan(
		&rec.ID, &rec.Sequence, &created, &rec.SentenceCount, &rec.OverallScore,
		&rec.Grade, &rec.CEFR, &rec.GrammarScore, &rec.VocabularyScore,
		&rec.ComplexityScore, &rec.ReadabilityScore, &rec.Classifier, &payload,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan evaluation: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(created)
	rec.Payload = []byte(payload)
	return &rec, nil
}
