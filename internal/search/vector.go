package search

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// VectorProvider ranks stored candidates by cosine similarity between the query
// embedding and each candidate's pgvector embedding. Only candidates of the
// workspace carried by the context are considered.
type VectorProvider struct {
	db       *sql.DB
	embedder Embedder
	topK     int
	log      *zap.Logger
}

func NewVectorProvider(db *sql.DB, embedder Embedder, topK int, log *zap.Logger) *VectorProvider {
	if topK <= 0 {
		topK = 100
	}
	return &VectorProvider{db: db, embedder: embedder, topK: topK, log: log.Named("vector")}
}

func (v *VectorProvider) Search(ctx context.Context, query string) ([]CandidateResult, error) {
	q, err := NormalizeQuery(query)
	if err != nil {
		return nil, err
	}

	queryEmbedding, err := v.embedder.Embed(ctx, q)
	if err != nil {
		return nil, err
	}
	embeddingJSON, _ := json.Marshal(queryEmbedding)
	ws := WorkspaceFrom(ctx)

	rows, err := v.db.QueryContext(ctx, `
		SELECT
			id,
			name,
			skills,
			1 - (embedding <=> $1::vector) AS similarity
		FROM candidates
		WHERE embedding IS NOT NULL AND workspace_id = $3
		ORDER BY embedding <=> $1::vector
		LIMIT $2
	`, string(embeddingJSON), v.topK, ws)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}
	defer rows.Close()

	var results []CandidateResult
	for rows.Next() {
		var r CandidateResult
		if err := rows.Scan(&r.ID, &r.Name, pq.Array(&r.Skills), &r.Score); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	v.log.Debug("similarity search complete", zap.String("query", q), zap.String("workspace_id", ws), zap.Int("results", len(results)))
	return results, nil
}
