package search

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lib/pq"
	"go.uber.org/zap"

	httpclient "prosty-screening/pkg/http"
)

const openAIEmbeddingsURL = "https://api.openai.com/v1/embeddings"

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingService generates vector embeddings for candidate similarity search
type EmbeddingService struct {
	apiKey string
	model  string
	url    string
	client *httpclient.Client
	db     *sql.DB
	log    *zap.Logger
}

func NewEmbeddingService(apiKey, model string, db *sql.DB, log *zap.Logger) *EmbeddingService {
	return &EmbeddingService{
		apiKey: apiKey,
		model:  model,
		url:    openAIEmbeddingsURL,
		client: httpclient.NewClient(30 * time.Second),
		db:     db,
		log:    log.Named("embeddings"),
	}
}

// WithURL points the service at an OpenAI-compatible endpoint.
func (s *EmbeddingService) WithURL(url string) *EmbeddingService {
	s.url = url
	return s
}

// Embed creates a vector embedding for text
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}

	err := s.client.PostJSON(ctx, s.url,
		map[string]string{"Authorization": "Bearer " + s.apiKey},
		map[string]interface{}{"input": text, "model": s.model},
		&result,
	)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}

	if len(result.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return result.Data[0].Embedding, nil
}

// EmbedCandidate generates and stores the embedding for one candidate row
func (s *EmbeddingService) EmbedCandidate(ctx context.Context, candidateID string) error {
	var name, resumeText string
	var skills []string

	err := s.db.QueryRowContext(ctx, `
		SELECT name, skills, resume_text
		FROM candidates
		WHERE id = $1
	`, candidateID).Scan(&name, pq.Array(&skills), &resumeText)
	if err != nil {
		return fmt.Errorf("failed to get candidate: %w", err)
	}

	embedding, err := s.Embed(ctx, CandidateText(name, skills, resumeText))
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}

	embeddingJSON, _ := json.Marshal(embedding)

	_, err = s.db.ExecContext(ctx, `
		UPDATE candidates
		SET embedding = $1::vector,
		    embedding_model = $2,
		    embedding_created_at = NOW()
		WHERE id = $3
	`, string(embeddingJSON), s.model, candidateID)
	return err
}

// PendingCandidates lists candidates that have no embedding yet, newest first
func (s *EmbeddingService) PendingCandidates(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id
		FROM candidates
		WHERE embedding IS NULL
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Embedding models cap input length
const maxResumeBytes = 6000

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// CandidateText is the text representation embedded for a candidate.
func CandidateText(name string, skills []string, resumeText string) string {
	var b strings.Builder
	b.WriteString(name)
	if len(skills) > 0 {
		b.WriteString(". Skills: ")
		b.WriteString(strings.Join(skills, ", "))
	}
	if resumeText != "" {
		b.WriteString(". ")
		b.WriteString(truncateUTF8(resumeText, maxResumeBytes))
	}
	return b.String()
}
