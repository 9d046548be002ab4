package api

import (
	"context"
	"time"

	"go.uber.org/zap"

	"prosty-screening/internal/auth"
	"prosty-screening/internal/campaign"
	"prosty-screening/internal/cv"
	"prosty-screening/internal/payments"
	"prosty-screening/internal/storage"
	"prosty-screening/internal/workflow"
)

// Store is the persistence the HTTP handlers need. *storage.DB implements it.
type Store interface {
	Ping(ctx context.Context) error
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateWorkspace(ctx context.Context, w *storage.Workspace) error
	GetWorkspace(ctx context.Context, id string) (*storage.Workspace, error)
	MemberRole(ctx context.Context, workspaceID, userID string) (string, error)
	CreateInvite(ctx context.Context, inv *storage.Invite) error
	IncrementTokenBalance(ctx context.Context, workspaceID string, amount int64) (int64, error)
	ApplyTokenTopUp(ctx context.Context, eventID, workspaceID string, tokens int64) (bool, int64, error)
	UpdateWorkspacePayment(ctx context.Context, workspaceID string, p storage.PaymentUpdate) error
	UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string, periodEnd time.Time) error
	InsertCandidate(ctx context.Context, c *storage.Candidate) error
	ListCampaigns(ctx context.Context, workspaceID string) ([]*campaign.Campaign, error)
}

// CandidateEmbedder computes and stores a candidate's embedding.
type CandidateEmbedder interface {
	EmbedCandidate(ctx context.Context, candidateID string) error
}

type Options struct {
	Store    Store
	Sessions *workflow.Manager
	Payments payments.Provider
	Verifier *auth.Verifier
	CVParser *cv.CVParser
	Embedder CandidateEmbedder // nil disables background embeddings
	Log      *zap.Logger

	// EmbeddingInterval spaces out embedding API calls
	EmbeddingInterval time.Duration
}

type API struct {
	store    Store
	sessions *workflow.Manager
	payments payments.Provider
	verifier *auth.Verifier
	cvParser *cv.CVParser
	embedder CandidateEmbedder
	log      *zap.Logger

	embeddingQueue    chan EmbeddingJob // Background queue for async embedding generation
	embeddingInterval time.Duration
}

func NewAPI(opts Options) *API {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	interval := opts.EmbeddingInterval
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}

	return &API{
		store:             opts.Store,
		sessions:          opts.Sessions,
		payments:          opts.Payments,
		verifier:          opts.Verifier,
		cvParser:          opts.CVParser,
		embedder:          opts.Embedder,
		log:               log.Named("api"),
		embeddingQueue:    make(chan EmbeddingJob, 100), // Buffer for 100 embedding jobs
		embeddingInterval: interval,
	}
}
