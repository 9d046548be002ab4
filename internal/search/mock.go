package search

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// MockResultCount is the number of candidates the mock provider returns per search.
const MockResultCount = 10

var (
	firstNames = []string{"Anna", "Piotr", "Maria", "Jakub", "Zofia", "Tomasz", "Ola", "Marek", "Ewa", "Kamil", "Julia", "Adam"}
	lastNames  = []string{"Nowak", "Kowalski", "Wiśniewska", "Wójcik", "Kamińska", "Lewandowski", "Zielińska", "Szymański"}
	skillPool  = []string{
		"Go", "Python", "TypeScript", "React", "PostgreSQL", "Kubernetes", "Docker", "AWS",
		"GraphQL", "Node.js", "Machine Learning", "Figma", "Product Management", "SQL", "Java",
	}
)

// MockProvider simulates a similarity-search backend: after a fixed delay it returns
// MockResultCount synthetic candidates with relevance strictly decreasing by position.
type MockProvider struct {
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockProvider(delay time.Duration) *MockProvider {
	return &MockProvider{
		delay: delay,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededMockProvider is NewMockProvider with a fixed random source.
func NewSeededMockProvider(delay time.Duration, seed int64) *MockProvider {
	return &MockProvider{
		delay: delay,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (p *MockProvider) Search(ctx context.Context, query string) ([]CandidateResult, error) {
	if _, err := NormalizeQuery(query); err != nil {
		return nil, err
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	results := make([]CandidateResult, MockResultCount)
	for i := range results {
		// Jitter stays below the 0.05 step so the ordering holds
		score := 0.98 - 0.05*float64(i) - 0.04*p.rng.Float64()
		results[i] = CandidateResult{
			ID:     fmt.Sprintf("%d", i+1),
			Name:   firstNames[p.rng.Intn(len(firstNames))] + " " + lastNames[p.rng.Intn(len(lastNames))],
			Score:  score,
			Skills: p.pickSkills(3),
		}
	}
	return results, nil
}

func (p *MockProvider) pickSkills(n int) []string {
	idx := p.rng.Perm(len(skillPool))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = skillPool[j]
	}
	return out
}
