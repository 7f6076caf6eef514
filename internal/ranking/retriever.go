package ranking

import (
	"context"
	"time"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// SearchQuery asks the nearest-neighbour index for candidates close to a job embedding
type SearchQuery struct {
	Embedding     []float32
	Limit         int
	MinSimilarity float64
	// Filter, when set, is applied before Limit: the index keeps scanning by descending
	// similarity until Limit candidates pass or it is exhausted. It is called from the
	// goroutine running Search.
	Filter func(types.CandidateProfile) bool
}

// Candidate is one retrieval hit: the stored profile, its CV text and its similarity to the job
type Candidate struct {
	ID         string
	Similarity float64
	CVText     string
	Profile    types.CandidateProfile
}

// Retriever returns candidates ordered by descending similarity.
// Implementations must honour ctx cancellation. Implementations that ignore
// SearchQuery.Filter are still correct; the Ranker filters their results again.
type Retriever interface {
	Search(ctx context.Context, query SearchQuery) ([]Candidate, error)
}

// Recorder receives pipeline measurements from the Ranker
type Recorder interface {
	CandidatesRetrieved(n int)
	CandidatesFiltered(n int)
	CandidateScored(composite float64)
	RetrievalFailed()
	RankCompleted(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) CandidatesRetrieved(int) {}
func (nopRecorder) CandidatesFiltered(int) {}
func (nopRecorder) CandidateScored(float64) {}
func (nopRecorder) RetrievalFailed() {}
func (nopRecorder) RankCompleted(time.Duration) {}
