package ranking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/candidate-matcher/internal/metrics"
	"github.com/jonathan/candidate-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRetriever implements Retriever for testing
type MockRetriever struct {
	SearchFunc func(ctx context.Context, query SearchQuery) ([]Candidate, error)

	mu      sync.Mutex
	queries []SearchQuery
}

func (m *MockRetriever) Search(ctx context.Context, query SearchQuery) ([]Candidate, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, nil
}

func staticRetriever(candidates ...Candidate) *MockRetriever {
	return &MockRetriever{
		SearchFunc: func(_ context.Context, _ SearchQuery) ([]Candidate, error) {
			return candidates, nil
		},
	}
}

// scanRetriever walks candidates in order, honouring MinSimilarity, Filter and Limit
// the way an index does
func scanRetriever(candidates ...Candidate) *MockRetriever {
	return &MockRetriever{
		SearchFunc: func(_ context.Context, query SearchQuery) ([]Candidate, error) {
			var out []Candidate
			for _, c := range candidates {
				if len(out) == query.Limit {
					break
				}
				if c.Similarity < query.MinSimilarity {
					continue
				}
				if query.Filter != nil && !query.Filter(c.Profile) {
					continue
				}
				out = append(out, c)
			}
			return out, nil
		},
	}
}

// countingRecorder implements Recorder for testing
type countingRecorder struct {
	mu        sync.Mutex
	retrieved int
	filtered  int
	scored    int
	failures  int
	completed int
}

func (c *countingRecorder) CandidatesRetrieved(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retrieved += n
}

func (c *countingRecorder) CandidatesFiltered(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filtered += n
}

func (c *countingRecorder) CandidateScored(float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scored++
}

func (c *countingRecorder) RetrievalFailed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures++
}

func (c *countingRecorder) RankCompleted(time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed++
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func newTestCalculator(t *testing.T) *metrics.Calculator {
	t.Helper()
	calc, err := metrics.NewCalculator(metrics.WithClock(func() time.Time {
		return time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)
	return calc
}

func testJob() types.JobProfile {
	return types.JobProfile{
		ID:                 "job-1",
		Title:              "Backend Engineer",
		RequiredSkills:     []string{"Go", "PostgreSQL"},
		PreferredSkills:    []string{"Kubernetes"},
		MinExperienceYears: intPtr(3),
		TechStack:          []string{"Go", "Kubernetes"},
		SeniorityLevel:     "senior",
		RemoteType:         "remote",
		Locations:          []string{"Germany"},
		RequiredLanguages:  []string{"English"},
	}
}

func strongCandidate() Candidate {
	return Candidate{
		ID:         "cand-strong",
		Similarity: 0.9,
		CVText:     "Summary. Experience building Go services on Kubernetes with PostgreSQL. Skills: Go.",
		Profile: types.CandidateProfile{
			Name:                   "Strong",
			Skills:                 []string{"go", "postgresql", "kubernetes"},
			TotalYearsExperience:   intPtr(7),
			SeniorityLevel:         "Senior",
			Country:                "Germany",
			City:                   "Berlin",
			LocationTypePreference: "remote",
			Languages:              []string{"English", "German"},
			WorkExperience: []types.WorkExperience{
				{Title: "Engineer", Company: "Acme", StartDate: "2019-01", EndDate: "Present", Description: "Go and Kubernetes"},
			},
		},
	}
}

func weakCandidate() Candidate {
	return Candidate{
		ID:         "cand-weak",
		Similarity: 0.6,
		CVText:     "Java developer.",
		Profile: types.CandidateProfile{
			Name:                   "Weak",
			Skills:                 []string{"java"},
			TotalYearsExperience:   intPtr(1),
			SeniorityLevel:         "junior",
			Country:                "France",
			LocationTypePreference: "onsite",
			Languages:              []string{"French"},
		},
	}
}

func TestRank_SortsByComposite(t *testing.T) {
	ranker := NewRanker(newTestCalculator(t), staticRetriever(weakCandidate(), strongCandidate()))

	result, err := ranker.Rank(context.Background(), Request{Job: testJob(), TopK: 5})
	require.NoError(t, err)
	require.Len(t, result.Ranked, 2)

	assert.Equal(t, "job-1", result.JobID)
	assert.Equal(t, 2, result.Considered)
	assert.Equal(t, 0, result.Filtered)
	assert.Equal(t, "cand-strong", result.Ranked[0].CandidateID)
	assert.Equal(t, "Strong", result.Ranked[0].Name)
	assert.GreaterOrEqual(t, result.Ranked[0].Metrics.CompositeScore, result.Ranked[1].Metrics.CompositeScore)
	assert.Contains(t, result.Ranked[0].Breakdown.Rationale, "Strong skill match")
	assert.Equal(t, []string{"Go", "PostgreSQL"}, result.Ranked[0].Breakdown.MatchedSkills)
	assert.Empty(t, result.Ranked[0].Breakdown.MissingRequiredSkills)
	assert.Equal(t, []string{"Kubernetes"}, result.Ranked[0].Breakdown.NiceToHaveCovered)
	assert.Equal(t, "Engineer at Acme", result.Ranked[0].CurrentRole)
	assert.Equal(t, []string{"Currently at Acme"}, result.Ranked[0].Breakdown.OtherFactors)

	assert.Equal(t, "Backend Engineer", result.Summary.RoleTitle)
	assert.Equal(t, "Go, Kubernetes", result.Summary.PrimaryStackOrDomain)
	assert.Equal(t, []string{"No hard constraints applied"}, result.Summary.HardConstraintsApplied)
}

func TestRank_TruncatesToTopK(t *testing.T) {
	var pool []Candidate
	for i := 0; i < 10; i++ {
		c := strongCandidate()
		c.ID = fmt.Sprintf("cand-%02d", i)
		c.Similarity = 0.5 + float64(i)/100
		pool = append(pool, c)
	}

	ranker := NewRanker(newTestCalculator(t), staticRetriever(pool...), WithConcurrency(3))

	result, err := ranker.Rank(context.Background(), Request{Job: testJob(), TopK: 3})
	require.NoError(t, err)
	require.Len(t, result.Ranked, 3)
	assert.Equal(t, 10, result.Considered)
	for i := 1; i < len(result.Ranked); i++ {
		assert.GreaterOrEqual(t, result.Ranked[i-1].Metrics.CompositeScore, result.Ranked[i].Metrics.CompositeScore)
	}
}

func TestRank_SearchQueryDefaults(t *testing.T) {
	retriever := staticRetriever()
	ranker := NewRanker(newTestCalculator(t), retriever)

	_, err := ranker.Rank(context.Background(), Request{Job: testJob(), TopK: 4, JobEmbedding: []float32{1, 0}})
	require.NoError(t, err)

	_, err = ranker.Rank(context.Background(), Request{Job: testJob(), TopK: 4, SearchLimit: 7, MinSimilarity: floatPtr(0.2)})
	require.NoError(t, err)

	require.Len(t, retriever.queries, 2)
	assert.Equal(t, 12, retriever.queries[0].Limit)
	assert.Equal(t, DefaultMinSimilarity, retriever.queries[0].MinSimilarity)
	assert.Equal(t, []float32{1, 0}, retriever.queries[0].Embedding)
	assert.Equal(t, 7, retriever.queries[1].Limit)
	assert.Equal(t, 0.2, retriever.queries[1].MinSimilarity)
}

func TestRank_AppliesConstraints(t *testing.T) {
	recorder := &countingRecorder{}
	ranker := NewRanker(newTestCalculator(t), staticRetriever(weakCandidate(), strongCandidate()), WithRecorder(recorder))

	result, err := ranker.Rank(context.Background(), Request{Job: testJob(), TopK: 5, ApplyConstraints: true})
	require.NoError(t, err)

	require.Len(t, result.Ranked, 1)
	assert.Equal(t, "cand-strong", result.Ranked[0].CandidateID)
	assert.Equal(t, 1, result.Filtered)
	assert.NotEmpty(t, result.ConstraintsApplied)
	assert.Equal(t, result.ConstraintsApplied, result.Summary.HardConstraintsApplied)

	assert.Equal(t, 2, recorder.retrieved)
	assert.Equal(t, 1, recorder.filtered)
	assert.Equal(t, 1, recorder.scored)
	assert.Equal(t, 1, recorder.completed)
}

func TestRank_ConstraintsDoNotStarveTopK(t *testing.T) {
	var pool []Candidate
	for i := 0; i < 6; i++ {
		c := weakCandidate()
		c.ID = fmt.Sprintf("cand-weak-%d", i)
		c.Similarity = 0.95 - float64(i)/100
		pool = append(pool, c)
	}
	strong := strongCandidate()
	strong.Similarity = 0.7
	pool = append(pool, strong)

	retriever := scanRetriever(pool...)
	ranker := NewRanker(newTestCalculator(t), retriever)

	result, err := ranker.Rank(context.Background(), Request{Job: testJob(), TopK: 1, ApplyConstraints: true})
	require.NoError(t, err)

	require.Len(t, result.Ranked, 1)
	assert.Equal(t, "cand-strong", result.Ranked[0].CandidateID)
	assert.Equal(t, 6, result.Filtered)
	assert.Equal(t, 7, result.Considered)
	require.Len(t, retriever.queries, 1)
	assert.NotNil(t, retriever.queries[0].Filter)
}

func TestRank_NoFilterWithoutConstraints(t *testing.T) {
	retriever := staticRetriever()
	ranker := NewRanker(newTestCalculator(t), retriever)

	_, err := ranker.Rank(context.Background(), Request{Job: testJob(), TopK: 2})
	require.NoError(t, err)
	require.Len(t, retriever.queries, 1)
	assert.Nil(t, retriever.queries[0].Filter)
}

func TestRank_EmptyPool(t *testing.T) {
	ranker := NewRanker(newTestCalculator(t), staticRetriever())

	result, err := ranker.Rank(context.Background(), Request{Job: testJob(), TopK: 5})
	require.NoError(t, err)
	assert.Empty(t, result.Ranked)
	assert.Equal(t, 0, result.Considered)
}

func TestRank_RetrievalError(t *testing.T) {
	recorder := &countingRecorder{}
	retriever := &MockRetriever{
		SearchFunc: func(_ context.Context, _ SearchQuery) ([]Candidate, error) {
			return nil, errors.New("index unavailable")
		},
	}
	ranker := NewRanker(newTestCalculator(t), retriever, WithRecorder(recorder))

	_, err := ranker.Rank(context.Background(), Request{Job: testJob(), TopK: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to retrieve candidates")
	assert.Contains(t, err.Error(), "index unavailable")
	assert.Equal(t, 1, recorder.failures)
}

func TestRank_InvalidTopK(t *testing.T) {
	ranker := NewRanker(newTestCalculator(t), staticRetriever())

	_, err := ranker.Rank(context.Background(), Request{Job: testJob(), TopK: 0})
	assert.Error(t, err)
}

func TestRank_Cancelled(t *testing.T) {
	ranker := NewRanker(newTestCalculator(t), staticRetriever(strongCandidate()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ranker.Rank(ctx, Request{Job: testJob(), TopK: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRank_CancelledDuringScoring(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	retriever := &MockRetriever{
		SearchFunc: func(_ context.Context, _ SearchQuery) ([]Candidate, error) {
			// Cancel after retrieval succeeds
			cancel()
			return []Candidate{strongCandidate(), weakCandidate()}, nil
		},
	}
	ranker := NewRanker(newTestCalculator(t), retriever)

	_, err := ranker.Rank(ctx, Request{Job: testJob(), TopK: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
