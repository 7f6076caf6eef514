// Package retrieval provides the nearest-neighbour candidate index used by the ranker.
package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	chromem "github.com/philippgille/chromem-go"

	"github.com/jonathan/candidate-matcher/internal/ranking"
	"github.com/jonathan/candidate-matcher/internal/types"
)

const (
	// DefaultCollection is used when StoreConfig.Collection is empty
	DefaultCollection = "candidates"

	metadataProfile = "profile"
	metadataName    = "name"
	persistDirName  = "chromem"
)

// ErrEmbeddingRequired is returned when a document arrives without a precomputed embedding
var ErrEmbeddingRequired = errors.New("embedding is required; embeddings are computed upstream")

// StoreConfig holds vector store configuration
type StoreConfig struct {
	PersistPath string // Directory to persist data; empty keeps the index in memory
	Collection  string // Collection name
}

// CandidateDocument is one indexed candidate: CV text, structured profile and CV embedding
type CandidateDocument struct {
	ID        string                 `json:"id"`
	CVText    string                 `json:"cv_text"`
	Profile   types.CandidateProfile `json:"profile"`
	Embedding []float32              `json:"embedding"`
}

// Store is a chromem-go backed candidate index. It implements ranking.Retriever.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
}

var _ ranking.Retriever = (*Store)(nil)

// NewStore opens (or creates) the candidate collection
func NewStore(config StoreConfig) (*Store, error) {
	if config.Collection == "" {
		config.Collection = DefaultCollection
	}

	var db *chromem.DB
	if config.PersistPath != "" {
		var err error
		db, err = chromem.NewPersistentDB(filepath.Join(config.PersistPath, persistDirName), false)
		if err != nil {
			return nil, fmt.Errorf("failed to create persistent index: %w", err)
		}
	} else {
		db = chromem.NewDB()
	}

	// Embeddings are never generated here
	embeddingFunc := func(_ context.Context, _ string) ([]float32, error) {
		return nil, ErrEmbeddingRequired
	}

	collection, err := db.GetOrCreateCollection(config.Collection, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return &Store{db: db, collection: collection}, nil
}

// Index adds or replaces candidate documents
func (s *Store) Index(ctx context.Context, docs []CandidateDocument) error {
	for _, doc := range docs {
		if doc.ID == "" {
			return errors.New("candidate document without id")
		}
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("candidate %s: %w", doc.ID, ErrEmbeddingRequired)
		}

		profileJSON, err := json.Marshal(doc.Profile)
		if err != nil {
			return fmt.Errorf("failed to encode profile of candidate %s: %w", doc.ID, err)
		}

		err = s.collection.AddDocument(ctx, chromem.Document{
			ID:        doc.ID,
			Content:   doc.CVText,
			Embedding: doc.Embedding,
			Metadata: map[string]string{
				metadataProfile: string(profileJSON),
				metadataName:    doc.Profile.Name,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to index candidate %s: %w", doc.ID, err)
		}
	}
	return nil
}

// Search returns up to query.Limit candidates ordered by cosine similarity, dropping those
// below query.MinSimilarity. Similarities are clamped into [0,1]. With query.Filter set the
// whole collection is scanned in similarity order so the limit counts only passing candidates.
func (s *Store) Search(ctx context.Context, query ranking.SearchQuery) ([]ranking.Candidate, error) {
	if len(query.Embedding) == 0 {
		return nil, fmt.Errorf("search: %w", ErrEmbeddingRequired)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := s.collection.Count()
	n := min(query.Limit, total)
	if query.Filter != nil {
		n = total
	}
	if n <= 0 || query.Limit <= 0 {
		return []ranking.Candidate{}, nil
	}

	results, err := s.collection.QueryEmbedding(ctx, query.Embedding, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}

	candidates := make([]ranking.Candidate, 0, min(len(results), query.Limit))
	for _, r := range results {
		if len(candidates) == query.Limit {
			break
		}
		similarity := min(max(float64(r.Similarity), 0), 1)
		if similarity < query.MinSimilarity {
			// results are sorted by descending similarity
			break
		}

		profile, err := decodeProfile(r)
		if err != nil {
			return nil, err
		}
		if query.Filter != nil && !query.Filter(profile) {
			continue
		}

		candidates = append(candidates, ranking.Candidate{
			ID:         r.ID,
			Similarity: similarity,
			CVText:     r.Content,
			Profile:    profile,
		})
	}
	return candidates, nil
}

func decodeProfile(r chromem.Result) (types.CandidateProfile, error) {
	var profile types.CandidateProfile
	if raw := r.Metadata[metadataProfile]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &profile); err != nil {
			return profile, fmt.Errorf("failed to decode profile of candidate %s: %w", r.ID, err)
		}
	}
	if profile.ID == "" {
		profile.ID = r.ID
	}
	return profile, nil
}

// Count returns the number of indexed candidates
func (s *Store) Count() int {
	return s.collection.Count()
}

// Delete removes candidates by ID
func (s *Store) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.collection.Delete(ctx, nil, nil, ids...); err != nil {
		return fmt.Errorf("failed to delete candidates: %w", err)
	}
	return nil
}
