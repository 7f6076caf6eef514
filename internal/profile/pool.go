package profile

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Pool is a batch of pre-embedded candidates plus, optionally, the job's embedding
type Pool struct {
	JobEmbedding []float32
	Candidates   []PoolCandidate
}

// PoolCandidate is one candidate with its CV text and precomputed CV embedding
type PoolCandidate struct {
	ID        string
	CVText    string
	Profile   types.CandidateProfile
	Embedding []float32
}

type rawPool struct {
	JobEmbedding []float32          `json:"job_embedding,omitempty"`
	Candidates   []rawPoolCandidate `json:"candidates" validate:"dive"`
}

type rawPoolCandidate struct {
	ID        string          `json:"id" validate:"required"`
	CVText    string          `json:"cv_text"`
	Profile   json.RawMessage `json:"profile"`
	Embedding []float32       `json:"embedding" validate:"required,min=1"`
}

// LoadCandidatePool loads a candidate pool file. Every candidate profile is validated
// against the candidate schema.
func LoadCandidatePool(path string) (*Pool, error) {
	content, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCandidatePool(content)
}

// ParseCandidatePool decodes and validates a candidate pool document
func ParseCandidatePool(data []byte) (*Pool, error) {
	var raw rawPool
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal candidate pool", Cause: err}
	}
	if err := validate.Struct(&raw); err != nil {
		return nil, &LoadError{Message: "invalid candidate pool", Cause: err}
	}

	pool := &Pool{
		JobEmbedding: raw.JobEmbedding,
		Candidates:   make([]PoolCandidate, 0, len(raw.Candidates)),
	}
	seen := make(map[string]bool, len(raw.Candidates))
	for i, c := range raw.Candidates {
		if seen[c.ID] {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate candidate id %q", c.ID)}
		}
		seen[c.ID] = true

		profileJSON := c.Profile
		if len(profileJSON) == 0 || string(profileJSON) == "null" {
			profileJSON = json.RawMessage("{}")
		}
		p, err := ParseCandidateProfile(profileJSON)
		if err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("candidate %d (%s)", i, c.ID), Cause: err}
		}
		if p.ID == "" {
			p.ID = c.ID
		}

		pool.Candidates = append(pool.Candidates, PoolCandidate{
			ID:        c.ID,
			CVText:    c.CVText,
			Profile:   p,
			Embedding: c.Embedding,
		})
	}
	return pool, nil
}
