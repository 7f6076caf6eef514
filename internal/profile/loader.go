package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/candidate-matcher/internal/schemas"
	"github.com/jonathan/candidate-matcher/internal/types"
)

var validate = validator.New()

// LoadCandidateProfile loads a candidate profile from a JSON file
func LoadCandidateProfile(path string) (types.CandidateProfile, error) {
	content, err := readFile(path)
	if err != nil {
		return types.CandidateProfile{}, err
	}
	return ParseCandidateProfile(content)
}

// ParseCandidateProfile validates raw JSON against the candidate schema, decodes it and
// normalizes list fields
func ParseCandidateProfile(data []byte) (types.CandidateProfile, error) {
	if err := schemas.ValidateCandidateProfile(data); err != nil {
		return types.CandidateProfile{}, &LoadError{Message: "candidate profile failed schema validation", Cause: err}
	}

	var p types.CandidateProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return types.CandidateProfile{}, &LoadError{Message: "failed to unmarshal candidate profile", Cause: err}
	}
	if err := validate.Struct(&p); err != nil {
		return types.CandidateProfile{}, &LoadError{Message: "invalid candidate profile", Cause: err}
	}

	NormalizeCandidateProfile(&p)
	return p, nil
}

// LoadJobProfile loads a job profile from a JSON file
func LoadJobProfile(path string) (types.JobProfile, error) {
	content, err := readFile(path)
	if err != nil {
		return types.JobProfile{}, err
	}
	return ParseJobProfile(content)
}

// ParseJobProfile validates raw JSON against the job schema, decodes it and normalizes list fields
func ParseJobProfile(data []byte) (types.JobProfile, error) {
	if err := schemas.ValidateJobProfile(data); err != nil {
		return types.JobProfile{}, &LoadError{Message: "job profile failed schema validation", Cause: err}
	}

	var j types.JobProfile
	if err := json.Unmarshal(data, &j); err != nil {
		return types.JobProfile{}, &LoadError{Message: "failed to unmarshal job profile", Cause: err}
	}
	if err := validate.Struct(&j); err != nil {
		return types.JobProfile{}, &LoadError{Message: "invalid job profile", Cause: err}
	}
	if j.MinExperienceYears != nil && j.MaxExperienceYears != nil && *j.MaxExperienceYears < *j.MinExperienceYears {
		return types.JobProfile{}, &LoadError{
			Message: fmt.Sprintf("max_experience_years (%d) is below min_experience_years (%d)",
				*j.MaxExperienceYears, *j.MinExperienceYears),
		}
	}

	NormalizeJobProfile(&j)
	return j, nil
}

func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return content, nil
}
