// Package schemas embeds the JSON Schemas describing the profiles accepted at the boundary.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names
const (
	CandidateProfile = "candidate_profile.schema.json"
	JobProfile       = "job_profile.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the content of an embedded schema
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded schema %s: %w", name, err)
	}
	return string(data), nil
}

// Names lists the embedded schema files
func Names() []string {
	return []string{CandidateProfile, JobProfile}
}
