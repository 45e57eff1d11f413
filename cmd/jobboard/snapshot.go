package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/types"
)

// readSnapshot validates path against the schema for kind and decodes it
// into v. Schema violations are fatal; schema load problems are not.
func readSnapshot(kind schemas.Kind, path string, v any, warn io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s file %s: %w", kind, path, err)
	}

	if err := schemas.Validate(kind, data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%s file %s is invalid: %w", kind, path, err)
		}
		_, _ = fmt.Fprintf(warn, "Warning: Could not validate %s against schema: %v\n", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s JSON: %w", kind, err)
	}
	return nil
}

func loadCandidate(path string, warn io.Writer) (*types.CandidateProfile, error) {
	var c types.CandidateProfile
	if err := readSnapshot(schemas.KindCandidate, path, &c, warn); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func loadJobs(path string, warn io.Writer) ([]types.JobPosting, error) {
	var jobs []types.JobPosting
	if err := readSnapshot(schemas.KindJobs, path, &jobs, warn); err != nil {
		return nil, err
	}
	for i := range jobs {
		if err := jobs[i].Validate(); err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
	}
	return jobs, nil
}

func loadApplications(path string, warn io.Writer) ([]types.ApplicationRecord, error) {
	var apps []types.ApplicationRecord
	if err := readSnapshot(schemas.KindApplications, path, &apps, warn); err != nil {
		return nil, err
	}
	for i := range apps {
		if err := apps[i].Validate(); err != nil {
			return nil, fmt.Errorf("application %d: %w", i, err)
		}
	}
	return apps, nil
}

// writeOutput writes v as indented JSON to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if path == "" {
		_, err := fmt.Fprintln(stdout, string(data))
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	_, _ = fmt.Fprintf(stdout, "Successfully wrote %s\n", path)
	return nil
}
