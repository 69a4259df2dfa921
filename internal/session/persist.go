package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"compliance-bot/internal/report"
)

const stateFile = "state.json"

// PersistedState is the minimal cross-process record of the current
// cycle, so export/reset/status work after the intake process exits.
type PersistedState struct {
	IntakeID     string        `json:"intake_id"`
	Mode         Mode          `json:"mode"`
	Timestamp    string        `json:"timestamp"`
	Answered     int           `json:"answered"`
	Total        int           `json:"total"`
	ReportStatus report.Status `json:"report_status"`
	ReportFile   string        `json:"report_file,omitempty"`
}

// SaveState writes the state record under the output directory.
func SaveState(dir string, st *PersistedState) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory %s: %w", dir, err)
	}

	jsonData, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializing state: %w", err)
	}

	path := filepath.Join(dir, stateFile)
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("error writing state file %s: %w", path, err)
	}
	return nil
}

// LoadState reads the state record back.
func LoadState(dir string) (*PersistedState, error) {
	path := filepath.Join(dir, stateFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading state file %s: %w", path, err)
	}

	var st PersistedState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("error parsing state file: %w", err)
	}
	return &st, nil
}

// ClearState removes the state record, if present.
func ClearState(dir string) error {
	err := os.Remove(filepath.Join(dir, stateFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing state file: %w", err)
	}
	return nil
}
