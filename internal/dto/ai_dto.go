package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AnalyzeResponse wraps the AI result together with the caller's remaining
// quota so clients can render the counter without a second round trip.
type AnalyzeResponse struct {
	Result json.RawMessage `json:"result"`
	Quota  *QuotaStatus    `json:"quota"`
}

type WasteItem struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Recyclable  bool   `json:"recyclable"`
	Instruction string `json:"instruction"`
}

type IdentifyResult struct {
	Items   []WasteItem `json:"items"`
	Summary string      `json:"summary"`
}

type AnalysisResponse struct {
	Id        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	ImageURL  string          `json:"image_url"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}
