package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AnalysisKind string

const (
	AnalysisKindIdentify   AnalysisKind = "identify"
	AnalysisKindDiy        AnalysisKind = "diy"
	AnalysisKindVegetarian AnalysisKind = "vegetarian"
	AnalysisKindCalories   AnalysisKind = "calories"
)

// Analysis stores the structured result of one AI call. UserId is nil for
// guest callers.
type Analysis struct {
	Id        uuid.UUID
	UserId    *uuid.UUID
	Kind      AnalysisKind
	ImageURL  string
	Result    json.RawMessage
	CreatedAt time.Time
}
