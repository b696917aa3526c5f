package classification

import (
	"github.com/ticketmind/ticketmind/pkg/observability/logging"
)

// Method identifies which classifier produced a prediction.
type Method string

const (
	MethodRules       Method = "rules"
	MethodStatistical Method = "statistical"
	MethodZeroShot    Method = "zero_shot"
	MethodEnsemble    Method = "ensemble"
)

// Priority is a ticket priority bucket.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// priorityOrder fixes iteration order over the buckets.
var priorityOrder = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// CategoryScore is one (category, confidence) entry of a ranking.
type CategoryScore struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// CategoryPrediction is the result of category classification. It is a value
// object: created per request from immutable classifier state and never
// mutated afterwards.
type CategoryPrediction struct {
	Category      string          `json:"category"`
	Confidence    float64         `json:"confidence"`
	Method        Method          `json:"method"`
	TopCategories []CategoryScore `json:"top_categories"`
}

// PriorityPrediction is the result of priority scoring.
type PriorityPrediction struct {
	Priority   Priority         `json:"priority"`
	Confidence float64          `json:"confidence"`
	RawScores  map[Priority]int `json:"raw_scores"`
}

// TicketClassification is the full classification returned to callers.
type TicketClassification struct {
	RequestID               string          `json:"request_id"`
	Category                string          `json:"category"`
	CategoryConfidence      float64         `json:"category_confidence"`
	Priority                Priority        `json:"priority"`
	PriorityConfidence      float64         `json:"priority_confidence"`
	Tags                    []string        `json:"tags"`
	EstimatedResolutionTime string          `json:"estimated_resolution_time"`
	SuggestedTeam           string          `json:"suggested_team"`
	TopCategories           []CategoryScore `json:"top_categories"`
	Method                  Method          `json:"classification_method"`
}

// CustomerTier is the recognized customer tier set.
type CustomerTier string

const (
	TierStandard CustomerTier = "standard"
	TierPremium  CustomerTier = "premium"
	TierVIP      CustomerTier = "vip"
)

// TicketMetadata is the typed view of the free-form metadata attached to a
// ticket. Only the keys below influence priority scoring.
type TicketMetadata struct {
	CustomerTier        CustomerTier `json:"customer_tier,omitempty"`
	PreviousEscalations int          `json:"previous_escalations,omitempty"`
	SLAHours            *float64     `json:"sla_hours,omitempty"`
}

// MetadataFromMap converts caller-supplied metadata into the typed form.
// Unrecognized keys are ignored and logged rather than silently dropped.
func MetadataFromMap(raw map[string]interface{}) TicketMetadata {
	var md TicketMetadata
	for key, value := range raw {
		switch key {
		case "customer_tier":
			if s, ok := value.(string); ok {
				switch CustomerTier(s) {
				case TierStandard, TierPremium, TierVIP:
					md.CustomerTier = CustomerTier(s)
				default:
					logging.Warnf("Unrecognized customer_tier %q in ticket metadata, ignoring", s)
				}
			}
		case "previous_escalations":
			if n, ok := toInt(value); ok {
				md.PreviousEscalations = n
			}
		case "sla_hours":
			if f, ok := toFloat(value); ok {
				md.SLAHours = &f
			}
		default:
			logging.Warnf("Unrecognized ticket metadata key %q, ignoring", key)
		}
	}
	return md
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
