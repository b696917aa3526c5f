package sentiment

import (
	"strings"

	"github.com/ticketmind/ticketmind/pkg/config"
	"github.com/ticketmind/ticketmind/pkg/observability/metrics"
)

// EscalationPolicy decides whether a conversation should be handed to a
// human agent. It is a stateless check over a conversation summary, not a
// state machine.
type EscalationPolicy struct {
	cfg config.EscalationConfig
}

// NewEscalationPolicy creates the policy from configuration.
func NewEscalationPolicy(cfg config.EscalationConfig) *EscalationPolicy {
	return &EscalationPolicy{cfg: cfg}
}

// Evaluate returns whether to escalate and the first matching reason.
// Conditions, in order: strongly negative overall sentiment, conversation
// length over the limit, an escalation keyword in the recent messages.
func (p *EscalationPolicy) Evaluate(summary ConversationSummary, messageCount int, recentMessages []string) (bool, string) {
	escalate, reason := p.evaluate(summary, messageCount, recentMessages)
	metrics.RecordEscalationCheck(escalate)
	return escalate, reason
}

func (p *EscalationPolicy) evaluate(summary ConversationSummary, messageCount int, recentMessages []string) (bool, string) {
	if summary.OverallLabel == LabelNegative && summary.AverageScore < p.cfg.ScoreThreshold {
		return true, "Negative sentiment detected"
	}

	if messageCount > p.cfg.MaxMessages {
		return true, "Extended conversation"
	}

	window := recentMessages
	if len(window) > p.cfg.RecentWindow {
		window = window[len(window)-p.cfg.RecentWindow:]
	}
	for _, message := range window {
		lower := strings.ToLower(message)
		for _, keyword := range p.cfg.Keywords {
			if strings.Contains(lower, keyword) {
				return true, "Customer requested human agent"
			}
		}
	}

	return false, ""
}
