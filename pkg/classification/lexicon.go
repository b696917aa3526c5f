package classification

// Static keyword tables backing the rule-based classifiers and the derived
// ticket hints. The content mirrors what the support teams curated over time;
// changing a table changes classification behavior for every tenant.

// categoryKeywords maps each stock category to its indicator keywords.
// Multi-word entries match as substrings of the lowercased text.
var categoryKeywords = map[string][]string{
	"Technical Issue": {
		"error", "bug", "crash", "not working", "broken", "issue", "problem",
		"failed", "failure", "malfunction", "glitch", "freeze", "hang",
		"slow", "timeout", "connection",
	},
	"Billing": {
		"payment", "invoice", "bill", "charge", "refund", "subscription",
		"pricing", "cost", "fee", "credit card", "transaction", "receipt",
		"overcharge", "discount", "upgrade",
	},
	"Account Management": {
		"account", "login", "password", "access", "profile", "settings",
		"username", "authentication", "verification", "reset", "permissions",
		"two-factor", "sign in",
	},
	"Product Inquiry": {
		"how to", "feature", "what is", "explain", "information about",
		"does it", "can i", "is it possible", "functionality", "capability",
		"specification", "documentation",
	},
	"Feature Request": {
		"request", "add", "improve", "enhancement", "suggestion",
		"would like", "wish", "hoping", "could you add", "new feature",
		"implement", "integrate",
	},
	"Bug Report": {
		"bug", "error message", "wrong", "incorrect", "unexpected", "should",
		"supposed to", "reproducible", "steps to reproduce", "console error",
		"exception",
	},
	"General Support": {
		"help", "support", "question", "ask", "need", "assistance",
		"guidance", "advice", "recommend", "best practice",
	},
}

// priorityKeywords maps each priority bucket to its indicator keywords.
var priorityKeywords = map[Priority][]string{
	PriorityUrgent: {
		"urgent", "emergency", "critical", "immediately", "asap", "down",
		"not working", "broken", "crashed", "error", "can't access",
		"blocked", "security breach", "data loss", "system down", "outage",
		"production issue",
	},
	PriorityHigh: {
		"important", "soon", "high priority", "affecting multiple",
		"production", "customer facing", "revenue impact",
		"business critical", "major issue", "severe",
	},
	PriorityMedium: {
		"need help", "issue", "problem", "question", "not sure", "confused",
		"clarification", "assistance", "support needed", "help required",
	},
	PriorityLow: {
		"when possible", "future", "enhancement", "suggestion", "feedback",
		"nice to have", "eventually", "minor", "cosmetic", "improvement",
	},
}

// tagKeywords maps a topic tag to the keywords that hint at it.
var tagKeywords = map[string][]string{
	"api":            {"api", "endpoint", "integration", "webhook", "rest", "graphql"},
	"database":       {"database", "sql", "query", "table", "migration"},
	"authentication": {"login", "password", "auth", "token", "oauth"},
	"payment":        {"payment", "billing", "charge", "invoice", "stripe", "paypal"},
	"ui":             {"interface", "ui", "display", "screen", "button", "layout"},
	"performance":    {"slow", "performance", "speed", "latency", "timeout"},
	"security":       {"security", "breach", "hack", "vulnerability", "ssl", "encryption"},
	"mobile":         {"mobile", "ios", "android", "app", "smartphone"},
	"email":          {"email", "smtp", "bounce", "delivery", "notification"},
	"reporting":      {"report", "analytics", "dashboard", "chart", "export"},
}

// maxTags caps how many topic tags a ticket gets.
const maxTags = 5

type resolutionKey struct {
	Priority Priority
	Category string
}

// resolutionMatrix maps (priority, category) to an ETA label. Missing pairs
// fall through to defaultResolutionTime.
var resolutionMatrix = map[resolutionKey]string{
	{PriorityUrgent, "Technical Issue"}:    "2-4 hours",
	{PriorityUrgent, "Billing"}:            "1-2 hours",
	{PriorityUrgent, "Account Management"}: "1-2 hours",
	{PriorityHigh, "Technical Issue"}:      "4-8 hours",
	{PriorityHigh, "Billing"}:              "2-4 hours",
	{PriorityHigh, "Account Management"}:   "2-4 hours",
	{PriorityMedium, "Technical Issue"}:    "1-2 business days",
	{PriorityMedium, "Billing"}:            "4-8 hours",
	{PriorityMedium, "Account Management"}: "4-8 hours",
	{PriorityLow, "Technical Issue"}:       "3-5 business days",
	{PriorityLow, "Billing"}:               "1-2 business days",
	{PriorityLow, "Account Management"}:    "1-2 business days",
}

const defaultResolutionTime = "2-3 business days"

// teamByCategory maps a category to the internal team key that owns it.
var teamByCategory = map[string]string{
	"Technical Issue":    "technical",
	"Bug Report":         "technical",
	"Billing":            "billing",
	"Account Management": "support",
	"Product Inquiry":    "support",
	"Feature Request":    "product",
	"General Support":    "general",
}

const defaultTeam = "general"
