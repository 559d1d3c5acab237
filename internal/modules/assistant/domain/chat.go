package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "lockedin/internal/platform/errors"
)

const (
	MaxMessageLen = 2000
	MaxSessions   = 10
)

type GoalSummary struct {
	Title    string
	Progress int
	Status   string
}

type SessionSummary struct {
	Date     string
	Duration float64
}

// ValidateMessage checks the raw message before it is sent or sanitized.
func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return apperrors.Invalid("message is required")
	}
	if n := utf8.RuneCountInString(message); n > MaxMessageLen {
		return apperrors.Invalid("message is %d characters, max %d", n, MaxMessageLen)
	}
	return nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>?`)

// Sanitize trims the message and strips markup and code fences.
func Sanitize(message string) string {
	out := strings.TrimSpace(message)
	out = tagPattern.ReplaceAllString(out, "")
	return strings.ReplaceAll(out, "```", "")
}

func BuildPrompt(goals []GoalSummary, sessions []SessionSummary, question string) string {
	var goalLines []string
	for _, g := range goals {
		status := g.Status
		if status == "" {
			status = "active"
		}
		goalLines = append(goalLines, fmt.Sprintf("- %s: %d%% (%s)", g.Title, g.Progress, status))
	}
	if len(sessions) > MaxSessions {
		sessions = sessions[:MaxSessions]
	}
	var sessionLines []string
	for _, s := range sessions {
		sessionLines = append(sessionLines, fmt.Sprintf("- %s: %g minutes", s.Date, s.Duration))
	}
	activity := strings.Join(sessionLines, "\n")
	if activity == "" {
		activity = "- No recent activity"
	}

	var b strings.Builder
	b.WriteString("You are a productivity coach helping users optimize their goals.\n\n")
	b.WriteString("CURRENT GOALS:\n")
	b.WriteString(strings.Join(goalLines, "\n"))
	b.WriteString("\n\nRECENT ACTIVITY (Last 7 days):\n")
	b.WriteString(activity)
	b.WriteString("\n\nUSER QUESTION:\n")
	b.WriteString(question)
	b.WriteString("\n\nProvide specific, actionable advice based on their data. Be concise (max 3 paragraphs).")
	return b.String()
}
