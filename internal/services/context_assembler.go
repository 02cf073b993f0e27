package services

import (
	"fmt"
	"strings"

	"github.com/yungbote/elderbridge-backend/internal/logger"
)

// Context size caps. The values come from the source system; they are cost
// trade-offs, not token-budget-derived, and truncation is a hard rune cut.
const (
	perDocumentExcerptLimit = 3000
	askContextLimit         = 16000
	quizContextLimit        = 12000
	linkContextLimit        = 8000
)

// ContextAssembler merges stored texts for a scope into one prompt context.
type ContextAssembler interface {
	// Assemble returns the merged context for (userID, elderID). When
	// filename is non-empty only that file is used (first hit across text
	// categories in priority order); a miss yields an empty context, which
	// downstream treats as general-knowledge mode.
	Assemble(userID, elderID, filename string) string
}

type contextAssembler struct {
	log   *logger.Logger
	store DocumentStore
}

func NewContextAssembler(log *logger.Logger, store DocumentStore) ContextAssembler {
	return &contextAssembler{log: log.With("service", "ContextAssembler"), store: store}
}

func (ca *contextAssembler) Assemble(userID, elderID, filename string) string {
	var merged strings.Builder

	if filename != "" {
		entry, ok := ca.store.FindText(ScopeKey{UserID: userID, ElderID: elderID, Filename: filename})
		if ok {
			merged.WriteString(entry.Text)
		}
	} else {
		for _, entry := range ca.store.TextEntries(userID, elderID) {
			fmt.Fprintf(&merged, "[%s - %s]\n%s\n\n",
				strings.ToUpper(string(entry.Category)),
				entry.Filename,
				TruncateRunes(entry.Text, perDocumentExcerptLimit),
			)
		}
	}

	// Media is referenced by name only, never inlined.
	media := ca.store.MediaEntries(userID, elderID)
	if len(media) > 0 {
		merged.WriteString("\nUploaded media:\n")
		for _, m := range media {
			fmt.Fprintf(&merged, "- %s\n", m.Filename)
		}
	}

	return merged.String()
}

// TruncateRunes cuts s to at most limit runes. Not sentence-aware on purpose.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
