package extract

import (
	"strings"

	"github.com/jonathan/resume-intel/internal/types"
)

// Signals collects the structural facts the quality scorer needs. entries are
// the accepted experience entries and discarded counts the rejected ones.
func Signals(doc *types.Document, entries []types.ExperienceEntry, discarded int) types.StructuralSignals {
	sig := types.StructuralSignals{
		SectionOrder:     []string{},
		NonEmptySections: []string{},
		Entries:          entries,
		DiscardedEntries: discarded,
	}
	if doc == nil {
		return sig
	}

	order := doc.Order
	if len(order) == 0 {
		order = sortedKeys(doc.Sections)
	}
	for _, name := range order {
		if !IsRecognized(name) {
			continue
		}
		sig.SectionOrder = appendUnique(sig.SectionOrder, name)
		if strings.TrimSpace(doc.Sections[name]) != "" {
			sig.NonEmptySections = appendUnique(sig.NonEmptySections, name)
		}
	}

	contact := FindContact(doc.RawText)
	sig.HasEmail = contact.Email != ""
	sig.HasPhone = contact.Phone != ""
	sig.HasLinks = len(contact.Links) > 0
	sig.WordCount = len(strings.Fields(doc.RawText))
	sig.RawText = doc.RawText

	return sig
}
