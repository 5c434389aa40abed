package normalizing

import (
	"strings"

	"github.com/oddsdesk/bet-metrics-api/internal/domain"
)

// sectionKind tags which part of the incident note a line belongs to.
type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionEvent
	sectionCause
	sectionAction
)

// Header phrase groups. A line opens a section when it starts with one of
// these, case-insensitive. Longer phrases come first so "action taken"
// beats "action".
var sectionHeaders = []struct {
	kind     sectionKind
	prefixes []string
}{
	{sectionEvent, []string{"event/market affected", "affected event/market", "event affected", "market affected", "affected market", "event/market"}},
	{sectionCause, []string{"root cause", "what happened", "cause", "reason"}},
	{sectionAction, []string{"actions taken", "action taken", "resolution", "action"}},
}

// detectionPhrases decide structured vs. unstructured mode. Matching is a
// plain case-insensitive substring check over the raw text.
var detectionPhrases = []string{
	"event/market affected", "affected event/market", "event affected",
	"market affected", "affected market",
	"root cause", "cause:", "reason:", "what happened",
	"actions taken", "action taken", "action:", "resolution:",
}

func hasSectionHeaders(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range detectionPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// sectionParser is the explicit state for the structured-mode line scan:
// the open section plus the accumulated buffer per section.
type sectionParser struct {
	current sectionKind
	buffers map[sectionKind][]string
}

func newSectionParser() *sectionParser {
	return &sectionParser{
		current: sectionNone,
		buffers: make(map[sectionKind][]string),
	}
}

// feed advances the state by one line. A header line opens its section; any
// trailing text on the header line becomes the first buffered entry. Other
// lines accumulate into the open section with bullet markers stripped.
func (p *sectionParser) feed(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	if kind, remainder, ok := matchHeader(trimmed); ok {
		p.current = kind
		if remainder != "" {
			p.buffers[kind] = append(p.buffers[kind], remainder)
		}
		return
	}

	if p.current == sectionNone {
		return
	}

	p.buffers[p.current] = append(p.buffers[p.current], stripBullet(trimmed))
}

// description closes all sections. Event lines join into one " - " list;
// cause and action keep only their first buffered line.
func (p *sectionParser) description() domain.IncidentDescription {
	desc := domain.IncidentDescription{
		EventMarket: p.buffers[sectionEvent],
	}
	if lines := p.buffers[sectionCause]; len(lines) > 0 {
		desc.Cause = lines[0]
	}
	if lines := p.buffers[sectionAction]; len(lines) > 0 {
		desc.Action = lines[0]
	}
	return desc
}

// matchHeader tests a line against the header phrase groups by prefix and
// returns the section it opens plus any text following the header.
func matchHeader(line string) (sectionKind, string, bool) {
	lowered := strings.ToLower(line)
	for _, group := range sectionHeaders {
		for _, prefix := range group.prefixes {
			if !strings.HasPrefix(lowered, prefix) {
				continue
			}
			// Word boundary: "caused by ..." must not open the cause section.
			if len(lowered) > len(prefix) && isLetter(lowered[len(prefix)]) {
				continue
			}
			remainder := strings.TrimSpace(line[len(prefix):])
			remainder = strings.TrimSpace(strings.TrimLeft(remainder, ":-–"))
			return group.kind, remainder, true
		}
	}
	return sectionNone, "", false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "-•\t "))
}

// parseStructured runs the section state machine over the note's lines.
func parseStructured(text string) domain.IncidentDescription {
	parser := newSectionParser()
	for _, line := range strings.Split(text, "\n") {
		parser.feed(line)
	}
	return parser.description()
}
