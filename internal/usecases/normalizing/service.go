package normalizing

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oddsdesk/bet-metrics-api/internal/domain"
)

// eventKeywords identify the sentence naming the affected event or market
// in an unstructured note.
var eventKeywords = []string{"vs", "v ", "against", "match", "game"}

// actionKeywords identify action-taken sentences. Assignment is
// unconditional per matching sentence, so the last match wins.
var actionKeywords = []string{"void", "palp", "resettle", "unsettle", "cancel", "reprice"}

var (
	sentenceSplit = regexp.MustCompile(`[.!]\s+`)
	pleaseWord    = regexp.MustCompile(`(?i)\bplease\b`)
)

// Normalizer turns free-form trader-error notes into one canonical
// incident sentence.
type Normalizer interface {
	Normalize(text string) string
}

type Service struct{}

// NewService creates the normalizer. Pure function service: the same note
// always yields the same sentence.
func NewService() Normalizer {
	return &Service{}
}

// Normalize parses the note (structured when section headers are present,
// keyword-driven otherwise) and assembles the event/cause/action parts into
// one sentence.
func (s *Service) Normalize(text string) string {
	var desc domain.IncidentDescription
	if hasSectionHeaders(text) {
		desc = parseStructured(text)
	} else {
		desc = parseUnstructured(text)
	}

	sentence := assemble(desc)

	logrus.WithFields(logrus.Fields{
		"structured": hasSectionHeaders(text),
		"length":     len(sentence),
	}).Debug("normalizing: incident note normalized")

	return sentence
}

// parseUnstructured splits prose into sentences and assigns them by
// keyword: the first event-keyword sentence becomes the event/market part,
// action-keyword sentences become the action, everything else joins into
// the cause.
func parseUnstructured(text string) domain.IncidentDescription {
	var desc domain.IncidentDescription
	var causes []string

	for _, sentence := range sentenceSplit.Split(strings.TrimSpace(text), -1) {
		sentence = strings.TrimSpace(strings.TrimRight(sentence, ".!"))
		if sentence == "" {
			continue
		}

		assigned := false
		lowered := strings.ToLower(sentence)

		if len(desc.EventMarket) == 0 && containsAny(lowered, eventKeywords) {
			desc.EventMarket = []string{sentence}
			assigned = true
		}

		if containsAny(lowered, actionKeywords) {
			desc.Action = sentence
			assigned = true
		}

		if !assigned {
			causes = append(causes, sentence)
		}
	}

	desc.Cause = strings.Join(causes, ". ")
	return desc
}

// assemble renders the three parts into the final sentence: event lines
// joined " - ", action run through the past-tense rewriter, stray "please"
// stripped and each sentence fragment re-capitalized.
func assemble(desc domain.IncidentDescription) string {
	var parts []string

	if len(desc.EventMarket) > 0 {
		event := strings.Join(desc.EventMarket, " - ")
		parts = append(parts, ensureTerminalPunctuation(event))
	}

	if cause := strings.TrimSpace(desc.Cause); cause != "" {
		parts = append(parts, ensureTerminalPunctuation(cause))
	}

	if action := strings.TrimSpace(desc.Action); action != "" {
		parts = append(parts, toPastTense(action))
	}

	sentence := strings.Join(parts, " ")
	sentence = pleaseWord.ReplaceAllString(sentence, "")
	sentence = collapseWhitespace(sentence)
	return capitalizeSentences(sentence)
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
