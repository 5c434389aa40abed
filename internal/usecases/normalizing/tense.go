package normalizing

import (
	"regexp"
	"strings"
)

// pastParticiples maps the trading-desk verbs to their past-participle
// forms, as used in every rewrite branch below.
var pastParticiples = map[string]string{
	"void":      "voided",
	"palp":      "palped",
	"settle":    "settled",
	"resettle":  "resettled",
	"unsettle":  "unsettled",
	"re-price":  "re-priced",
	"reprice":   "repriced",
	"cancel":    "cancelled",
	"action":    "actioned",
}

// verbPrefixes are tried longest-first against the start of an action
// phrase; the matched prefix is rewritten to past tense and the remainder
// kept as-is.
var verbPrefixes = []struct {
	prefix  string
	rewrite string
}{
	{"void bets", "Voided bets"},
	{"void bet", "Voided bet"},
	{"void all", "Voided all"},
	{"void", "Voided"},
	{"action account", "Actioned account"},
	{"action", "Actioned"},
	{"resettle", "Resettled"},
	{"unsettle", "Unsettled"},
	{"settle", "Settled"},
	{"re-price", "Re-priced"},
	{"reprice", "Repriced"},
	{"cancel", "Cancelled"},
	{"palp", "Palped"},
}

// politePhrases are request framings stripped before any verb rewriting.
var politePhrases = []string{
	"please can we", "please could we", "please can you", "please could you",
	"can we", "could we", "can you", "could you",
	"would it be possible to", "is it possible to", "if possible",
	"please",
}

// segmentFramings are lead-ins stripped from each segment of a compound
// slash-joined action ("bet was void/re-priced").
var segmentFramings = []string{"bets were", "bet was", "bets are", "bet is", "were", "was", "the bets", "the bet", "bets", "bet", "the"}

var (
	allBePattern     = regexp.MustCompile(`(?i)\ball\s+(.+?)\s+be\s+([a-zA-Z-]+)`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	thereArePattern  = regexp.MustCompile(`(?i)\bthere are\b`)
	sentenceBoundary = regexp.MustCompile(`([.!?]\s+)([a-z])`)
)

// toPastTense rewrites a raw action phrase ("can we void these bets") into
// the past-tense incident form ("Voided these bets."). Rules are tried in a
// fixed priority order; the first structural match wins and the cosmetic
// steps always run last.
func toPastTense(action string) string {
	text := stripPoliteness(action)

	switch {
	case allBePattern.MatchString(text):
		m := allBePattern.FindStringSubmatch(text)
		text = "All " + m[1] + " have been " + pastForm(m[2])
	case strings.Contains(text, "/"):
		text = rewriteCompound(text)
	default:
		text = rewritePrefix(text)
	}

	text = thereArePattern.ReplaceAllString(text, "There was")
	text = collapseWhitespace(text)
	text = ensureTerminalPunctuation(text)
	return capitalizeFirst(text)
}

// stripPoliteness removes request/question framing and the question mark.
func stripPoliteness(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimSuffix(cleaned, "?")

	for _, phrase := range politePhrases {
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	return strings.TrimSpace(collapseWhitespace(cleaned))
}

// pastForm returns the participle for a known verb, or the word unchanged
// when it is already past tense or unknown.
func pastForm(verb string) string {
	if past, ok := pastParticiples[strings.ToLower(verb)]; ok {
		return past
	}
	return verb
}

// rewriteCompound handles slash-joined actions: each segment maps through
// the participle table (capitalized), unknown segments are just capitalized.
func rewriteCompound(text string) string {
	segments := strings.Split(text, "/")
	rewritten := make([]string, 0, len(segments))

	for _, segment := range segments {
		segment = stripSegmentFraming(strings.TrimSpace(segment))
		if past, ok := pastParticiples[strings.ToLower(segment)]; ok {
			rewritten = append(rewritten, capitalizeFirst(past))
		} else {
			rewritten = append(rewritten, capitalizeFirst(segment))
		}
	}

	return strings.Join(rewritten, "/")
}

func stripSegmentFraming(segment string) string {
	for {
		lowered := strings.ToLower(segment)
		stripped := false
		for _, framing := range segmentFramings {
			if strings.HasPrefix(lowered, framing+" ") {
				segment = strings.TrimSpace(segment[len(framing)+1:])
				stripped = true
				break
			}
		}
		if !stripped {
			return segment
		}
	}
}

// rewritePrefix rewrites a recognized leading verb to past tense and keeps
// the rest of the phrase.
func rewritePrefix(text string) string {
	lowered := strings.ToLower(text)
	for _, rule := range verbPrefixes {
		if !strings.HasPrefix(lowered, rule.prefix) {
			continue
		}
		if len(lowered) > len(rule.prefix) && isLetter(lowered[len(rule.prefix)]) {
			continue
		}
		return rule.rewrite + text[len(rule.prefix):]
	}
	return text
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

func ensureTerminalPunctuation(text string) string {
	if text == "" {
		return text
	}
	if strings.HasSuffix(text, ".") || strings.HasSuffix(text, "!") || strings.HasSuffix(text, "?") {
		return text
	}
	return text + "."
}

func capitalizeFirst(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

// capitalizeSentences uppercases the first letter of every period-delimited
// fragment in the assembled output.
func capitalizeSentences(text string) string {
	text = capitalizeFirst(text)
	return sentenceBoundary.ReplaceAllStringFunc(text, strings.ToUpper)
}
