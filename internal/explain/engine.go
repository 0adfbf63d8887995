package explain

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"shieldmail/internal/models"
)

const maxTokenImpacts = 15

// ExplanationProvider produces per-word attributions for an
// already-computed classification. Implementations must be deterministic:
// identical (text, isSpam, spamProbability) inputs yield bit-identical
// output, including ordering.
type ExplanationProvider interface {
	TokenImpacts(text string, isSpam bool, spamProbability float64) []models.TokenImpact
	WordHeatmap(text string, isSpam bool, spamProbability float64) []models.HeatmapUnit
}

// HeuristicEngine is the hash-based provider. It manufactures a
// plausible-looking, reproducible attribution from the classification
// output alone — not a gradient or SHAP value. Stateless and safe for
// concurrent use.
type HeuristicEngine struct{}

func NewHeuristicEngine() *HeuristicEngine {
	return &HeuristicEngine{}
}

// TokenImpacts returns up to 15 distinct tokens ranked by |impact|
// descending. Positive impact pushes toward spam, negative toward
// legitimate. The prediction's own confidence is fed back in, so
// high-confidence classifications yield mostly one-signed bars.
func (e *HeuristicEngine) TokenImpacts(text string, isSpam bool, spamProbability float64) []models.TokenImpact {
	spamProbability = clamp01(spamProbability)

	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if utf16Len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	prefix := firstFifty(text)
	total := float64(len(tokens))

	impacts := make([]models.TokenImpact, 0, len(order))
	for _, tok := range order {
		normalized := float64(StableHash(tok+prefix)%1000) / 1000
		freq := float64(counts[tok]) / total

		var impact float64
		if spam, matched := matchIndicator(tok); matched {
			if spam {
				impact = 0.15 + normalized*0.10
			} else {
				impact = -0.15 - normalized*0.10
			}
		} else {
			base := normalized - 0.5
			if isSpam {
				bias := (spamProbability - 0.5) * 0.4
				impact = base*0.12 + freq*0.02 + bias
				if spamProbability > 0.7 && impact < 0.05 {
					impact = 0.05
				}
			} else {
				bias := (0.5 - spamProbability) * 0.4
				impact = base*0.12 - freq*0.02 - bias
				if spamProbability < 0.3 && impact > -0.05 {
					impact = -0.05
				}
			}
		}

		if impact > 0.3 {
			impact = 0.3
		} else if impact < -0.3 {
			impact = -0.3
		}

		impacts = append(impacts, models.TokenImpact{
			Token:  tok,
			Impact: impact,
			Weight: float64(counts[tok])*10 + normalized*50,
		})
	}

	// Stable sort over the first-appearance ordering keeps ties
	// deterministic.
	sort.SliceStable(impacts, func(i, j int) bool {
		return abs(impacts[i].Impact) > abs(impacts[j].Impact)
	})
	if len(impacts) > maxTokenImpacts {
		impacts = impacts[:maxTokenImpacts]
	}
	return impacts
}

// WordHeatmap annotates every word and whitespace run of text with a
// display importance in [0,1]. Units are index-tagged in split order;
// concatenating their Text fields reconstructs the input exactly.
func (e *HeuristicEngine) WordHeatmap(text string, isSpam bool, spamProbability float64) []models.HeatmapUnit {
	spamProbability = clamp01(spamProbability)

	parts := splitPreservingWhitespace(text)
	units := make([]models.HeatmapUnit, 0, len(parts))
	for i, part := range parts {
		unit := models.HeatmapUnit{Text: part, Index: i}

		word := strings.TrimSpace(strings.ToLower(part))
		if utf16Len(word) > 2 {
			unit.Importance, unit.IsSpamIndicator = scoreWord(word, i, isSpam, spamProbability)
		}
		units = append(units, unit)
	}
	return units
}

func scoreWord(word string, index int, isSpam bool, spamProbability float64) (float64, bool) {
	hashed := StableHash(word + strconv.Itoa(index))

	var importance float64
	var spamIndicator bool
	if spam, matched := matchIndicator(word); matched {
		importance = 0.6 + float64(hashed%100)/500
		spamIndicator = spam
	} else {
		normalized := float64(hashed%100) / 100
		importance = normalized * 0.4
		if isSpam {
			threshold := 0.55 - (spamProbability-0.5)*0.5
			if spamProbability > 0.8 {
				threshold = 0.35
			}
			spamIndicator = normalized > threshold
		} else {
			threshold := 0.45 + (0.5-spamProbability)*0.5
			if spamProbability < 0.2 {
				threshold = 0.65
			}
			spamIndicator = normalized > threshold
		}
	}

	if spamIndicator == isSpam {
		importance *= 1.5
		if importance > 1.0 {
			importance = 1.0
		}
	} else {
		importance *= 0.6
	}
	return importance, spamIndicator
}

// splitPreservingWhitespace cuts text into alternating word and whitespace
// runs so the original string is the exact concatenation of the parts.
func splitPreservingWhitespace(text string) []string {
	var parts []string
	var current []rune
	var currentIsSpace bool
	for _, r := range text {
		isSpace := unicode.IsSpace(r)
		if len(current) > 0 && isSpace != currentIsSpace {
			parts = append(parts, string(current))
			current = current[:0]
		}
		current = append(current, r)
		currentIsSpace = isSpace
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	return parts
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
