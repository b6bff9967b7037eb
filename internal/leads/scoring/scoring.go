// Package scoring implements the deterministic lead qualification engine:
// five pure per-field scorers, an aggregator that clamps the total to
// [0,100], and the score-to-tier mapper. Every scorer returns its point
// delta together with human-readable reason fragments; reason order is
// part of the output contract.
package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"lead_triage_backend/internal/leads/rules"
)

// FieldScore is the output of a single per-field scorer.
type FieldScore struct {
	Delta   int
	Reasons []string
}

// ScoreLocation scores the location preference by exact table match.
// An empty location scores 0; the legacy reason text still says
// "-5 penalty" even though no penalty is applied, and that wording is
// load-bearing for downstream report parsing, so it stays.
func ScoreLocation(location string) FieldScore {
	if strings.TrimSpace(location) == "" {
		return FieldScore{Delta: 0, Reasons: []string{"location:missing (-5 penalty)"}}
	}

	loc := strings.TrimSpace(location)
	score, ok := rules.LocationScores[loc]
	if !ok {
		score = rules.DefaultLocationScore
	}
	return FieldScore{Delta: score, Reasons: []string{fmt.Sprintf("location:%s (+%d)", loc, score)}}
}

// ScoreBudget parses the budget (tolerating commas and dollar signs) and
// scores it against the ascending band table. Buy or sell leads at or above
// the high-value threshold earn a bonus on top of the band score.
func ScoreBudget(budget string, propertyType string) FieldScore {
	if strings.TrimSpace(budget) == "" {
		return FieldScore{Delta: 0, Reasons: []string{"budget:missing"}}
	}

	cleaned := strings.ReplaceAll(budget, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.TrimSpace(cleaned)
	b, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return FieldScore{Delta: 0, Reasons: []string{"budget:invalid"}}
	}

	for _, band := range rules.BudgetBands {
		if band.Lo <= b && b <= band.Hi {
			if propertyType == "buy" && b >= rules.HighValueThreshold {
				return FieldScore{
					Delta:   band.Score + rules.HighValueBonus,
					Reasons: []string{fmt.Sprintf("budget:%d (+%d+%d high-value buyer)", int(b), band.Score, rules.HighValueBonus)},
				}
			}
			if propertyType == "sell" && b >= rules.HighValueThreshold {
				return FieldScore{
					Delta:   band.Score + rules.HighValueBonus,
					Reasons: []string{fmt.Sprintf("budget:%d (+%d+%d valuable property)", int(b), band.Score, rules.HighValueBonus)},
				}
			}
			return FieldScore{Delta: band.Score, Reasons: []string{fmt.Sprintf("budget:%d (+%d)", int(b), band.Score)}}
		}
	}

	// Unreachable for non-negative budgets given the open-ended top band,
	// but negative values fall through here: default to the top band.
	last := rules.BudgetBands[len(rules.BudgetBands)-1].Score
	return FieldScore{Delta: last, Reasons: []string{fmt.Sprintf("budget:%d (+%d)", int(b), last)}}
}

// ScoreTimeframe matches the lowered timeframe against the ordered keyword
// table; the first match wins. "now" leads that want to buy or rent earn
// the immediate-need bonus. The reason echoes the caller's raw input.
func ScoreTimeframe(timeframe string, propertyType string) FieldScore {
	if strings.TrimSpace(timeframe) == "" {
		return FieldScore{Delta: 0, Reasons: []string{"timeframe:missing"}}
	}

	tf := strings.ToLower(strings.TrimSpace(timeframe))

	for _, entry := range rules.TimeframeScores {
		if !strings.Contains(tf, entry.Key) {
			continue
		}
		if entry.Key == "now" && (propertyType == "buy" || propertyType == "rent") {
			return FieldScore{
				Delta:   entry.Score + rules.ImmediateNeedBonus,
				Reasons: []string{fmt.Sprintf("timeframe:%s (+%d+%d immediate need)", timeframe, entry.Score, rules.ImmediateNeedBonus)},
			}
		}
		return FieldScore{Delta: entry.Score, Reasons: []string{fmt.Sprintf("timeframe:%s (+%d)", timeframe, entry.Score)}}
	}

	return FieldScore{Delta: 0, Reasons: []string{fmt.Sprintf("timeframe:%s (+0)", timeframe)}}
}

// ScoreContact scores contact completeness. Email counts when it contains
// an "@"; phone counts when it has at least one digit. Having both earns a
// bonus; having neither costs a flat penalty.
func ScoreContact(email string, phone string) FieldScore {
	score := 0
	var reasons []string

	hasEmail := email != "" && strings.Contains(email, "@")
	hasPhone := stripNonDigits(phone) != ""

	if hasEmail {
		score += rules.EmailScore
		reasons = append(reasons, fmt.Sprintf("has_email (+%d)", rules.EmailScore))
	}

	if hasPhone {
		score += rules.PhoneScore
		reasons = append(reasons, fmt.Sprintf("has_phone (+%d)", rules.PhoneScore))
	}

	if hasEmail && hasPhone {
		score += rules.CompleteContactBonus
		reasons = append(reasons, fmt.Sprintf("complete_contact (+%d)", rules.CompleteContactBonus))
	}

	if !hasEmail && !hasPhone {
		reasons = append(reasons, fmt.Sprintf("no_contact (-%d penalty)", rules.NoContactPenalty))
		score -= rules.NoContactPenalty
	}

	return FieldScore{Delta: score, Reasons: reasons}
}

// ScoreMessage scores message quality and detects spam. Any spam keyword
// match suppresses all positive scoring: the result is only the compounded
// spam penalties. Otherwise keyword hits, a length bonus, type-mismatch
// notes, and an uncertainty penalty accumulate.
func ScoreMessage(message string, propertyType string) FieldScore {
	if strings.TrimSpace(message) == "" {
		return FieldScore{Delta: -rules.EmptyMessagePenalty, Reasons: []string{fmt.Sprintf("message:empty (-%d)", rules.EmptyMessagePenalty)}}
	}

	m := strings.ToLower(message)
	score := 0
	var reasons []string

	spamDetected := false
	for _, spam := range rules.SpamKeywords {
		if strings.Contains(m, spam) {
			score -= rules.SpamPenalty
			reasons = append(reasons, fmt.Sprintf("spam:%s (-%d)", spam, rules.SpamPenalty))
			spamDetected = true
		}
	}

	if spamDetected {
		return FieldScore{Delta: score, Reasons: reasons}
	}

	for _, entry := range rules.MessageKeywordScores {
		if strings.Contains(m, entry.Key) {
			score += entry.Score
			reasons = append(reasons, fmt.Sprintf("msg_has_%s (+%d)", entry.Key, entry.Score))
		}
	}

	words := len(strings.Fields(m))
	switch {
	case words >= rules.DetailedMessageWords:
		score += rules.DetailedMessageBonus
		reasons = append(reasons, fmt.Sprintf("detailed_message (+%d)", rules.DetailedMessageBonus))
	case words >= rules.MediumMessageWords:
		score += rules.MediumMessageBonus
		reasons = append(reasons, fmt.Sprintf("message_length (+%d)", rules.MediumMessageBonus))
	case words >= rules.ShortMessageWords:
		score += rules.ShortMessageBonus
		reasons = append(reasons, fmt.Sprintf("message_length (+%d)", rules.ShortMessageBonus))
	default:
		reasons = append(reasons, "short_message (+0)")
	}

	// Property-type mismatch is informational only: no point change.
	if propertyType == "rent" && (strings.Contains(m, "want to sell") || strings.Contains(m, "selling")) {
		reasons = append(reasons, "type_mismatch (potential confusion)")
	} else if propertyType == "buy" && (strings.Contains(m, "want to rent") || strings.Contains(m, "looking to rent")) {
		reasons = append(reasons, "type_mismatch (potential confusion)")
	}

	for _, phrase := range rules.UncertaintyPhrases {
		if strings.Contains(m, phrase) {
			score -= rules.UncertaintyPenalty
			reasons = append(reasons, fmt.Sprintf("uncertainty (-%d)", rules.UncertaintyPenalty))
			break
		}
	}

	return FieldScore{Delta: score, Reasons: reasons}
}

// Input carries the lead fields the qualification engine consumes.
// PropertyType must already be lowercased by the caller.
type Input struct {
	PropertyType string
	Budget       string
	Location     string
	Timeframe    string
	Email        string
	Phone        string
	Message      string
}

// Qualify runs the five scorers in fixed order (location, budget,
// timeframe, contact, message), applies the seller bonus, and clamps the
// total to [MinScore, MaxScore]. The returned reasons preserve scorer order.
func Qualify(in Input) (int, []string) {
	total := 0
	var reasons []string

	parts := []FieldScore{
		ScoreLocation(in.Location),
		ScoreBudget(in.Budget, in.PropertyType),
		ScoreTimeframe(in.Timeframe, in.PropertyType),
		ScoreContact(in.Email, in.Phone),
		ScoreMessage(in.Message, in.PropertyType),
	}
	for _, part := range parts {
		total += part.Delta
		reasons = append(reasons, part.Reasons...)
	}

	if in.PropertyType == "sell" {
		total += rules.SellerBonus
		reasons = append(reasons, fmt.Sprintf("seller_lead (+%d)", rules.SellerBonus))
	}

	if total < rules.MinScore {
		total = rules.MinScore
	}
	if total > rules.MaxScore {
		total = rules.MaxScore
	}

	return total, reasons
}

// TierFor maps a clamped score to its tier name and recommended action.
// The table is scanned in ascending threshold order and the highest
// threshold not exceeding the score wins; thresholds are inclusive.
func TierFor(score int) (string, string) {
	selected := rules.Tiers[0]
	for _, tier := range rules.Tiers {
		if score >= tier.MinScore {
			selected = tier
		}
	}
	return selected.Name, selected.Action
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
