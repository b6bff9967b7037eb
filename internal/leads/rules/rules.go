// Package rules holds the static scoring configuration: point tables for
// each lead attribute, spam keywords, score bounds, and tier thresholds.
// Tables whose iteration order is observable (first match wins, reason
// order) are ordered slices, not maps.
package rules

import "math"

// LocationScores maps an exact location name to its points.
// Unlisted locations fall back to DefaultLocationScore.
var LocationScores = map[string]int{
	"Dubai":          25,
	"Abu Dhabi":      22,
	"Sharjah":        15,
	"Ajman":          12,
	"Al Ain":         14,
	"Ras Al Khaimah": 12,
}

// DefaultLocationScore applies to any non-empty location not in LocationScores.
const DefaultLocationScore = 5

// BudgetBand scores budgets falling inside the inclusive [Lo, Hi] range.
type BudgetBand struct {
	Lo    float64
	Hi    float64
	Score int
}

// BudgetBands is scanned in ascending order; the first band containing the
// parsed budget wins. The top band is open-ended.
var BudgetBands = []BudgetBand{
	{0, 50000, 3},
	{50001, 100000, 10},
	{100001, 500000, 18},
	{500001, 1500000, 28},
	{1500001, 3000000, 35},
	{3000001, math.Inf(1), 40},
}

// HighValueThreshold is the budget above which buy/sell leads earn a bonus.
const (
	HighValueThreshold = 1000000
	HighValueBonus     = 5
)

// TimeframeScore maps a timeframe keyword (substring match against the
// lowered input) to its points. Order matters: the first matching key wins.
type TimeframeScore struct {
	Key   string
	Score int
}

// TimeframeScores includes both hyphen and en-dash variants, since lead
// forms are inconsistent about which dash they use.
var TimeframeScores = []TimeframeScore{
	{"now", 35},
	{"1-3 months", 25},
	{"1–3 months", 25},
	{"3-6 months", 15},
	{"3–6 months", 15},
	{"6+ months", 5},
	{"6 months+", 5},
}

// ImmediateNeedBonus applies when the matched key is exactly "now" and the
// lead wants to buy or rent.
const ImmediateNeedBonus = 5

// Contact completeness points.
const (
	EmailScore           = 10
	PhoneScore           = 12
	CompleteContactBonus = 5
	NoContactPenalty     = 10
)

// MessageKeywordScore maps a message keyword (substring match) to its
// points. Every matching keyword counts; order controls reason order.
type MessageKeywordScore struct {
	Key   string
	Score int
}

var MessageKeywordScores = []MessageKeywordScore{
	{"urgent", 12},
	{"immediately", 10},
	{"asap", 10},
	{"buy", 10},
	{"purchase", 10},
	{"sell", 10},
	{"selling", 10},
	{"rent", 8},
	{"looking", 6},
	{"searching", 6},
	{"interested", 6},
	{"need", 7},
	{"require", 7},
	{"moving", 8},
	{"relocating", 8},
	{"villa", 5},
	{"apartment", 5},
	{"penthouse", 7},
	{"studio", 4},
	{"1br", 4},
	{"2br", 5},
	{"3br", 6},
	{"4br", 7},
	{"bedroom", 4},
	{"budget", 5},
	{"approved", 8},
	{"cash", 10},
	{"investor", 8},
}

// SpamKeywords flag low-quality leads. Each match subtracts SpamPenalty and
// suppresses all positive message scoring.
var SpamKeywords = []string{
	"work from home",
	"make money",
	"earn money",
	"click here",
	"test",
	"testing",
	"not about property",
	"free offer",
	"limited time",
	"act now",
	"10000$",
	"weekly income",
}

const SpamPenalty = 50

// Message length bonuses by word count.
const (
	DetailedMessageWords = 15
	DetailedMessageBonus = 12
	MediumMessageWords   = 8
	MediumMessageBonus   = 8
	ShortMessageWords    = 4
	ShortMessageBonus    = 4
)

// UncertaintyPhrases trigger a single flat penalty when any is present.
var UncertaintyPhrases = []string{"not sure", "maybe", "thinking about", "might"}

const UncertaintyPenalty = 8

const (
	EmptyMessagePenalty = 5
	SellerBonus         = 10
)

// Score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// Tier maps a minimum score to a tier name and recommended action.
type Tier struct {
	Name     string
	MinScore int
	Action   string
}

// Tiers is scanned in ascending threshold order; the highest threshold not
// exceeding the score wins. Thresholds are inclusive lower bounds.
var Tiers = []Tier{
	{"junk", 0, "ignore"},
	{"low", 40, "nurture"},
	{"medium", 65, "call later"},
	{"hot", 80, "call now"},
}
