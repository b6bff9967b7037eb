// Package classifier resolves a lead's intent label via an external LLM.
// The model is instructed to answer with a single JSON object; anything
// that fails along the way (transport, malformed output, timeout) degrades
// to a fixed fallback intent so ingest never blocks on the classifier.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lead_triage_backend/internal/leads/transport"
	"lead_triage_backend/platform/logger"
)

// Intent labels the model may return. Anything else collapses to
// casual_inquiry.
var allowedLabels = map[string]bool{
	"serious_buyer":  true,
	"serious_renter": true,
	"seller":         true,
	"casual_inquiry": true,
	"spam":           true,
	"not_relevant":   true,
}

// Fallback is returned whenever classification cannot produce a usable
// verdict.
func Fallback() transport.Intent {
	return transport.Intent{IntentLabel: "casual_inquiry", ShortReason: ""}
}

// Classifier labels a single lead.
type Classifier interface {
	Classify(ctx context.Context, lead transport.Lead) (transport.Intent, error)
}

// BuildPrompt renders the JSON-only classification instruction with the
// lead fields inlined.
func BuildPrompt(lead transport.Lead) string {
	var b strings.Builder
	b.WriteString("You are a JSON-only classifier. Given the lead fields below, return ONLY a JSON object with two keys:\n")
	b.WriteString("  - intent_label (one of [serious_buyer, serious_renter, seller, casual_inquiry, spam, not_relevant])\n")
	b.WriteString("  - short_reason (a single short sentence explaining the classification)\n")
	b.WriteString("Respond with no extra commentary or explanation. ONLY the JSON.\n\n")
	fmt.Fprintf(&b, "Lead:\nname: %s\n", lead.Name)
	fmt.Fprintf(&b, "property_type: %s\n", lead.PropertyType)
	fmt.Fprintf(&b, "budget: %s\n", lead.Budget)
	fmt.Fprintf(&b, "location_preference: %s\n", lead.LocationPreference)
	fmt.Fprintf(&b, "timeframe_to_move: %s\n", lead.TimeframeToMove)
	fmt.Fprintf(&b, "message: %s\n", lead.Message)
	fmt.Fprintf(&b, "source: %s\n\n", lead.Source)
	b.WriteString("Return the JSON now.")
	return b.String()
}

// ParseIntent extracts the outermost JSON object from model output and
// decodes it. Models occasionally emit single-quoted pseudo-JSON; a second
// decode attempt swaps the quotes. Returns false when no usable object is
// found or intent_label is absent.
func ParseIntent(text string) (transport.Intent, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return transport.Intent{}, false
	}
	candidate := text[start : end+1]

	var raw map[string]any
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		alt := strings.ReplaceAll(candidate, "'", `"`)
		if err := json.Unmarshal([]byte(alt), &raw); err != nil {
			return transport.Intent{}, false
		}
	}

	label, ok := raw["intent_label"].(string)
	if !ok || label == "" {
		return transport.Intent{}, false
	}
	if !allowedLabels[label] {
		label = "casual_inquiry"
	}
	reason, _ := raw["short_reason"].(string)
	return transport.Intent{IntentLabel: label, ShortReason: reason}, true
}

// Off is a no-op classifier for offline runs. It always reports the
// fallback intent.
type Off struct{}

func (Off) Classify(ctx context.Context, lead transport.Lead) (transport.Intent, error) {
	return Fallback(), nil
}

// WithFallback wraps a classifier with a per-call timeout and converts
// every failure into the fallback intent. The returned classifier never
// errors.
func WithFallback(inner Classifier, timeout time.Duration, log *logger.Logger) Classifier {
	return &fallbackClassifier{inner: inner, timeout: timeout, log: log}
}

type fallbackClassifier struct {
	inner   Classifier
	timeout time.Duration
	log     *logger.Logger
}

func (f *fallbackClassifier) Classify(ctx context.Context, lead transport.Lead) (transport.Intent, error) {
	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	intent, err := f.inner.Classify(callCtx, lead)
	if err != nil {
		f.log.ClassifierFallback("classification failed", err)
		return Fallback(), nil
	}
	return intent, nil
}
