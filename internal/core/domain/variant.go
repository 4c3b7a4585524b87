package domain

// Tone presets used for A/B variants, in generation order.
const (
	ToneProfessional = "Professional & Authoritative"
	ToneFriendly     = "Friendly & Conversational"
	ToneUrgent       = "Urgent & Action-Oriented"
)

// VariantTones lists the presets in the order variants are produced.
var VariantTones = [3]string{ToneProfessional, ToneFriendly, ToneUrgent}

// Variant is one tone-styled alternative draft.
type Variant struct {
	Number     int    `json:"number"`
	Label      string `json:"label"`
	Tone       string `json:"tone"`
	Content    string `json:"content"`
	CTR        string `json:"ctr"`
	Engagement int    `json:"engagement"`
	Reach      int64  `json:"reach"`
	Confidence int    `json:"confidence"`
}

// VariantSet is the result of one variant run. Fallback is set when the
// precomputed demo variants replaced the whole run.
type VariantSet struct {
	Brief    string    `json:"brief"`
	Name     string    `json:"name"`
	Variants []Variant `json:"variants"`
	Fallback bool      `json:"fallback"`
}
