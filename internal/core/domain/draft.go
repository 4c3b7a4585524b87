package domain

import "time"

// Draft is the most recently generated, not yet saved campaign content.
type Draft struct {
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata"`
	Created    time.Time         `json:"created"`
	Prediction *Prediction       `json:"predictions,omitempty"`
}

// Prediction is the heuristic performance estimate attached to a draft.
type Prediction struct {
	CTR        string `json:"ctr"`
	Reach      int64  `json:"reach"`
	Engagement int    `json:"engagement"`
	Compliance int    `json:"compliance"`
}

// GenerateRequest carries the create-campaign form fields.
type GenerateRequest struct {
	CampaignName   string `json:"campaignName"`
	ProductBrief   string `json:"productBrief"`
	TargetAudience string `json:"targetAudience"`
	CampaignType   string `json:"campaignType"`
	Tone           string `json:"tone"`
	Platform       string `json:"platform"`
}
