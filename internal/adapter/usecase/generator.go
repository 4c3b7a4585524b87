package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

var (
	urgencyPattern    = regexp.MustCompile(`(?i)limited|now|today|hurry|exclusive`)
	benefitPattern    = regexp.MustCompile(`(?i)save|free|discount|offer`)
	pictographPattern = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}]`)
)

const fallbackWarning = "API key may be invalid or quota exceeded. Showing sample campaign."

// Generator provides business logic for drafting campaign copy. It
// orchestrates the text-generation collaborator, the demo fallback and the
// heuristic predictions, and implements port.CampaignGenerator.
type Generator struct {
	llm       port.TextGenerator
	drafts    *DraftSlot
	rnd       *Random
	clock     port.Clock
	templates *copyTemplates
	logger    *zap.Logger
}

// NewGenerator creates a generator writing its results into drafts.
func NewGenerator(llm port.TextGenerator, drafts *DraftSlot, rnd *Random, clock port.Clock, logger *zap.Logger) *Generator {
	return &Generator{
		llm:       llm,
		drafts:    drafts,
		rnd:       rnd,
		clock:     clock,
		templates: newCopyTemplates(),
		logger:    logger,
	}
}

// Generate drafts a campaign from the form fields. A missing brief fails
// with port.ErrMissingInput before any request is sent. Collaborator
// failures are recovered with the demo template and flagged in the result.
func (g *Generator) Generate(ctx context.Context, req domain.GenerateRequest) (*port.GenerateResult, error) {
	req.ProductBrief = strings.TrimSpace(req.ProductBrief)
	if req.ProductBrief == "" {
		return nil, fmt.Errorf("product brief: %w", port.ErrMissingInput)
	}
	now := g.clock.Now()
	title := strings.TrimSpace(req.CampaignName)
	if title == "" {
		title = fmt.Sprintf("Campaign %d", now.UnixMilli())
	}
	req.CampaignName = title

	res := &port.GenerateResult{}
	content, err := g.llm.Generate(ctx, campaignPrompt(req))
	if err == nil && strings.TrimSpace(content) == "" {
		err = fmt.Errorf("empty response: %w", port.ErrCollaboratorUnavailable)
	}
	if err != nil {
		g.logger.Warn("campaign generation fell back to demo content",
			zap.String("campaign", title), zap.Error(err))
		content, err = g.templates.render(demoCampaignTemplate, map[string]any{
			"brief":    req.ProductBrief,
			"audience": req.TargetAudience,
			"tone":     req.Tone,
		})
		if err != nil {
			return nil, err
		}
		res.Fallback = true
		res.Warning = fallbackWarning
	}

	prediction := Predict(content, g.rnd)
	draft := domain.Draft{
		Title:   title,
		Content: content,
		Metadata: map[string]string{
			"productBrief":   req.ProductBrief,
			"targetAudience": req.TargetAudience,
			"campaignType":   req.CampaignType,
			"tone":           req.Tone,
			"platform":       req.Platform,
		},
		Created:    now.UTC(),
		Prediction: &prediction,
	}
	g.drafts.Set(draft)

	res.Draft = draft
	res.Prediction = prediction
	return res, nil
}

// Predict computes the heuristic performance estimate for content. Only the
// shape is fixed; the random draws come from rnd.
func Predict(content string, rnd *Random) domain.Prediction {
	urgent := urgencyPattern.MatchString(content)
	benefit := benefitPattern.MatchString(content)

	base := 3.5
	if urgent {
		base += 1.2
	}
	if benefit {
		base += 1.5
	}
	if pictographPattern.MatchString(content) {
		base += 0.8
	}
	if len(strings.Fields(content)) > 200 {
		base += 0.5
	}

	ctr := round2(base + rnd.Uniform(0, 1.5))
	reach := rnd.FloorUniform(150000, 250000)
	var engagement int64
	if urgent && benefit {
		engagement = rnd.FloorUniform(85, 95)
	} else {
		engagement = rnd.FloorUniform(70, 85)
	}
	return domain.Prediction{
		CTR:        format2(ctr),
		Reach:      reach,
		Engagement: int(engagement),
		Compliance: 100,
	}
}

func campaignPrompt(req domain.GenerateRequest) string {
	return fmt.Sprintf(`You are a professional advertising copywriter. Create a compelling advertising campaign with these details:

Campaign Name: %s
Product/Service: %s
Target Audience: %s
Campaign Type: %s
Tone: %s
Platform: %s

Generate a complete campaign including:

1. **Headline**: Create a catchy, attention-grabbing headline (max 12 words)
2. **Subheadline**: A compelling subheadline that supports the main headline (max 20 words)
3. **Main Copy**: 2-3 paragraphs of engaging, persuasive copy that highlights benefits and creates urgency
4. **Call-to-Action**: A strong, action-oriented CTA (1 sentence)
5. **Key Benefits**: List 4 specific benefits as bullet points
6. **Hashtags**: 5 relevant, trending hashtags
7. **Visual Suggestions**: Brief description of ideal imagery/graphics

Format the response clearly with markdown-style headers. Make it professional, compliant with advertising standards, and optimized for high engagement.`,
		req.CampaignName, req.ProductBrief, req.TargetAudience, req.CampaignType, req.Tone, req.Platform)
}
