package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

// Variants generates the three A/B drafts and implements
// port.VariantGenerator. Items are produced one after another with a pacing
// delay in between.
type Variants struct {
	llm      port.TextGenerator
	drafts   *DraftSlot
	notifier *Notifier
	rnd      *Random
	clock    port.Clock
	pacing   time.Duration
	logger   *zap.Logger

	mu   sync.Mutex
	last *domain.VariantSet
}

// NewVariants creates a variant generator.
func NewVariants(llm port.TextGenerator, drafts *DraftSlot, notifier *Notifier, rnd *Random, clock port.Clock, pacing time.Duration, logger *zap.Logger) *Variants {
	return &Variants{
		llm:      llm,
		drafts:   drafts,
		notifier: notifier,
		rnd:      rnd,
		clock:    clock,
		pacing:   pacing,
		logger:   logger,
	}
}

// GenerateVariants produces exactly three variants for brief. When the
// first collaborator call fails the run is abandoned and the precomputed
// demo variants are returned instead; later failures fall back per item.
func (v *Variants) GenerateVariants(ctx context.Context, brief, name string) (*domain.VariantSet, error) {
	brief = strings.TrimSpace(brief)
	if brief == "" {
		return nil, fmt.Errorf("product brief: %w", port.ErrMissingInput)
	}
	name = strings.TrimSpace(name)

	set := &domain.VariantSet{Brief: brief, Name: name}
	for i, tone := range domain.VariantTones {
		if i > 0 {
			if err := sleep(ctx, v.pacing); err != nil {
				return nil, err
			}
		}
		num := i + 1
		content, err := v.llm.Generate(ctx, variantPrompt(num, tone, brief, name))
		if err == nil && strings.TrimSpace(content) == "" {
			err = fmt.Errorf("empty response: %w", port.ErrCollaboratorUnavailable)
		}
		if err != nil && i == 0 {
			v.logger.Warn("variant generation unavailable, using demo variants", zap.Error(err))
			set.Variants = demoVariants(brief)
			set.Fallback = true
			break
		}
		if err != nil {
			v.logger.Warn("variant fell back to template", zap.Int("variant", num), zap.Error(err))
			content = toneFallback(tone, brief)
		}
		set.Variants = append(set.Variants, v.scored(num, tone, strings.TrimSpace(content)))
	}

	v.mu.Lock()
	v.last = set
	v.mu.Unlock()
	return set, nil
}

// SelectVariant makes variant n of the last run the current draft.
func (v *Variants) SelectVariant(_ context.Context, n int) (*domain.Draft, error) {
	v.mu.Lock()
	set := v.last
	v.mu.Unlock()
	if set == nil || n < 1 || n > len(set.Variants) {
		return nil, fmt.Errorf("variant %d: %w", n, port.ErrUnknownVariant)
	}
	chosen := set.Variants[n-1]

	title := set.Name
	if title == "" {
		title = "New Campaign"
	}
	title = fmt.Sprintf("%s - Variant %s", title, chosen.Label)

	draft := domain.Draft{
		Title:   title,
		Content: chosen.Content,
		Metadata: map[string]string{
			"productBrief": set.Brief,
			"tone":         chosen.Tone,
			"variant":      chosen.Label,
		},
		Created: v.clock.Now().UTC(),
		Prediction: &domain.Prediction{
			CTR:        chosen.CTR,
			Reach:      chosen.Reach,
			Engagement: chosen.Engagement,
			Compliance: 100,
		},
	}
	v.drafts.Set(draft)
	v.notifier.Add("Variant Selected", fmt.Sprintf("Variant %d activated for your campaign", n), "info")
	return &draft, nil
}

func (v *Variants) scored(num int, tone, content string) domain.Variant {
	return domain.Variant{
		Number:     num,
		Label:      variantLabel(num),
		Tone:       tone,
		Content:    content,
		CTR:        format2(v.rnd.Uniform(5, 7)),
		Engagement: int(v.rnd.FloorUniform(80, 90)),
		Reach:      v.rnd.FloorUniform(100000, 150000),
		Confidence: int(v.rnd.FloorUniform(85, 95)),
	}
}

func variantLabel(num int) string {
	return string(rune('A' + num - 1))
}

func variantPrompt(num int, tone, brief, name string) string {
	if name == "" {
		name = "New Campaign"
	}
	return fmt.Sprintf(`Create advertising copy variant %d with a %s tone.

Product/Service: %s
Campaign: %s

Generate ONLY:
1. A compelling headline (8-10 words)
2. Two sentences of persuasive copy
3. One strong call-to-action

Keep it concise and optimized for %s style. Make each variant distinctly different.`, num, tone, brief, name, tone)
}

func toneFallback(tone, brief string) string {
	return fmt.Sprintf("%s approach:\n\n%s...\n\nDiscover amazing benefits today! Act now and transform your experience.",
		tone, truncateRunes(brief, 120))
}

func demoVariants(brief string) []domain.Variant {
	return []domain.Variant{
		{
			Number: 1,
			Label:  "A",
			Tone:   domain.ToneProfessional,
			Content: fmt.Sprintf("Professional Excellence Awaits\n\n%s... Our data-driven approach ensures optimal results. Experience the difference that expertise makes.\n\nGet Started with Confidence Today",
				truncateRunes(brief, 100)),
			CTR:        "6.8",
			Engagement: 87,
			Reach:      125000,
			Confidence: 92,
		},
		{
			Number: 2,
			Label:  "B",
			Tone:   domain.ToneFriendly,
			Content: fmt.Sprintf("Hey! We've Got Something Special 🎉\n\n%s... We're here to make your life easier and more enjoyable. Join our community of happy customers!\n\nLet's Make It Happen Together!",
				truncateRunes(brief, 90)),
			CTR:        "7.2",
			Engagement: 91,
			Reach:      145000,
			Confidence: 89,
		},
		{
			Number: 3,
			Label:  "C",
			Tone:   domain.ToneUrgent,
			Content: fmt.Sprintf("⚡ Limited Time Offer - Act Now!\n\n%s... Don't miss out on this exclusive opportunity. Time is running out!\n\n🔥 Claim Your Offer Before It's Gone!",
				truncateRunes(brief, 95)),
			CTR:        "8.1",
			Engagement: 94,
			Reach:      165000,
			Confidence: 95,
		},
	}
}
