package usecase

import (
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

//go:embed data/chat_rules.yaml
var chatRulesYAML []byte

const (
	clearChatPrompt = "Clear all chat messages?"
	chatGreeting    = "Hello! I'm your AI assistant. How can I help you create amazing campaigns today? 🚀"
)

type chatRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`
}

type chatRuleSet struct {
	Rules   []chatRule `yaml:"rules"`
	Default string     `yaml:"default"`
}

func loadChatRules() (chatRuleSet, error) {
	var set chatRuleSet
	if err := yaml.Unmarshal(chatRulesYAML, &set); err != nil {
		return set, fmt.Errorf("parse chat rules: %w", err)
	}
	return set, nil
}

// match returns the first rule with a keyword contained in message, or nil.
func (s chatRuleSet) match(message string) *chatRule {
	lower := strings.ToLower(message)
	for i := range s.Rules {
		for _, kw := range s.Rules[i].Keywords {
			if strings.Contains(lower, kw) {
				return &s.Rules[i]
			}
		}
	}
	return nil
}

type campaignCounter interface {
	Count() int
}

type metricsSnapshotter interface {
	Snapshot() domain.Metrics
}

// Chat is the assistant behind the chat panel. It implements
// port.ChatAssistant.
type Chat struct {
	llm       port.TextGenerator
	campaigns campaignCounter
	metrics   metricsSnapshotter
	rules     chatRuleSet
	templates *copyTemplates
	clock     port.Clock
	logger    *zap.Logger

	mu         sync.Mutex
	transcript []domain.ChatMessage
}

// NewChat creates an assistant with an empty transcript.
func NewChat(llm port.TextGenerator, campaigns campaignCounter, metrics metricsSnapshotter, clock port.Clock, logger *zap.Logger) (*Chat, error) {
	rules, err := loadChatRules()
	if err != nil {
		return nil, err
	}
	return &Chat{
		llm:       llm,
		campaigns: campaigns,
		metrics:   metrics,
		rules:     rules,
		templates: newCopyTemplates(),
		clock:     clock,
		logger:    logger,
	}, nil
}

// Respond answers message. Collaborator failures are answered from the
// keyword table. Both sides of the exchange are appended to the transcript.
func (c *Chat) Respond(ctx context.Context, message string) (*domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("chat message: %w", port.ErrMissingInput)
	}
	c.append(domain.SenderUser, message)

	reply := &domain.ChatReply{}
	text, err := c.llm.Generate(ctx, c.prompt(message))
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("empty response: %w", port.ErrCollaboratorUnavailable)
	}
	if err != nil {
		c.logger.Warn("chat answered from fallback table", zap.Error(err))
		text, err = c.Fallback(message)
		if err != nil {
			return nil, err
		}
		reply.Fallback = true
	}
	reply.Text = text
	c.append(domain.SenderAssistant, text)
	return reply, nil
}

// Fallback returns the canned answer for message.
func (c *Chat) Fallback(message string) (string, error) {
	tpl := c.rules.Default
	if rule := c.rules.match(message); rule != nil {
		tpl = rule.Response
	}
	m := c.metrics.Snapshot()
	return c.templates.render(tpl, map[string]any{
		"campaigns":   c.campaigns.Count(),
		"active":      m.ActiveCampaigns,
		"impressions": humanize.Comma(m.Impressions),
		"clicks":      humanize.Comma(m.Clicks),
		"ctr":         format2(m.CTR),
	})
}

// Transcript returns a copy of the conversation so far.
func (c *Chat) Transcript() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.transcript)
}

// Clear empties the transcript after confirm accepts and restarts it with
// the assistant greeting.
func (c *Chat) Clear(ctx context.Context, confirm port.Confirmer) error {
	if confirm == nil || !confirm.Confirm(ctx, clearChatPrompt) {
		return port.ErrNotConfirmed
	}
	c.mu.Lock()
	c.transcript = nil
	c.mu.Unlock()
	c.append(domain.SenderAssistant, chatGreeting)
	return nil
}

func (c *Chat) append(sender domain.Sender, text string) {
	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: c.clock.Now().UTC(),
	}
	c.mu.Lock()
	c.transcript = append(c.transcript, msg)
	c.mu.Unlock()
}

func (c *Chat) prompt(message string) string {
	m := c.metrics.Snapshot()
	return fmt.Sprintf(`You are CreativeSync AI, an intelligent advertising assistant specializing in campaign creation, performance analysis, and trend detection.

Current system state:
- Total campaigns: %d
- Active campaigns: %d
- Total impressions: %s
- Average CTR: %s%%

User question: %s

Provide a helpful, concise, and actionable response. Be friendly and professional. If the question is about campaigns, trends, or analytics, reference the current data above.`,
		c.campaigns.Count(), m.ActiveCampaigns, humanize.Comma(m.Impressions), format2(m.CTR), message)
}
