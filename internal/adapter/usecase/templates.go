package usecase

import (
	"fmt"

	"github.com/osteele/liquid"
)

// copyTemplates renders the canned copy used when the text-generation
// collaborator is unavailable.
type copyTemplates struct {
	engine *liquid.Engine
}

func newCopyTemplates() *copyTemplates {
	return &copyTemplates{engine: liquid.NewEngine()}
}

func (t *copyTemplates) render(src string, bindings map[string]any) (string, error) {
	out, err := t.engine.ParseAndRenderString(src, bindings)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}

const demoCampaignTemplate = `
## 🎯 Headline
**Transform Your Shopping Experience with Exclusive Member Benefits**

## 📢 Subheadline
Unlock premium savings and personalized offers designed just for {{ audience }} shoppers

## 📝 Main Copy

{{ brief }}

Our exclusive {{ tone | downcase }} approach ensures you get the best value for your money. With personalized recommendations powered by Clubcard data, every shopping trip becomes an opportunity to save more and discover products you'll love.

Join thousands of satisfied customers who've already transformed their shopping experience. Our intelligent system learns your preferences and delivers tailored offers that match your lifestyle perfectly.

## 🎬 Call-to-Action
**Shop Now and Save Up to 50% - Limited Time Exclusive Offer!**

## ✨ Key Benefits
• **Personalized Discounts**: Up to 50% off on your favorite products
• **Smart Recommendations**: AI-powered suggestions based on your shopping history
• **Free Delivery**: On all orders over $50 for Clubcard members
• **Early Access**: Be the first to know about new deals and exclusive launches

## 📱 Hashtags
#SmartShopping #ExclusiveDeals #ClubcardPerks #SaveMore #PersonalizedOffers

## 🎨 Visual Suggestions
Use vibrant product photography with happy {{ audience | downcase }} customers. Include Clubcard branding with gradient overlays. Show clear before/after price comparisons and trust badges.
`

// DemoCallToAction is the call-to-action line of the demo campaign.
const DemoCallToAction = "Shop Now and Save Up to 50% - Limited Time Exclusive Offer!"
