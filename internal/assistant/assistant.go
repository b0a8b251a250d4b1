package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"shopfront/internal/menu"
	"shopfront/internal/models"
	"shopfront/internal/providers"
)

const (
	chatTemperature = 0.7
	chatMaxTokens   = 1000
)

// orderTriggers are the phrases in a customer's final message that make us
// ask the model for a structured order block.
var orderTriggers = []string{"order", "buy", "pick up"}

var (
	orderSpanRe    = regexp.MustCompile(`(?s)ORDER_JSON_START\s*(.*?)\s*ORDER_JSON_END`)
	orderSpanStrip = regexp.MustCompile(`(?s)ORDER_JSON_START.*ORDER_JSON_END`)
)

const orderExtractionInstruction = `If the customer is placing an order, also provide the order details in this JSON format at the end of your response:

ORDER_JSON_START
{
  "customerName": "string",
  "customerPhone": "string",
  "items": [
    {
      "itemName": "string",
      "quantity": number,
      "price": number,
      "specialRequests": "string"
    }
  ],
  "pickupTime": "ISO datetime string",
  "giftWrapping": boolean,
  "giftMessage": "string",
  "notes": "string",
  "totalAmount": number
}
ORDER_JSON_END`

// Assistant answers customer conversations for one shop's menu. It keeps no
// state between calls: the caller supplies the full history every turn.
type Assistant struct {
	provider providers.Provider
}

// New creates an assistant backed by the given provider.
func New(provider providers.Provider) *Assistant {
	return &Assistant{provider: provider}
}

// GenerateSystemPrompt renders the live menu and the assistant's persona and
// ordering rules into the leading system message.
func GenerateSystemPrompt(shopName, shopAddress string, menuItems []models.MenuItem) string {
	grouped := menu.GroupByCategory(menuItems)

	var menuText strings.Builder
	menuText.WriteString("CURRENT MENU:\n\n")
	for _, category := range menu.AllCategories {
		items, ok := grouped[category]
		if !ok {
			continue
		}
		menuText.WriteString(menu.CategoryDisplayName(category) + ":\n")
		for _, item := range items {
			menuText.WriteString(fmt.Sprintf("- %s: $%g", item.Name, item.Price))
			if item.Description != "" {
				menuText.WriteString(" - " + item.Description)
			}
			if !item.Available {
				menuText.WriteString(" (CURRENTLY UNAVAILABLE)")
			}
			if len(item.Allergens) > 0 {
				menuText.WriteString(" [Contains: " + strings.Join(item.Allergens, ", ") + "]")
			}
			menuText.WriteString("\n")
		}
		menuText.WriteString("\n")
	}

	return fmt.Sprintf(`You are the expert AI assistant for %s, a shop located at %s.

%s
CAPABILITIES:
- Answer detailed questions about menu items, ingredients, and allergens
- Take orders (collect: customer name, phone, specific items, quantities, pickup time, special requests)
- Recommend items based on preferences, dietary restrictions, and budgets
- Handle special dietary requests (vegetarian, vegan, gluten-free, etc.)
- Provide information about portion sizes and preparation methods

CONVERSATION PERSONALITY:
- Warm, knowledgeable, and passionate about good food
- Professional yet friendly and approachable
- Patient with questions and happy to make recommendations
- Eager to ensure customer satisfaction
- Always prioritize dietary restrictions and allergen information

ORDERING PROCESS:
1. Greet warmly and ask how you can help
2. For orders: confirm specific items, quantities, and preferred pickup time
3. Collect customer name and phone number for order tracking
4. Ask about any dietary restrictions or special requests
5. Calculate total and provide clear order summary
6. Confirm order details and provide reference number
7. Thank them and provide pickup instructions

IMPORTANT RULES:
- Only recommend items that are marked as available
- Always mention allergens when relevant
- Be clear about pricing and portions
- If an item is unavailable, suggest alternatives
- For pickup times, suggest realistic timeframes (at least 30 minutes from now)
- Always be helpful and maintain the shop's reputation

When taking orders, format the order details clearly and collect all necessary information.`,
		shopName, shopAddress, menuText.String())
}

// ProcessChat produces the assistant's reply for one turn and, when the
// customer is ordering, the structured order extracted from it. A provider
// failure is fatal; a bad order block degrades to the plain text reply.
func (a *Assistant) ProcessChat(ctx context.Context, messages []models.ChatMessage, shopName, shopAddress string, menuItems []models.MenuItem) (models.ChatResult, error) {
	request := make([]providers.Message, 0, len(messages)+2)
	request = append(request, providers.Message{
		Role:    "system",
		Content: GenerateSystemPrompt(shopName, shopAddress, menuItems),
	})
	for _, msg := range messages {
		request = append(request, providers.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	triggered := wantsOrderExtraction(messages)
	if triggered {
		request = append(request, providers.Message{
			Role:    "system",
			Content: orderExtractionInstruction,
		})
	}

	response, err := a.provider.Complete(ctx, request, providers.Options{
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return models.ChatResult{}, fmt.Errorf("chat completion failed: %w", err)
	}

	return parseResponse(response, triggered), nil
}

// wantsOrderExtraction reports whether the final message is a user turn that
// looks like the customer is ordering.
func wantsOrderExtraction(messages []models.ChatMessage) bool {
	if len(messages) == 0 {
		return false
	}
	last := messages[len(messages)-1]
	if last.Role != models.RoleUser {
		return false
	}
	text := strings.ToLower(last.Content)
	for _, trigger := range orderTriggers {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	return false
}

// parseResponse extracts and strips the sentinel-delimited order block. Order
// details are only surfaced when the extraction instruction was issued; a
// stray block is stripped and discarded. A block that fails to parse leaves
// the raw text untouched.
func parseResponse(response string, triggered bool) models.ChatResult {
	match := orderSpanRe.FindStringSubmatch(response)
	if match == nil {
		return models.ChatResult{Response: response}
	}

	var details models.OrderDetails
	if err := json.Unmarshal([]byte(match[1]), &details); err != nil {
		log.Printf("failed to parse order JSON from reply: %v", err)
		return models.ChatResult{Response: response}
	}

	result := models.ChatResult{
		Response: strings.TrimSpace(orderSpanStrip.ReplaceAllString(response, "")),
	}
	if triggered {
		result.OrderDetails = &details
	}
	return result
}
