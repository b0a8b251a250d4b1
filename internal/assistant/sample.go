package assistant

import "shopfront/internal/models"

// SampleConversation returns a canned conversation for the chat test page.
func SampleConversation() []models.ChatMessage {
	return []models.ChatMessage{
		{
			Role:    models.RoleUser,
			Content: "Hi, I need some chocolates for my wife's birthday tomorrow",
		},
		{
			Role: models.RoleAssistant,
			Content: `Hello! How wonderful that you're choosing chocolates for your wife's birthday! I'd be delighted to help you find the perfect selection.

To help me recommend the best options, could you tell me:
- Does she prefer dark, milk, or white chocolate?
- Are there any flavors she particularly loves (like raspberry, caramel, or nuts)?
- Would you prefer an elegant gift box or individual selections?
- What's your budget range?

We have some beautiful options that would make a memorable birthday gift!`,
		},
		{
			Role:    models.RoleUser,
			Content: "She loves dark chocolate, especially with fruit flavors. I'd like a nice gift box, maybe around $40-50?",
		},
	}
}
