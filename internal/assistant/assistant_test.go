package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shopfront/internal/models"
	"shopfront/internal/providers"
)

// MockProvider is a mock implementation of the completion provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Complete(ctx context.Context, messages []providers.Message, opts providers.Options) (string, error) {
	args := m.Called(ctx, messages, opts)
	return args.String(0), args.Error(1)
}

func testMenu() []models.MenuItem {
	return []models.MenuItem{
		{Name: "Truffle Box", Price: 24.99, Category: models.CategoryDessert, Available: true, Allergens: []string{"milk"}},
		{Name: "Espresso", Price: 3.5, Category: models.CategoryBeverage, Available: true},
		{Name: "Summer Tart", Price: 8, Category: models.CategoryDessert, Available: false, Seasonal: true},
	}
}

func sentMessages(provider *MockProvider) []providers.Message {
	return provider.Calls[0].Arguments.Get(1).([]providers.Message)
}

func TestGenerateSystemPrompt(t *testing.T) {
	prompt := GenerateSystemPrompt("Choco Lane", "12 Main St", testMenu())

	assert.Contains(t, prompt, "Choco Lane")
	assert.Contains(t, prompt, "12 Main St")
	assert.Contains(t, prompt, "CURRENT MENU:")
	assert.Contains(t, prompt, "Desserts:")
	assert.Contains(t, prompt, "- Truffle Box: $24.99 [Contains: milk]")
	assert.Contains(t, prompt, "- Summer Tart: $8 (CURRENTLY UNAVAILABLE)")
	assert.Contains(t, prompt, "at least 30 minutes")
	assert.Contains(t, prompt, "Only recommend items that are marked as available")
}

func TestProcessChatPlainReply(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		"We open at 9am every day!", nil)

	messages := []models.ChatMessage{{Role: models.RoleUser, Content: "When do you open?"}}
	result, err := New(provider).ProcessChat(context.Background(), messages, "Choco Lane", "12 Main St", testMenu())

	require.NoError(t, err)
	assert.Equal(t, "We open at 9am every day!", result.Response)
	assert.Nil(t, result.OrderDetails)

	// No trigger word: the order-extraction instruction must not be sent.
	sent := sentMessages(provider)
	require.Len(t, sent, 2)
	assert.Equal(t, "system", sent[0].Role)
	assert.Equal(t, "user", sent[1].Role)
	for _, msg := range sent {
		assert.NotContains(t, msg.Content, "ORDER_JSON_START")
	}
}

func TestProcessChatOrderFlow(t *testing.T) {
	reply := `Great, two Truffle Boxes coming up!

ORDER_JSON_START
{
  "customerName": "Sam",
  "items": [{"itemName": "Truffle Box", "quantity": 2, "price": 24.99}],
  "pickupTime": "2026-09-02T10:00:00Z"
}
ORDER_JSON_END`

	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(reply, nil)

	messages := []models.ChatMessage{
		{Role: models.RoleUser, Content: "I'd like to order 2 truffle boxes, pickup tomorrow"},
	}
	result, err := New(provider).ProcessChat(context.Background(), messages, "Choco Lane", "12 Main St", testMenu())
	require.NoError(t, err)

	// The extraction instruction was appended as a trailing system message.
	sent := sentMessages(provider)
	require.Len(t, sent, 3)
	assert.Equal(t, "system", sent[2].Role)
	assert.Contains(t, sent[2].Content, "ORDER_JSON_START")

	opts := provider.Calls[0].Arguments.Get(2).(providers.Options)
	assert.Equal(t, 0.7, opts.Temperature)
	assert.Equal(t, 1000, opts.MaxTokens)

	require.NotNil(t, result.OrderDetails)
	require.Len(t, result.OrderDetails.Items, 1)
	assert.Equal(t, "Truffle Box", result.OrderDetails.Items[0].ItemName)
	assert.Equal(t, 2, result.OrderDetails.Items[0].Quantity)
	assert.Equal(t, 24.99, result.OrderDetails.Items[0].Price)

	assert.Equal(t, "Great, two Truffle Boxes coming up!", result.Response)
	assert.NotContains(t, result.Response, "ORDER_JSON_START")
	assert.NotContains(t, result.Response, "ORDER_JSON_END")
}

func TestProcessChatTriggerWords(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"I want to ORDER a cake", true},
		{"can I buy this?", true},
		{"when can I pick up?", true},
		{"what's in the truffle box?", false},
		{"do you have gift wrapping?", false},
	}

	for _, tt := range tests {
		messages := []models.ChatMessage{{Role: models.RoleUser, Content: tt.content}}
		assert.Equal(t, tt.want, wantsOrderExtraction(messages), "content %q", tt.content)
	}
}

func TestProcessChatTriggerOnlyOnFinalUserMessage(t *testing.T) {
	// An earlier order mention doesn't count; only the final turn is checked.
	messages := []models.ChatMessage{
		{Role: models.RoleUser, Content: "I'd like to order something"},
		{Role: models.RoleAssistant, Content: "Sure, what would you like?"},
		{Role: models.RoleUser, Content: "actually, just tell me about allergens"},
	}
	assert.False(t, wantsOrderExtraction(messages))

	// A final assistant turn never triggers, whatever it says.
	messages = append(messages, models.ChatMessage{Role: models.RoleAssistant, Content: "you can order anytime"})
	assert.False(t, wantsOrderExtraction(messages))

	assert.False(t, wantsOrderExtraction(nil))
}

func TestProcessChatIgnoresStraySentinelWithoutTrigger(t *testing.T) {
	reply := "Here you go. ORDER_JSON_START {\"items\": [{\"itemName\": \"Espresso\", \"quantity\": 1, \"price\": 3.5}]} ORDER_JSON_END"
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(reply, nil)

	messages := []models.ChatMessage{{Role: models.RoleUser, Content: "tell me about espresso"}}
	result, err := New(provider).ProcessChat(context.Background(), messages, "Choco Lane", "12 Main St", testMenu())

	require.NoError(t, err)
	assert.Nil(t, result.OrderDetails)
	assert.NotContains(t, result.Response, "ORDER_JSON_START")
	assert.NotContains(t, result.Response, "ORDER_JSON_END")
}

func TestProcessChatBadOrderJSONDegradesToPlainText(t *testing.T) {
	reply := "Sure!\n\nORDER_JSON_START\n{not valid json\nORDER_JSON_END"
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(reply, nil)

	messages := []models.ChatMessage{{Role: models.RoleUser, Content: "I'll order one"}}
	result, err := New(provider).ProcessChat(context.Background(), messages, "Choco Lane", "12 Main St", testMenu())

	require.NoError(t, err)
	assert.Nil(t, result.OrderDetails)
	assert.Equal(t, reply, result.Response)
}

func TestProcessChatProviderFailure(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		"", errors.New("connection reset"))

	messages := []models.ChatMessage{{Role: models.RoleUser, Content: "hello"}}
	_, err := New(provider).ProcessChat(context.Background(), messages, "Choco Lane", "12 Main St", testMenu())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion failed")
}

func TestProcessChatPreservesHistoryOrder(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("ok", nil)

	messages := []models.ChatMessage{
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleAssistant, Content: "second"},
		{Role: models.RoleUser, Content: "third"},
	}
	_, err := New(provider).ProcessChat(context.Background(), messages, "Choco Lane", "12 Main St", testMenu())
	require.NoError(t, err)

	sent := sentMessages(provider)
	require.Len(t, sent, 4)
	assert.True(t, strings.Contains(sent[0].Content, "CURRENT MENU:"))
	assert.Equal(t, "first", sent[1].Content)
	assert.Equal(t, "second", sent[2].Content)
	assert.Equal(t, "third", sent[3].Content)
}

func TestOrderDetailsTotal(t *testing.T) {
	details := models.OrderDetails{
		Items: []models.OrderItemDetail{
			{ItemName: "Truffle Box", Quantity: 2, Price: 24.99},
			{ItemName: "Espresso", Quantity: 1, Price: 3.5},
		},
	}
	assert.InDelta(t, 53.48, details.Total(), 0.001)

	details.TotalAmount = 60
	assert.Equal(t, 60.0, details.Total())
}
