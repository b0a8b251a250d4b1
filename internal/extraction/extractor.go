package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"shopfront/internal/menu"
	"shopfront/internal/models"
	"shopfront/internal/providers"
)

// ErrMalformedResponse means the model's reply could not be parsed as a JSON
// array of menu items. The whole extraction fails; no partial menu is ever
// returned.
var ErrMalformedResponse = errors.New("menu response is not a valid JSON array")

const (
	extractionTemperature = 0.1
	extractionMaxTokens   = 4000
)

const extractionSystemPrompt = `You are an expert at analyzing restaurant and food menus. Extract ALL menu items from the image and return them in a structured JSON format.`

const extractionInstruction = `Analyze this menu image THOROUGHLY and extract EVERY SINGLE food item listed.

Instructions:
1. Look at ALL sections of the menu (appetizers, specials, main courses, etc.)
2. Extract EVERY item you can see, including duplicates
3. If the menu has multiple columns or sections, extract from ALL of them
4. Do not skip any items - I need the COMPLETE menu

For each item, extract:
- name (exactly as written on the menu)
- price (convert to number, e.g., $10 becomes 10)
- description (if available, otherwise null)
- category (the section it belongs to, e.g., "appetizer", "special menu", "main course")
- size/portion (if mentioned, otherwise null)
- allergen information (if mentioned, otherwise empty array)

Return the data as a JSON array of objects with these fields:
{
  "name": "string",
  "price": number,
  "description": "string or null",
  "category": "string (section name)",
  "size": "string or null",
  "allergens": []
}

Return ONLY the JSON array, no other text or markdown formatting.`

// rawMenuItem mirrors the loose shape the model returns. Price is left
// untyped so string and numeric prices both survive the array parse.
type rawMenuItem struct {
	Name        string      `json:"name"`
	Price       interface{} `json:"price"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Size        string      `json:"size"`
	Allergens   []string    `json:"allergens"`
	Available   *bool       `json:"available"`
}

// Extractor turns a menu image into structured menu items via a single
// multimodal completion call. It holds no per-call state and is safe for
// concurrent use.
type Extractor struct {
	provider providers.Provider
}

// New creates a menu extractor backed by the given provider.
func New(provider providers.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// ExtractMenu converts a base64-encoded menu image into menu items. A reply
// that is not a JSON array fails the whole call with ErrMalformedResponse;
// malformed fields within an item are defaulted, never fatal.
func (e *Extractor) ExtractMenu(ctx context.Context, imageBase64 string) ([]models.MenuItem, error) {
	messages := []providers.Message{
		{Role: "system", Content: extractionSystemPrompt},
		{
			Role:     "user",
			Content:  extractionInstruction,
			ImageURL: "data:image/jpeg;base64," + imageBase64,
		},
	}

	content, err := e.provider.Complete(ctx, messages, providers.Options{
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("menu extraction call failed: %w", err)
	}

	var raw []rawMenuItem
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	items := make([]models.MenuItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, coerceItem(r))
	}
	return items, nil
}

// coerceItem fills every field of a MenuItem from a raw record. Individual
// bad fields are defaulted rather than rejecting the item.
func coerceItem(r rawMenuItem) models.MenuItem {
	name := r.Name
	if name == "" {
		name = "Unnamed Item"
	}

	var category models.Category
	if r.Category != "" {
		category = menu.CategoryFromSection(r.Category)
	} else {
		category = menu.DetectCategory(name, r.Description)
	}

	allergens := r.Allergens
	if allergens == nil {
		allergens = []string{}
	}

	return models.MenuItem{
		Name:        name,
		Price:       coercePrice(r.Price),
		Description: r.Description,
		Category:    category,
		Size:        r.Size,
		Allergens:   allergens,
		Available:   r.Available == nil || *r.Available,
		Seasonal:    menu.DetectSeasonal(name, r.Description),
	}
}

// coercePrice accepts numeric and string prices; anything unparseable is 0.
func coercePrice(v interface{}) float64 {
	switch p := v.(type) {
	case float64:
		if p < 0 {
			return 0
		}
		return p
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), "$"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}

// stripCodeFence removes markdown fencing the model sometimes adds despite
// being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
