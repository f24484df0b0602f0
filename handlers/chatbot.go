package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"dwelldash/models"
)

type ChatbotController struct{}

func NewChatbotController() *ChatbotController {
	return &ChatbotController{}
}

type faqEntry struct {
	keywords []string
	answer   string
}

var faqEntries = []faqEntry{
	{
		keywords: []string{"hello", "hi", "hey"},
		answer:   "Hi! I'm the DwellDash assistant. Ask me about rent, deposits, bookings, food or contacting owners.",
	},
	{
		keywords: []string{"price", "rent", "cost", "budget"},
		answer:   "Listed prices are monthly rents set by the owner. Use the price filters on the search page to stay within your budget.",
	},
	{
		keywords: []string{"deposit", "security", "advance"},
		answer:   "Most owners ask for a refundable security deposit of one to two months' rent. The exact amount is mentioned in the listing description.",
	},
	{
		keywords: []string{"book", "booking", "visit", "schedule"},
		answer:   "Open a listing and use the contact details to arrange a visit with the owner. DwellDash does not charge any booking fee.",
	},
	{
		keywords: []string{"food", "meal", "mess", "tiffin"},
		answer:   "PGs and hostels that include meals list it under amenities. Check the amenities section of the listing.",
	},
	{
		keywords: []string{"owner", "contact", "phone"},
		answer:   "Owner contact details are shown on the listing page once you are signed in.",
	},
	{
		keywords: []string{"favorite", "favourite", "save", "shortlist"},
		answer:   "Tap the heart on any listing to save it. Your shortlist lives under Favorites in your profile.",
	},
	{
		keywords: []string{"list", "post", "advertise"},
		answer:   "Register as an owner and use the Add Property page to publish a listing. It goes live immediately.",
	},
}

const fallbackReply = "Sorry, I didn't catch that. Try asking about rent, deposits, bookings, food, or how to list a property."

func (cc *ChatbotController) Chat(c echo.Context) error {
	var req models.ChatbotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message is required"})
	}
	return c.JSON(http.StatusOK, models.ChatbotResponse{Reply: matchFAQ(req.Message)})
}

// matchFAQ does case-insensitive substring matching against the keyword
// table; the first matching entry wins.
func matchFAQ(message string) string {
	msg := strings.ToLower(message)
	for _, entry := range faqEntries {
		for _, keyword := range entry.keywords {
			if strings.Contains(msg, keyword) {
				return entry.answer
			}
		}
	}
	return fallbackReply
}
