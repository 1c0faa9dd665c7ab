package service

import (
	"fmt"
	"strings"

	"github.com/droidbay/catalog/cmd/catalog/models"
)

// Fallback composes a deterministic reply from live catalog data when the
// generation service is unavailable or refuses. Rules are checked in order
// and the first keyword match wins, so a greeting beats a recommendation
// even when both keywords appear.
func Fallback(query string, apps []models.App, categories []models.Category) string {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "hello") || strings.Contains(q, "hi"):
		return "Hello! I'm your Android App Store assistant. I can help you find apps, answer questions about the store, or provide recommendations. What can I help you with today?"

	case strings.Contains(q, "recommend") || strings.Contains(q, "suggest"):
		games := filterByCategory(apps, "Games")
		productivity := filterByCategory(apps, "Productivity")

		if strings.Contains(q, "game") && len(games) > 0 {
			return fmt.Sprintf("I recommend %s - %s", games[0].Name, games[0].Description)
		}
		if strings.Contains(q, "productivity") && len(productivity) > 0 {
			return fmt.Sprintf("For productivity, I suggest %s - %s", productivity[0].Name, productivity[0].Description)
		}
		return fmt.Sprintf("I have %d apps available. Some popular ones include %s. What type of app are you looking for?",
			len(apps), strings.Join(appNames(apps, 3), ", "))

	case strings.Contains(q, "categories") || strings.Contains(q, "category"):
		names := make([]string, 0, len(categories))
		for _, cat := range categories {
			names = append(names, cat.Name)
		}
		return fmt.Sprintf("We have these categories: %s. Which one interests you?", strings.Join(names, ", "))

	case strings.Contains(q, "apps"):
		return fmt.Sprintf("We currently have %d apps in our store. You can browse them by category or search for specific apps.", len(apps))

	default:
		return "I'm here to help you with the Android App Store! You can ask me about available apps, categories, or recommendations. What would you like to know?"
	}
}

func filterByCategory(apps []models.App, category string) []models.App {
	matches := make([]models.App, 0)
	for _, app := range apps {
		if app.Category == category {
			matches = append(matches, app)
		}
	}
	return matches
}

func appNames(apps []models.App, limit int) []string {
	if len(apps) < limit {
		limit = len(apps)
	}
	names := make([]string, 0, limit)
	for _, app := range apps[:limit] {
		names = append(names, app.Name)
	}
	return names
}
