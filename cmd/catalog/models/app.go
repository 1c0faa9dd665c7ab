package models

import "fmt"

// App represents a catalog entry for a downloadable package.
// Maps to: apps collection
type App struct {
	// Numeric-string ID assigned at creation (max existing + 1, "1" when empty)
	ID string `json:"id"`

	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Size        string   `json:"size"`
	Downloads   string   `json:"downloads"`
	Rating      float64  `json:"rating"`
	Icon        string   `json:"icon"`
	Screenshots []string `json:"screenshots"`
	Developer   string   `json:"developer"`
	Price       string   `json:"price"`

	// ApkFilename is nil until an APK upload succeeds. Once set it names a
	// file in the artifact store; metadata updates never touch it.
	ApkFilename *string `json:"apk_filename"`
}

// Category represents a browsing category.
// Immutable after seeding; there is no update or delete route.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AppInput carries the full field set for create and replace operations.
// Every field is required verbatim from the caller; pointers distinguish
// a missing field from a zero value.
type AppInput struct {
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Version     *string   `json:"version"`
	Size        *string   `json:"size"`
	Downloads   *string   `json:"downloads"`
	Rating      *float64  `json:"rating"`
	Icon        *string   `json:"icon"`
	Screenshots *[]string `json:"screenshots"`
	Developer   *string   `json:"developer"`
	Price       *string   `json:"price"`
}

// Validate returns an error naming the first missing field
func (in *AppInput) Validate() error {
	required := []struct {
		name string
		ok   bool
	}{
		{"name", in.Name != nil},
		{"category", in.Category != nil},
		{"description", in.Description != nil},
		{"version", in.Version != nil},
		{"size", in.Size != nil},
		{"downloads", in.Downloads != nil},
		{"rating", in.Rating != nil},
		{"icon", in.Icon != nil},
		{"screenshots", in.Screenshots != nil},
		{"developer", in.Developer != nil},
		{"price", in.Price != nil},
	}

	for _, field := range required {
		if !field.ok {
			return fmt.Errorf("missing required field: %s", field.name)
		}
	}

	return nil
}

// Apply copies all input fields onto app, leaving ID and ApkFilename alone
func (in *AppInput) Apply(app *App) {
	app.Name = *in.Name
	app.Category = *in.Category
	app.Description = *in.Description
	app.Version = *in.Version
	app.Size = *in.Size
	app.Downloads = *in.Downloads
	app.Rating = *in.Rating
	app.Icon = *in.Icon
	app.Screenshots = *in.Screenshots
	app.Developer = *in.Developer
	app.Price = *in.Price
}
