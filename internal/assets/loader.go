package assets

// AssetLoader defines the contract for loading page templates.
// Implementations may load from embedded assets, a directory on disk, etc.
type AssetLoader interface {
	// LoadTemplate loads a page template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// Built-in page template names.
const (
	TemplatePrint = "print" // single column, print-friendly
	TemplateCards = "cards" // card grid, slate accents
)

// TemplateNames lists the built-in page templates.
var TemplateNames = []string{TemplatePrint, TemplateCards}
