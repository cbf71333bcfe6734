package pipeline

import "context"

// CardsConverter converts markdown in-process with the line classifier.
// It only understands the subset documented on Classify.
type CardsConverter struct {
	Inline InlineFormatter
}

// NewCardsConverter creates a CardsConverter. escape enables HTML escaping
// of inline text before span rewriting.
func NewCardsConverter(escape bool) *CardsConverter {
	return &CardsConverter{Inline: InlineFormatter{Escape: escape}}
}

// ToFragment classifies markdown and renders the resulting blocks.
func (c *CardsConverter) ToFragment(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return RenderBlocks(Classify(markdown), c.Inline), nil
}
