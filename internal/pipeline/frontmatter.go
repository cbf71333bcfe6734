package pipeline

import (
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"
)

// FrontMatter holds per-document overrides for a page's display text.
// Empty fields leave the page descriptor's values in place.
type FrontMatter struct {
	Title        string `yaml:"title"`
	HeroTitle    string `yaml:"heroTitle"`
	HeroSubtitle string `yaml:"subtitle"`
}

// yamlFrontMatter only recognizes "---" delimited YAML; TOML and JSON
// front matter are left in the body.
var yamlFrontMatter = frontmatter.NewFormat("---", "---", func(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
})

// SplitFrontMatter separates a leading YAML front matter block from the
// markdown body. The block is only stripped when it sets at least one
// recognized field. Otherwise the leading "---" is a horizontal rule and
// the document is returned unchanged with an empty FrontMatter, even when
// the lines between the rules happen to parse as YAML.
func SplitFrontMatter(source string) (FrontMatter, string) {
	var fm FrontMatter
	if !strings.HasPrefix(source, "---") {
		return fm, source
	}

	body, err := frontmatter.Parse(strings.NewReader(source), &fm, yamlFrontMatter)
	if err != nil || fm == (FrontMatter{}) {
		return FrontMatter{}, source
	}
	return fm, string(body)
}
