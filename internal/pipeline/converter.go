package pipeline

import (
	"context"
	"errors"
)

// Sentinel errors for fragment conversion.
var (
	// ErrConverterFailed indicates the converter ran but could not produce a fragment.
	ErrConverterFailed = errors.New("markdown conversion failed")

	// ErrConverterNotFound indicates an external converter binary is not installed.
	ErrConverterNotFound = errors.New("converter not found")

	// ErrUnknownConverter indicates an unsupported converter kind.
	ErrUnknownConverter = errors.New("unknown converter")
)

// FragmentConverter turns markdown into an HTML fragment: body content
// without <html>, <head> or <body> wrappers.
type FragmentConverter interface {
	ToFragment(ctx context.Context, markdown string) (string, error)
}

// Converter kinds accepted by configuration.
const (
	ConverterPandoc   = "pandoc"
	ConverterCards    = "cards"
	ConverterGoldmark = "goldmark"
)

// ConverterKinds lists the supported converter kinds.
var ConverterKinds = []string{ConverterPandoc, ConverterCards, ConverterGoldmark}

// Compile-time interface checks.
var (
	_ FragmentConverter = (*PandocConverter)(nil)
	_ FragmentConverter = (*CardsConverter)(nil)
	_ FragmentConverter = (*GoldmarkConverter)(nil)
)
