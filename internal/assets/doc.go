// Package assets provides the HTML page templates pages are rendered into.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in templates (print, cards)
//	    ├── FilesystemLoader  - templates from a custom directory
//	    └── AssetResolver     - custom first, embedded as fallback
//
// A custom directory only needs the templates it overrides:
//
//	{basePath}/
//	└── templates/
//	    └── {name}.html
//
// Templates are text/template sources executed with pipeline.PageData.
//
// # Security
//
// Template names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
