// Package assets provides the style blocks and turn templates used to
// render conversations and threads as HTML.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles and templates (go:embed)
//	    ├── FilesystemLoader  - overrides from a directory on disk
//	    └── AssetResolver     - filesystem first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css     # readable, 4chan, cai-chat, bubble-chat, instruct
//	└── templates/
//	    └── {name}.html    # cai-chat, chat, instruct turn templates
//
// Templates are html/template sources executed once per conversation with
// the reversed, pre-rendered turns.
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
