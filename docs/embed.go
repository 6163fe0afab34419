// Copyright © 2024 The Brook authors

// Package docs embeds the brook language guide for use by the CLI.
package docs

import _ "embed"

//go:embed lang.md
var LangGuide string
