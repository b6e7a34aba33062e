package web

import "embed"

// StaticFS holds the embedded static assets (stylesheet).
//
//go:embed static/*
var StaticFS embed.FS

// guidanceMarkdown is the password advice shown beside the check form.
//
//go:embed content/guidance.md
var guidanceMarkdown string
