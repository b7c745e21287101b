package web

import "embed"

// TemplatesFS embeds the page and dashboard fragment templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds static assets (css/js).
//
//go:embed static/*
var StaticFS embed.FS
