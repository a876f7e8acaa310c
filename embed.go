package chatterbox

import "embed"

// TemplateFS contains the embedded HTML templates used for rendering the
// chat widget. Pages hold full documents; partials hold per-message
// fragments.
//
//go:embed templates/*
var TemplateFS embed.FS

// StaticFS contains the embedded static assets: the stylesheet and the small
// browser glue that submits prompts and applies SSE frames.
//
//go:embed static/*
var StaticFS embed.FS
