// Package internal contains the implementation packages of the resume engine.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - scanner: lazy, ordered glob enumeration of content files
//   - loader: extension-keyed loaders for documents and data files
//   - schema: structural validation of loaded values and typed decoding
//   - markup: markdown and raw markup rendered through a component registry
//   - node: escaped html element construction on top of templ
//   - content: composable queries over a content store
//   - locale: request-scoped locale binding and negotiation
//   - style: utility class compilation against a theme
//   - ui: named primitives resolved to styled components
//   - icon: icon sets rendered as stroked svg components
//   - resume: the resume model, client and page layout
//   - server: HTTP entry point with live reload
//   - watcher: content file monitoring with debouncing
//   - config, errors, logging, version: ambient support
//
// # Data Flow
//
// A query scans its pattern under the store root (or the locale directory for
// localized queries), loads each match with the loader for its extension,
// validates the value against the query schema and then applies the query
// transforms. Documents render their markdown body through the markup
// registry while loading, so every value a query returns is fully built.
//
// # Concurrency
//
// Registries, themes and the store are immutable after construction and are
// shared freely. The locale lives in the context.Context of each request, so
// concurrent requests never observe each other's locale.
package internal
