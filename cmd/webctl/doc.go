// Package main is webctl, an offline maintenance tool for the browser's
// content cache. It opens the same store the server uses.
//
// Usage:
//
//	webctl seed ./records.yaml
//	webctl inspect --json
//	webctl export -f toml > records.toml
//	webctl search faceloko
//	webctl resolve https://facelook.example/john
//	webctl purge
package main
