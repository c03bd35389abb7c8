// Package view renders HTML pages as templ components. Run `templ generate`
// after editing a .templ file.
package view

// datastarScript is the client bundle that upgrades the add-idea form to a
// server-sent-events round trip. Pages work without it.
const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// FlashKind distinguishes success notices from errors.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot status message shown after a redirect.
type Flash struct {
	Kind    FlashKind
	Message string
}
