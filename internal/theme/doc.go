// Package theme holds the widget's light and dark palettes and applies them
// to a page document.
//
// Integration example:
//
//	sw := theme.NewSwitcher()
//	next := sw.Toggle()
//	page.Document = sw.Document()
//	page.ToggleLabel = sw.Label()
//	_ = next.Name
package theme
