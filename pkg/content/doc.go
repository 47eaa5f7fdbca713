// Package content implements content selectors for view slot projection.
//
// A Selector sits at a comment marker in a host template and collects the
// nodes of projected views that match its expression. Each view contributes
// one group (possibly empty) so group indices line up with the slot's child
// indices.
//
// # Expressions
//
// Expressions are a small subset of CSS selectors: a tag name, #id, .class,
// [attr] and [attr=value], combined into compound selectors and separated by
// commas. An empty expression or "*" selects everything, including text.
//
//	header, _ := content.NewSelector(headerMarker, "h1, .title")
//	rest, _ := content.NewSelector(bodyMarker, "")
//	slot.InstallContentSelectors(content.Selectors(header, rest))
package content
