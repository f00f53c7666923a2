// Package sheet holds the spreadsheet-facing data model: section identifiers,
// the immutable section configuration, content sources and loader contracts,
// and the tabular parser and key/value reducer that turn exported tab separated
// text into rows and settings maps.
package sheet
