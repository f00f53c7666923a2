// Package binder writes settings values into a page: text placeholders,
// phone and email links, the hero image, and the floating messaging link.
package binder
