// Package render defines the section renderer contract and a registry the
// orchestrator uses to look renderers up by section.
package render
