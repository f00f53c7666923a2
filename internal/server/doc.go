// Package server exposes generated pages over HTTP: every GET / renders the
// site afresh from the spreadsheet, and /runtime/ serves the browser script.
package server
