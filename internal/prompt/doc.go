// Package prompt runs the interactive questions behind `sheetsite-cli init`.
package prompt
