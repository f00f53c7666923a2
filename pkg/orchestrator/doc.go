// Package orchestrator wires the fetch → parse → render → bind pipeline that
// turns a published spreadsheet into a landing page. Generate is the single
// entry point; every dependency can be swapped through options.
package orchestrator
