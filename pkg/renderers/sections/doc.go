// Package sections renders the repeated-card sections of the site (services,
// team, service areas, FAQ, reviews, and the "why us" differentiators) from
// spreadsheet rows into HTML fragments.
//
// Every renderer is a pure function of its rows and the embedded templates.
// Missing fields fall back to empty strings or a named default (the service
// icon, the "why us" placeholder title and description, five rating stars).
// Interactive behaviour (the FAQ accordion and the staggered card reveal) is
// declared through classes and data attributes and driven in the browser by
// the runtime asset exposed from the module root.
package sections
