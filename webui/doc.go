// Package webui implements the client-side interaction layer of the site:
// inline content editing for administrators and the gallery image viewer.
// The hosting page, file dialog and network transport sit behind small
// injected interfaces so the controllers can be driven and tested by
// synthetically firing events, without a browser.
package webui
