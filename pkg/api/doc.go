// Package api exposes an items.Store over HTTP.
//
// Item endpoints:
//
//	POST   /api/items       create an item from a JSON object (201)
//	GET    /api/items       list items in creation order, optional ?filter=<expr>
//	GET    /api/items/{id}  fetch one item
//	PUT    /api/items/{id}  shallow-merge a JSON object into an item
//	DELETE /api/items/{id}  remove an item and return it
//
// Operational endpoints:
//
//	GET  /health        liveness
//	GET  /metrics       Prometheus text exposition
//	GET  /admin/stats   store operation counters
//	POST /admin/reset   restore seed data and restart identifiers at 1
//
// Every failure is rendered as {"message": "..."}; a missing item is always
// exactly {"message":"Item not found"} with status 404.
package api
