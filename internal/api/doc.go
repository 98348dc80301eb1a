// Package api exposes the record service over HTTP with gin.
//
// Routes:
//
//	POST   /applications             create a record
//	GET    /applications/all         every record, id order
//	GET    /applications             filtered, sorted, paginated list
//	GET    /applications/stats       total and count per status
//	GET    /applications/export      filtered list as CSV, all pages
//	POST   /applications/compact     renumber ids to 1..N
//	GET    /applications/:id         one record
//	PUT    /applications/:id         overwrite status
//	DELETE /applications/:id         delete and renumber
//	GET    /health                   liveness
//
// Error bodies are {"detail": "..."}. Validation failures map to 400,
// unknown ids to 404 and store failures to 503.
package api
