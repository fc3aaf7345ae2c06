// Package server serves a document store over HTTP.
//
// Documents are exchanged in space notation by default. Reads may ask for
// another format with the format query parameter or the Accept header.
//
//	GET    /docs                      list keys
//	GET    /docs/{key}                read, with path=, filter= and format=
//	PUT    /docs/{key}                replace
//	PATCH  /docs/{key}                apply a diff, see api.RequestBody
//	DELETE /docs/{key}                remove
//	POST   /docs/{key}/order          reorder with an order document
//	GET    /docs/{key}/diff/{other}   diff, with order=, cud= or text=
//	GET    /docs/{key}/watch          stream changes
//	GET    /metrics                   prometheus metrics
//
// # Related Packages
//
//   - github.com/signadot/space/system/docd/api - wire types
//   - github.com/signadot/space/system/docd/storage - storage backends
package server
