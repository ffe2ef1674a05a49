// Package metric manages prometheus metric registration for conduit
// services.
//
// A Registry owns a private prometheus registry, the core request metrics
// shared by every instrumented service, and a namespaced map of
// caller-registered collectors with duplicate detection. Middleware
// (middleware/metrics) records into the core metrics; applications expose
// the underlying prometheus registry however they see fit - conduit itself
// deliberately ships no HTTP handler.
package metric
