// Package bridge runs the daemon side of a framed link: it pumps one
// endpoint, polls incoming frames, emits periodic heartbeats, and serves
// link-quality status and metrics over HTTP.
package bridge
