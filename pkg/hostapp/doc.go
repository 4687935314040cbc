// Package hostapp probes the host app installation and controls its
// process. Everything here is deliberately best-effort: lookup errors
// degrade to false and launch/terminate failures are swallowed, because
// the readiness probe is the real signal of success.
package hostapp
