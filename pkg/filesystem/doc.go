// Package filesystem provides the FS abstraction used by the probes,
// the addon installer, and the bootstrap orchestrator. Production code
// uses the OS implementation; tests substitute an afero-backed one so
// installation state can be assembled in memory.
package filesystem
