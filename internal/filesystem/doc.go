// Package filesystem provides filesystem operations hardened for
// NFS-backed media volumes.
//
// Media directories are commonly network mounts, where a file handle
// can go stale (ESTALE) when the export changes underneath the client.
// Stale handles are transient: re-issuing the operation resolves the
// path again and usually succeeds. StatWithRetry and OpenWithRetry
// wrap the corresponding os calls with bounded exponential backoff for
// exactly that error class; every other error fails fast.
package filesystem
