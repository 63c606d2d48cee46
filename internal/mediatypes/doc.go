// Package mediatypes defines supported media file types and their MIME
// type mappings.
//
// MIME types are resolved from file extensions only; no content sniffing
// is performed. The gateway's optimization policy is keyed by MIME type
// and by MIME major type (e.g. "video"), so this package also provides
// the major-type split.
package mediatypes
