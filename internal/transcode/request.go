package transcode

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"media-gateway/internal/profile"
)

// ErrInvalidParameter indicates a malformed stream-selector query parameter.
var ErrInvalidParameter = errors.New("invalid parameter")

// Request describes a single transcoding request. It is built once at
// the HTTP boundary and never mutated afterwards.
//
// A nil Profile means no re-encoding: the source streams are copied
// into the output container (remux). Selector fields are honored either
// way. A nil SubtitleStream means subtitles are dropped, not "all"; this
// asymmetry from video/audio is deliberate.
type Request struct {
	SourcePath     string
	Profile        *profile.EncodingProfile
	VideoStream    *int
	AudioStream    *int
	SubtitleStream *int
}

// ParseRequest validates query parameters into a Request.
//
// Recognized parameters:
//   - resolution: one of the profile table labels
//   - video, audio, subtitle: non-negative stream indexes
//
// Returns profile.ErrUnknownProfile for an unrecognized resolution and
// ErrInvalidParameter for a selector that does not parse as a
// non-negative integer. Absent parameters are valid and distinct from
// zero.
func ParseRequest(sourcePath string, query url.Values) (*Request, error) {
	req := &Request{SourcePath: sourcePath}

	// Presence, not value, decides whether a profile was requested:
	// resolution= is a present-but-invalid label, not an absent one.
	if query.Has("resolution") {
		p, err := profile.Lookup(query.Get("resolution"))
		if err != nil {
			return nil, err
		}
		req.Profile = &p
	}

	var err error
	if req.VideoStream, err = parseStreamIndex(query, "video"); err != nil {
		return nil, err
	}
	if req.AudioStream, err = parseStreamIndex(query, "audio"); err != nil {
		return nil, err
	}
	if req.SubtitleStream, err = parseStreamIndex(query, "subtitle"); err != nil {
		return nil, err
	}

	return req, nil
}

// parseStreamIndex extracts an optional non-negative integer parameter.
// Returns nil when the parameter is absent.
func parseStreamIndex(query url.Values, name string) (*int, error) {
	if !query.Has(name) {
		return nil, nil
	}
	raw := query.Get(name)
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s=%q must be a non-negative integer", ErrInvalidParameter, name, raw)
	}
	return &idx, nil
}
