package optimize

import (
	"strconv"
	"strings"

	"media-gateway/internal/mediatypes"
)

// Decision is the outcome of routing a file through the gate.
type Decision int

const (
	// PassThrough serves the file unmodified.
	PassThrough Decision = iota
	// ImagePipeline routes to the synchronous image optimizer.
	ImagePipeline
	// VideoPipeline routes to the streaming video transcoder.
	VideoPipeline
)

// String returns the decision name for logging.
func (d Decision) String() string {
	switch d {
	case ImagePipeline:
		return "image"
	case VideoPipeline:
		return "video"
	default:
		return "pass-through"
	}
}

// Policy maps MIME types and MIME major types to whether just-in-time
// optimization is enabled. A major-type entry ("video") acts as a
// wildcard for all its subtypes unless an exact entry overrides it.
type Policy map[string]bool

// ParsePolicy parses the JIT_OPTIMIZATION environment value: a comma
// separated list of MIME types or major types, each optionally suffixed
// with =true/=false. A bare entry enables optimization for that key.
//
//	JIT_OPTIMIZATION="video,image/png,video/webm=false"
func ParsePolicy(raw string) Policy {
	policy := make(Policy)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value := entry, true
		if idx := strings.IndexByte(entry, '='); idx != -1 {
			key = strings.TrimSpace(entry[:idx])
			parsed, err := strconv.ParseBool(strings.TrimSpace(entry[idx+1:]))
			if err != nil {
				continue
			}
			value = parsed
		}
		policy[key] = value
	}
	return policy
}

// Enabled reports whether optimization is enabled for a MIME type.
// An exact entry wins over the major-type wildcard.
func (p Policy) Enabled(mime string) bool {
	if v, ok := p[mime]; ok {
		return v
	}
	if v, ok := p[mediatypes.MajorType(mime)]; ok {
		return v
	}
	return false
}

// Gate routes a requested file to the image pipeline, the video
// pipeline, or plain pass-through, based on its MIME type and the
// deployment's optimization policy. The policy is injected at
// construction and never mutated, so the gate is safe for concurrent
// use.
type Gate struct {
	policy Policy
}

// NewGate creates a gate with the given policy.
func NewGate(policy Policy) *Gate {
	return &Gate{policy: policy}
}

// Route decides how to serve the file at path. Unrecognized MIME types
// and types the policy does not enable fall through to pass-through.
func (g *Gate) Route(path string) Decision {
	mime, ok := mediatypes.TypeByPath(path)
	if !ok {
		return PassThrough
	}
	if !g.policy.Enabled(mime) {
		return PassThrough
	}
	switch mediatypes.MajorType(mime) {
	case "image":
		return ImagePipeline
	case "video":
		return VideoPipeline
	default:
		return PassThrough
	}
}
