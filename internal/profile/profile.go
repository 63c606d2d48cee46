package profile

import (
	"errors"
	"fmt"
)

// ErrUnknownProfile indicates that a resolution label is not in the table.
var ErrUnknownProfile = errors.New("unknown resolution profile")

// EncodingProfile describes the target encoding for a resolution label.
// Profiles are immutable; the table is populated once at init and never
// mutated.
type EncodingProfile struct {
	Label        string
	VideoBitrate string
	AudioBitrate string
	MaxFPS       int
	Height       int
}

// Bitrate map for all supported resolution labels. The exact values are
// part of the external contract: they determine the characteristics of
// transcoded output.
var profiles = map[string]EncodingProfile{
	"240p":    {Label: "240p", VideoBitrate: "300k", AudioBitrate: "32k", MaxFPS: 30, Height: 240},
	"360p":    {Label: "360p", VideoBitrate: "500k", AudioBitrate: "48k", MaxFPS: 30, Height: 360},
	"480p":    {Label: "480p", VideoBitrate: "1000k", AudioBitrate: "64k", MaxFPS: 30, Height: 480},
	"720p":    {Label: "720p", VideoBitrate: "1500k", AudioBitrate: "128k", MaxFPS: 30, Height: 720},
	"720p60":  {Label: "720p60", VideoBitrate: "2250k", AudioBitrate: "128k", MaxFPS: 60, Height: 720},
	"1080p":   {Label: "1080p", VideoBitrate: "3000k", AudioBitrate: "192k", MaxFPS: 30, Height: 1080},
	"1080p60": {Label: "1080p60", VideoBitrate: "4500k", AudioBitrate: "192k", MaxFPS: 60, Height: 1080},
	"1440p":   {Label: "1440p", VideoBitrate: "6000k", AudioBitrate: "320k", MaxFPS: 30, Height: 1440},
	"1440p60": {Label: "1440p60", VideoBitrate: "9000k", AudioBitrate: "320k", MaxFPS: 60, Height: 1440},
	"2160p":   {Label: "2160p", VideoBitrate: "13000k", AudioBitrate: "448k", MaxFPS: 30, Height: 2160},
	"2160p60": {Label: "2160p60", VideoBitrate: "20000k", AudioBitrate: "448k", MaxFPS: 60, Height: 2160},
}

// Lookup returns the encoding profile for a resolution label.
// Returns ErrUnknownProfile if the label is not in the table.
func Lookup(label string) (EncodingProfile, error) {
	p, ok := profiles[label]
	if !ok {
		return EncodingProfile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, label)
	}
	return p, nil
}

// Labels returns all supported resolution labels. The order is not
// defined.
func Labels() []string {
	labels := make([]string, 0, len(profiles))
	for label := range profiles {
		labels = append(labels, label)
	}
	return labels
}
