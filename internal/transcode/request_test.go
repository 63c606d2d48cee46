package transcode

import (
	"errors"
	"net/url"
	"testing"

	"media-gateway/internal/profile"
)

func TestParseRequestNoParameters(t *testing.T) {
	req, err := ParseRequest("/media/video.mp4", url.Values{})
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.SourcePath != "/media/video.mp4" {
		t.Errorf("SourcePath = %q, want %q", req.SourcePath, "/media/video.mp4")
	}
	if req.Profile != nil {
		t.Errorf("Profile = %+v, want nil", req.Profile)
	}
	if req.VideoStream != nil || req.AudioStream != nil || req.SubtitleStream != nil {
		t.Error("expected all stream selectors to be nil")
	}
}

func TestParseRequestResolution(t *testing.T) {
	query := url.Values{"resolution": {"720p"}}
	req, err := ParseRequest("/media/video.mp4", query)
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.Profile == nil {
		t.Fatal("Profile is nil, want 720p")
	}
	if req.Profile.Label != "720p" || req.Profile.Height != 720 {
		t.Errorf("Profile = %+v, want 720p/720", req.Profile)
	}
}

func TestParseRequestEmptyResolution(t *testing.T) {
	// resolution= is present but names no profile; it must reject, not
	// fall through to the remux path.
	query := url.Values{"resolution": {""}}
	_, err := ParseRequest("/media/video.mp4", query)
	if !errors.Is(err, profile.ErrUnknownProfile) {
		t.Errorf("error = %v, want ErrUnknownProfile", err)
	}
}

func TestParseRequestUnknownResolution(t *testing.T) {
	tests := []string{"719p", "720", "4k", "720P", " 720p"}

	for _, label := range tests {
		query := url.Values{"resolution": {label}}
		_, err := ParseRequest("/media/video.mp4", query)
		if !errors.Is(err, profile.ErrUnknownProfile) {
			t.Errorf("resolution=%q: error = %v, want ErrUnknownProfile", label, err)
		}
	}
}

func TestParseRequestStreamSelectors(t *testing.T) {
	query := url.Values{
		"video":    {"1"},
		"audio":    {"2"},
		"subtitle": {"0"},
	}
	req, err := ParseRequest("/media/video.mp4", query)
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.VideoStream == nil || *req.VideoStream != 1 {
		t.Errorf("VideoStream = %v, want 1", req.VideoStream)
	}
	if req.AudioStream == nil || *req.AudioStream != 2 {
		t.Errorf("AudioStream = %v, want 2", req.AudioStream)
	}
	if req.SubtitleStream == nil || *req.SubtitleStream != 0 {
		t.Errorf("SubtitleStream = %v, want 0", req.SubtitleStream)
	}
}

func TestParseRequestZeroDistinctFromAbsent(t *testing.T) {
	// subtitle=0 selects the first subtitle stream; an absent subtitle
	// parameter drops subtitles. The two must not collapse.
	withZero, err := ParseRequest("/media/v.mkv", url.Values{"subtitle": {"0"}})
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	absent, err := ParseRequest("/media/v.mkv", url.Values{})
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if withZero.SubtitleStream == nil {
		t.Error("subtitle=0 should produce a non-nil selector")
	}
	if absent.SubtitleStream != nil {
		t.Error("absent subtitle should produce a nil selector")
	}
}

func TestParseRequestInvalidSelectors(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
	}{
		{"negative video", url.Values{"video": {"-1"}}},
		{"non-numeric audio", url.Values{"audio": {"first"}}},
		{"empty subtitle", url.Values{"subtitle": {""}}},
		{"float video", url.Values{"video": {"1.5"}}},
		{"overflow-ish audio", url.Values{"audio": {"1e3"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest("/media/video.mp4", tt.query)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestParseRequestCombined(t *testing.T) {
	query := url.Values{
		"resolution": {"1080p60"},
		"video":      {"0"},
		"subtitle":   {"3"},
	}
	req, err := ParseRequest("/media/movie.mkv", query)
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.Profile == nil || req.Profile.Label != "1080p60" {
		t.Errorf("Profile = %+v, want 1080p60", req.Profile)
	}
	if req.VideoStream == nil || *req.VideoStream != 0 {
		t.Errorf("VideoStream = %v, want 0", req.VideoStream)
	}
	if req.AudioStream != nil {
		t.Errorf("AudioStream = %v, want nil", req.AudioStream)
	}
	if req.SubtitleStream == nil || *req.SubtitleStream != 3 {
		t.Errorf("SubtitleStream = %v, want 3", req.SubtitleStream)
	}
}
