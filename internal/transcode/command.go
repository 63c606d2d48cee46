package transcode

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrExecutableNotFound indicates that the ffmpeg binary could not be
// located. Handlers surface this as 503 Service Unavailable.
var ErrExecutableNotFound = errors.New("ffmpeg executable not found")

// LocateFFmpeg resolves the path to the ffmpeg binary. If configured is
// non-empty it must point at an existing file; otherwise PATH is
// searched. Returns ErrExecutableNotFound when no usable binary exists.
func LocateFFmpeg(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, configured)
		}
		return configured, nil
	}
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExecutableNotFound, err)
	}
	return path, nil
}

// CompileArgs translates a Request into the ffmpeg argument vector.
// The result is deterministic: compiling the same request twice yields
// identical vectors. Arguments are passed to the process as a vector,
// never through a shell, so file paths and parameters cannot inject
// extra options.
func CompileArgs(req *Request) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", req.SourcePath,
	}

	if req.VideoStream != nil {
		args = append(args, "-map", fmt.Sprintf("0:v:%d", *req.VideoStream))
	}
	if req.AudioStream != nil {
		args = append(args, "-map", fmt.Sprintf("0:a:%d", *req.AudioStream))
	}
	if req.SubtitleStream != nil {
		args = append(args, "-map", fmt.Sprintf("0:s:%d", *req.SubtitleStream))
	} else {
		// No explicit selection drops subtitles entirely, unlike video
		// and audio which are left to ffmpeg's defaults.
		args = append(args, "-sn")
	}

	if req.Profile != nil {
		args = append(args,
			"-vf", scaleFilter(req.Profile.Height),
			"-movflags", "faststart",
			"-fpsmax", fmt.Sprintf("%d", req.Profile.MaxFPS),
			"-b:v", req.Profile.VideoBitrate,
			"-b:a", req.Profile.AudioBitrate,
			"-f", "mpegts",
		)
	} else {
		// Cheap remux path: copy streams into a pipe-safe container.
		args = append(args,
			"-c", "copy",
			"-f", "mpegts",
		)
	}

	args = append(args, "pipe:stdout")
	return args
}

// scaleFilter caps the limiting dimension at height while preserving
// aspect ratio. Portrait content (width < height) is capped on width,
// landscape on height; the free axis is computed as -2 so the encoder
// gets an even number.
func scaleFilter(height int) string {
	return fmt.Sprintf(
		`scale=if(lt(iw\,ih)\,min(%d\,iw)\,-2):if(gte(iw\,ih)\,min(%d\,ih)\,-2)`,
		height, height,
	)
}
