// Package transcriber runs a local whisper.cpp binary against fetched media
// and recovers the transcript text and duration from the emitted SRT.
package transcriber

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"meeting-insights-go/internal/logger"
)

// ModelConfig carries the recognized transcription knobs.
type ModelConfig struct {
	BinaryPath string
	ModelPath  string
	// Language forces the working language. whisper.cpp can only translate
	// into English, so non-English audio is translated only when the working
	// language is "en".
	Language string
	// TrimSilence drops leading/trailing silence via VAD.
	TrimSilence bool
	// BestOf is the decoder candidate count (whisper -bo).
	BestOf  int
	Threads int
}

// Whisper invokes the whisper.cpp binary.
type Whisper struct {
	cfg ModelConfig
}

func New(cfg ModelConfig) *Whisper {
	if cfg.BestOf <= 0 {
		cfg.BestOf = 5
	}
	if cfg.Threads <= 0 {
		cfg.Threads = 4
	}
	return &Whisper{cfg: cfg}
}

// Transcribe converts the media at localPath to text and returns the
// transcript with the audio duration in minutes. On internal failure it
// returns an empty transcript and zero duration rather than an error; the
// analyzer treats an empty transcript as nothing to analyze.
func (w *Whisper) Transcribe(ctx context.Context, localPath string) (string, float64) {
	log := logger.New().WithField("component", "transcriber").WithField("path", localPath)

	outputPrefix := strings.TrimSuffix(localPath, filepath.Ext(localPath))

	cmd := exec.CommandContext(ctx, w.cfg.BinaryPath, w.buildArgs(localPath, outputPrefix)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		log.WithError(err).WithField("output", truncate(string(out), 2000)).
			Error("whisper invocation failed")
		return "", 0
	}

	srtPath := outputPrefix + ".srt"
	data, err := os.ReadFile(srtPath)
	if err != nil {
		log.WithError(err).Error("whisper produced no SRT output")
		return "", 0
	}
	defer os.Remove(srtPath)

	text, minutes := ParseSRT(string(data))
	log.WithField("duration_min", minutes).Info("transcription complete")
	return text, minutes
}

func (w *Whisper) buildArgs(localPath, outputPrefix string) []string {
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", localPath,
		"-osrt",
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-bo", strconv.Itoa(w.cfg.BestOf),
	}
	// whisper.cpp only translates into English.
	if w.cfg.Language == "en" {
		args = append(args, "--translate")
	}
	args = append(args, "--output-file", outputPrefix)
	if w.cfg.TrimSilence {
		args = append(args, "--vad")
	}
	return args
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
