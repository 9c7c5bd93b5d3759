package extractor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/moxibot/moxi-yt-bot/types"
)

// Info is the metadata of a video, fetched without downloading.
type Info struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Ext   string `json:"ext"`
}

// Request describes one extraction/download run.
type Request struct {
	URL          string
	Mode         types.Mode
	Format       string
	AudioBitrate int
	UserID       int64
	CookiesFile  string
}

// Result is the outcome of a completed download.
type Result struct {
	FilePath string
	Size     int64
}

// ProgressFunc receives downloaded and total byte counts during a download.
// Total is zero when the extractor could not estimate it.
type ProgressFunc func(downloaded, total int64)

type Extractor interface {
	Probe(ctx context.Context, url, cookiesFile string) (*Info, error)
	Download(ctx context.Context, req Request, progress ProgressFunc) (*Result, error)
}

// YtDlpExtractor shells out to the yt-dlp binary.
type YtDlpExtractor struct {
	binPath string
	baseDir string
}

func NewYtDlpExtractor() *YtDlpExtractor {
	baseDir := filepath.Join(os.TempDir(), "moxi_dl")
	_ = os.MkdirAll(baseDir, 0755)
	return &YtDlpExtractor{
		binPath: "yt-dlp",
		baseDir: baseDir,
	}
}

func (e *YtDlpExtractor) Probe(ctx context.Context, url, cookiesFile string) (*Info, error) {
	cmd := exec.CommandContext(ctx, e.binPath, buildProbeArgs(url, cookiesFile)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp metadata fetch failed: %s", firstErrorLine(stderr.String(), err))
	}

	var info Info
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("yt-dlp metadata parse failed: %v", err)
	}
	return &info, nil
}

// The site's bot check also fires during metadata extraction, so the probe
// carries the same credentials as the download.
func buildProbeArgs(url, cookiesFile string) []string {
	args := []string{
		"--dump-json",
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
	}
	if cookiesFile != "" {
		args = append(args, "--cookies", cookiesFile)
	}
	return append(args, url)
}

func (e *YtDlpExtractor) Download(ctx context.Context, req Request, progress ProgressFunc) (*Result, error) {
	outDir, err := os.MkdirTemp(e.baseDir, fmt.Sprintf("%d_", req.UserID))
	if err != nil {
		return nil, err
	}

	args := e.buildDownloadArgs(req, outDir)
	cmd := exec.CommandContext(ctx, e.binPath, args...)

	var stderrTail bytes.Buffer
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		_ = os.RemoveAll(outDir)
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		_ = os.RemoveAll(outDir)
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		_ = os.RemoveAll(outDir)
		return nil, err
	}

	scanProgress := func(sc *bufio.Scanner, keepErrors bool) {
		for sc.Scan() {
			line := sc.Text()
			if downloaded, total, ok := ParseProgressLine(line); ok {
				if progress != nil {
					progress(downloaded, total)
				}
				continue
			}
			if keepErrors {
				stderrTail.WriteString(line + "\n")
			}
		}
	}
	done := make(chan struct{})
	go func() {
		scanProgress(bufio.NewScanner(stdout), false)
		close(done)
	}()
	scanProgress(bufio.NewScanner(stderr), true)
	<-done

	if err := cmd.Wait(); err != nil {
		_ = os.RemoveAll(outDir)
		return nil, fmt.Errorf("yt-dlp failed: %s", firstErrorLine(stderrTail.String(), err))
	}

	path, size, err := e.pickArtifact(outDir, req.Mode)
	if err != nil {
		_ = os.RemoveAll(outDir)
		return nil, err
	}
	return &Result{FilePath: path, Size: size}, nil
}

func (e *YtDlpExtractor) buildDownloadArgs(req Request, outDir string) []string {
	args := []string{
		"-f", req.Format,
		"-o", filepath.Join(outDir, fmt.Sprintf("%d_%%(title)s.%%(ext)s", req.UserID)),
		"--newline",
		"--no-playlist",
		"--no-warnings",
		// Fragmented formats report only an estimated total; without the
		// fallback field the template prints NA and progress stays at 0%.
		"--progress-template", "download:%(progress.downloaded_bytes)s/%(progress.total_bytes,progress.total_bytes_estimate)s",
	}
	if req.Mode == types.ModeAudio {
		args = append(args,
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", fmt.Sprintf("%dK", req.AudioBitrate),
		)
	}
	if req.CookiesFile != "" {
		args = append(args, "--cookies", req.CookiesFile)
	}
	return append(args, req.URL)
}

// pickArtifact selects the file to deliver. For audio the transcoded mp3 is
// preferred; the raw download is the fallback in case post-processing did
// not produce the expected name.
func (e *YtDlpExtractor) pickArtifact(dir string, mode types.Mode) (string, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0, err
	}

	type candidate struct {
		path string
		size int64
	}
	var files []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() == 0 {
			continue
		}
		files = append(files, candidate{path: filepath.Join(dir, entry.Name()), size: info.Size()})
	}
	if len(files) == 0 {
		return "", 0, fmt.Errorf("download produced no file")
	}

	if mode == types.ModeAudio {
		for _, f := range files {
			if strings.EqualFold(filepath.Ext(f.path), ".mp3") {
				return f.path, f.size, nil
			}
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].size > files[j].size })
	return files[0].path, files[0].size, nil
}

// ParseProgressLine parses a progress-template line of the form
// "12345/678900". The total is "NA" when yt-dlp has no estimate.
func ParseProgressLine(line string) (downloaded, total int64, ok bool) {
	line = strings.TrimSpace(line)
	left, right, found := strings.Cut(line, "/")
	if !found {
		return 0, 0, false
	}
	downloaded, err := parseByteCount(left)
	if err != nil || downloaded < 0 {
		return 0, 0, false
	}
	right = strings.TrimSpace(right)
	if right == "NA" || right == "null" || right == "None" {
		return downloaded, 0, true
	}
	total, err = parseByteCount(right)
	if err != nil || total < 0 {
		return 0, 0, false
	}
	return downloaded, total, true
}

// yt-dlp prints some byte counts as floats, e.g. an estimated total.
func parseByteCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func firstErrorLine(stderr string, fallback error) string {
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "ERROR:") {
			return line
		}
	}
	for _, line := range strings.Split(stderr, "\n") {
		if strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line)
		}
	}
	return fallback.Error()
}
