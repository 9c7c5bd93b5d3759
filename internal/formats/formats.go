package formats

import "github.com/moxibot/moxi-yt-bot/types"

// FormatButton is one quality choice shown under a message.
type FormatButton struct {
	Text         string
	CallbackData string
}

// SelectorFor maps a mode and quality token to a yt-dlp format selector.
// Unrecognized video qualities fall back to the best available stream.
func SelectorFor(mode types.Mode, quality string) string {
	if mode == types.ModeAudio {
		return "bestaudio/best"
	}
	switch quality {
	case "360":
		return "bestvideo[height<=360]+bestaudio/best[height<=360]"
	case "720":
		return "bestvideo[height<=720]+bestaudio/best[height<=720]"
	case "1080":
		return "bestvideo[height<=1080]+bestaudio/best[height<=1080]"
	default:
		return "best"
	}
}

// AudioBitrate maps a quality token to the mp3 transcode bitrate in kbps.
// Anything other than "128" means 320.
func AudioBitrate(quality string) int {
	if quality == "128" {
		return 128
	}
	return 320
}

// TypeButtons is the audio/video choice shown after a recognized link.
func TypeButtons() []FormatButton {
	return []FormatButton{
		{Text: "🎵 Audio", CallbackData: "type_audio"},
		{Text: "🎥 Video", CallbackData: "type_video"},
	}
}

// QualityButtons lists the quality choices for a mode.
func QualityButtons(mode types.Mode) []FormatButton {
	if mode == types.ModeAudio {
		return []FormatButton{
			{Text: "128 kbps", CallbackData: "q_128"},
			{Text: "320 kbps", CallbackData: "q_320"},
		}
	}
	return []FormatButton{
		{Text: "360p", CallbackData: "q_360"},
		{Text: "720p", CallbackData: "q_720"},
		{Text: "1080p", CallbackData: "q_1080"},
	}
}
