package messages

import (
	"fmt"
	"strings"
)

const ParseModeHTML = "HTML"

func Escape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(strings.TrimSpace(s))
}

func StartWelcome(botName string) string {
	return fmt.Sprintf("👋 <b>Welcome to %s</b>\nSend a YouTube link and choose audio/video.", Escape(botName))
}

func Help() string {
	return "ℹ️ <b>How it works</b>\n" +
		"1. Send a YouTube link (youtube.com or youtu.be).\n" +
		"2. Pick 🎵 Audio or 🎥 Video.\n" +
		"3. Pick a quality and wait for the file."
}

func LinkHint() string {
	return "🔗 Send a YouTube link to get started."
}

func ErrorUnknownCommand() string {
	return "❓ <b>Command not found</b>"
}

func JoinRequired(channel string) string {
	return fmt.Sprintf("⛔ You must join %s to use this bot.", Escape(channel))
}

func JoinConfirmed() string {
	return "🎉 You are now a member! Send your YouTube link again."
}

func JoinStillMissing() string {
	return "You still need to join the channel."
}

func SelectType() string {
	return "Select type:"
}

func SessionExpired() string {
	return "Session expired. Send the link again."
}

func FetchingQualities() string {
	return "Fetching qualities, please wait..."
}

func ChooseQuality() string {
	return "Choose quality:"
}

func ErrorFetchInfo(err error) string {
	msg := "🚫 <b>Failed to fetch info</b>"
	if err != nil {
		msg += "\n" + fmt.Sprintf("<code>%s</code>", Escape(err.Error()))
	}
	return msg
}

func DownloadStarting() string {
	return "⬇️ Download starting..."
}

func DownloadProgress(percent int) string {
	return fmt.Sprintf("⬇️ Downloading... %d%%", percent)
}

func ErrorFileTooLarge(limitMB int) string {
	return fmt.Sprintf("❌ File too large, aborted. The limit is %d MB.", limitMB)
}

func ErrorAuthRequired() string {
	return "🔐 <b>Authentication required</b>\nThe provider asked for a sign-in check. The bot's credentials are missing or expired, please try again later."
}

func ErrorDownloadFailed(err error) string {
	msg := "❌ <b>Error</b>"
	if err != nil {
		msg += "\n" + fmt.Sprintf("<code>%s</code>", Escape(err.Error()))
	}
	return msg
}

func VideoCaption(title string) string {
	return "🎬 " + Escape(title)
}

func AudioCaption(title string) string {
	return "🎵 " + Escape(title)
}

func StatsLine(count int64) string {
	return fmt.Sprintf("👥 <b>Users:</b> %d", count)
}

func StatsUnavailable() string {
	return "👥 <b>Users:</b> store not configured"
}

func BroadcastUsage() string {
	return "Usage: /broadcast &lt;text&gt;"
}

func BroadcastDone(sent, total int) string {
	return fmt.Sprintf("📣 Broadcast delivered to %d of %d users.", sent, total)
}
