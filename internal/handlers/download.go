package handlers

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/moxibot/moxi-yt-bot/internal/extractor"
	"github.com/moxibot/moxi-yt-bot/internal/formats"
	"github.com/moxibot/moxi-yt-bot/internal/messages"
	"github.com/moxibot/moxi-yt-bot/internal/progress"
	"github.com/moxibot/moxi-yt-bot/types"
)

const uploadedMessageTTL = 30 * time.Minute

// TelegramSender is the slice of the Telegram client the download pipeline
// uses to report status and deliver the artifact.
type TelegramSender interface {
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
	SendAudio(ctx context.Context, params *bot.SendAudioParams) (*models.Message, error)
	SendVideo(ctx context.Context, params *bot.SendVideoParams) (*models.Message, error)
}

// runDownload executes the download, the size check, the upload and the
// cleanup for one completed selection. Any failure is reported through an
// edit of the status message; the process is never taken down.
func (bh *Handlers) runDownload(ctx context.Context, b TelegramSender, chatID int64, statusMsgID int, session *types.Session) {
	req := extractor.Request{
		URL:         session.URL,
		Mode:        session.Mode,
		Format:      formats.SelectorFor(session.Mode, session.Quality),
		UserID:      session.UserID,
		CookiesFile: bh.cfg.CookiesPath(),
	}
	if session.Mode == types.ModeAudio {
		req.AudioBitrate = formats.AudioBitrate(session.Quality)
	}

	bridge := progress.NewBridge(b, chatID, statusMsgID)
	result, err := bh.ext.Download(ctx, req, bridge.Notify)
	bridge.Close()
	if err != nil {
		log.Printf("Download failed for user %d: %v", session.UserID, err)
		_, _ = b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: statusMsgID,
			Text:      friendlyDownloadError(err),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}
	defer func() { _ = os.RemoveAll(filepath.Dir(result.FilePath)) }()

	if !bh.guard.WithinLimit(result.Size) {
		_, _ = b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: statusMsgID,
			Text:      messages.ErrorFileTooLarge(bh.cfg.MaxFileSizeMB),
		})
		return
	}

	sent, err := bh.uploadArtifact(ctx, b, chatID, result.FilePath, session)
	if err != nil {
		log.Printf("Upload failed for user %d: %v", session.UserID, err)
		_, _ = b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: statusMsgID,
			Text:      messages.ErrorDownloadFailed(err),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}

	_, _ = b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: statusMsgID,
	})

	if sent != nil {
		bh.sched.Schedule(chatID, sent.ID, uploadedMessageTTL)
	}
}

func (bh *Handlers) uploadArtifact(ctx context.Context, b TelegramSender, chatID int64, path string, session *types.Session) (*models.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	title := session.Title
	if title == "" {
		title = filepath.Base(path)
	}

	if session.Mode == types.ModeAudio {
		return b.SendAudio(ctx, &bot.SendAudioParams{
			ChatID: chatID,
			Audio: &models.InputFileUpload{
				Filename: filepath.Base(path),
				Data:     f,
			},
			Caption: messages.AudioCaption(title),
		})
	}
	return b.SendVideo(ctx, &bot.SendVideoParams{
		ChatID: chatID,
		Video: &models.InputFileUpload{
			Filename: filepath.Base(path),
			Data:     f,
		},
		Caption: messages.VideoCaption(title),
	})
}

// friendlyDownloadError rewrites known provider bot-check errors into a
// single message about credentials; everything else passes through.
func friendlyDownloadError(err error) string {
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "sign in to confirm") ||
		strings.Contains(lower, "confirm you're not a bot") ||
		strings.Contains(lower, "use --cookies") {
		return messages.ErrorAuthRequired()
	}
	return messages.ErrorDownloadFailed(err)
}
