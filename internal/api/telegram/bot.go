package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	app "thurianx/internal/application"
	"thurianx/internal/domain/entity"
	"thurianx/internal/domain/port"
	"thurianx/internal/i18n"
	"thurianx/internal/view"
)

// downloadTimeout bounds a single photo download; downloads run on the update loop.
const downloadTimeout = 30 * time.Second

// botAPI is the part of tgbotapi.BotAPI the bot uses.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Bot exposes the capture-and-classify view to Telegram chats. Every chat
// owns one view session.
type Bot struct {
	api        botAPI
	httpClient *http.Client
	maxPhoto   int64
	sessions   *app.SessionService
	classify   *app.ClassificationService
	catalog    *i18n.Catalog

	pending sync.WaitGroup
}

// NewBot authorises against the Bot API.
func NewBot(token string, maxPhotoBytes int64, sessions *app.SessionService, classify *app.ClassificationService, catalog *i18n.Catalog) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info().Str("account", api.Self.UserName).Msg("authorized on telegram")

	return newBot(api, maxPhotoBytes, sessions, classify, catalog), nil
}

func newBot(api botAPI, maxPhotoBytes int64, sessions *app.SessionService, classify *app.ClassificationService, catalog *i18n.Catalog) *Bot {
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = 10 << 20
	}
	return &Bot{
		api:        api,
		httpClient: &http.Client{Timeout: downloadTimeout},
		maxPhoto:   maxPhotoBytes,
		sessions:   sessions,
		classify:   classify,
		catalog:    catalog,
	}
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				b.Wait()
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// Wait blocks until every pending result message has been sent.
func (b *Bot) Wait() {
	b.pending.Wait()
}

// sessionID maps a chat to its view session.
func sessionID(chatID int64) string {
	return fmt.Sprintf("tg-%d", chatID)
}

// handleMessage routes an incoming message.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	id := sessionID(msg.Chat.ID)
	sess, err := b.sessions.Open(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("session", id).Msg("failed to open session")
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, sess)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, sess)
		return
	}

	// an image sent as a file instead of a compressed photo
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		b.selectImage(ctx, msg.Chat.ID, sess, msg.Document.FileID, msg.Document.FileName, msg.Document.MimeType)
		return
	}

	b.sendMessage(msg.Chat.ID, b.texts(sess).NeedImage)
}

// handleCommand handles bot commands.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, sess entity.Session) {
	t := b.texts(sess)

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(msg.Chat.ID, strings.Join([]string{t.Title, t.Subtitle, t.Support, t.Usage}, "\n\n"))

	case "analyze":
		b.analyze(ctx, msg.Chat.ID, sess)

	case "lang":
		next, err := b.sessions.ToggleLanguage(ctx, sess.ID)
		if err != nil {
			log.Error().Err(err).Str("session", sess.ID).Msg("failed to toggle language")
			return
		}
		nt := b.texts(next)
		b.sendMessage(msg.Chat.ID, nt.Subtitle+"\n\n"+nt.Usage)

	case "history":
		page := view.Build(sess, b.catalog)
		if h := page.HistoryText(); h != "" {
			b.sendMessage(msg.Chat.ID, h)
			return
		}
		b.sendMessage(msg.Chat.ID, t.NoHistory)

	case "reset":
		if err := b.sessions.Close(ctx, sess.ID); err != nil {
			log.Error().Err(err).Str("session", sess.ID).Msg("failed to reset session")
			return
		}
		b.sendMessage(msg.Chat.ID, t.Reset)

	default:
		b.sendMessage(msg.Chat.ID, t.Usage)
	}
}

// handlePhoto selects the largest size of an incoming photo.
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, sess entity.Session) {
	photo := msg.Photo[len(msg.Photo)-1]
	b.selectImage(ctx, msg.Chat.ID, sess, photo.FileID, "", "image/jpeg")
}

func (b *Bot) selectImage(ctx context.Context, chatID int64, sess entity.Session, fileID, name, contentType string) {
	t := b.texts(sess)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("failed to download photo")
		b.sendMessage(chatID, t.ImageRejected)
		return
	}

	_, err = b.sessions.SelectImage(ctx, sess.ID, app.Upload{Name: name, ContentType: contentType, Data: imageData})
	if errors.Is(err, port.ErrNotAnImage) || errors.Is(err, port.ErrEmptyImage) {
		b.sendMessage(chatID, t.ImageRejected)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("failed to select image")
		b.sendMessage(chatID, t.ImageRejected)
		return
	}

	b.sendMessage(chatID, t.ImageReceived)
}

// analyze starts the simulated analysis and reports the result when it is done.
func (b *Bot) analyze(ctx context.Context, chatID int64, sess entity.Session) {
	t := b.texts(sess)

	done, ok, err := b.classify.Submit(ctx, sess.ID)
	if err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("failed to submit analysis")
		return
	}
	if !ok {
		if sess.HasImage() {
			b.sendMessage(chatID, t.Busy)
		} else {
			b.sendMessage(chatID, t.NeedImage)
		}
		return
	}

	b.sendMessage(chatID, "⏳ "+t.Processing)

	b.pending.Add(1)
	go func() {
		defer b.pending.Done()
		final, ok := <-done
		if !ok {
			return
		}
		b.sendMessage(chatID, view.Text(view.Build(final, b.catalog)))
	}()
}

func (b *Bot) texts(sess entity.Session) i18n.Texts {
	return b.catalog.For(sess.Language)
}

// downloadFile fetches a file from Telegram.
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, b.maxPhoto+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > b.maxPhoto {
		return nil, fmt.Errorf("read file: larger than %d bytes", b.maxPhoto)
	}

	return data, nil
}

// sendMessage sends a text message.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to send message")
	}
}
