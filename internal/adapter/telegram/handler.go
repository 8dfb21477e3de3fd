package telegram

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ParikhVedant/pare/internal/adapter/funnelchart"
	"github.com/ParikhVedant/pare/internal/domain"
	"github.com/ParikhVedant/pare/internal/usecase"
)

const (
	menuBroadcastBtn = "Create broadcast"
	menuStatsBtn     = "Statistics"
	menuFunnelBtn    = "Funnel"
)

const apologyReply = "Sorry, something went wrong on our side. Please try again in a moment."

const adminHintReply = "Use /admin or pick an option from the menu."

// Handler is the Telegram front end: each incoming message becomes one
// assistant turn, admins additionally get broadcast and funnel tooling.
type Handler struct {
	bot         *tgbotapi.BotAPI
	assistant   *usecase.Assistant
	userRepo    domain.UserRepository
	broadcastUC *usecase.BroadcastUsecase
	adminIDs    map[int64]struct{}

	sessions      map[int64]*usecase.Session
	bcastSessions map[int64]*usecase.BroadcastSession
	funnel        *usecase.Funnel
	logger        *slog.Logger

	// replaces the bot send in tests; nil means send through the bot
	send func(chatID int64, text string)
}

func NewHandler(bot *tgbotapi.BotAPI, assistant *usecase.Assistant, userRepo domain.UserRepository, broadcastUC *usecase.BroadcastUsecase, adminIDs map[int64]struct{}, funnel *usecase.Funnel, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		bot:           bot,
		assistant:     assistant,
		userRepo:      userRepo,
		broadcastUC:   broadcastUC,
		adminIDs:      adminIDs,
		sessions:      make(map[int64]*usecase.Session),
		bcastSessions: make(map[int64]*usecase.BroadcastSession),
		funnel:        funnel,
		logger:        logger,
	}
}

func ParseAdminIDsFromEnv() map[int64]struct{} {
	ids := map[int64]struct{}{}
	raw := strings.TrimSpace(os.Getenv("ADMIN_CHAT_IDS"))
	if raw == "" {
		return ids
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids[id] = struct{}{}
		}
	}
	return ids
}

func (h *Handler) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := h.bot.GetUpdatesChan(u)
	for update := range updates {
		if update.Message == nil && update.CallbackQuery == nil {
			continue
		}
		var chatID int64
		var text string
		if update.Message != nil {
			chatID = update.Message.Chat.ID
			text = update.Message.Text
		} else if update.CallbackQuery != nil {
			chatID = update.CallbackQuery.Message.Chat.ID
			text = update.CallbackQuery.Data
		}
		// only non-admins count as leads
		if !h.isAdmin(chatID) {
			_ = h.userRepo.SaveUser(chatID)
		}

		if h.handleAdmin(chatID, text, update) {
			continue
		}

		if text == "/start" {
			h.sessions[chatID] = h.assistant.NewSession()
			h.sendText(chatID, "Hello! Welcome to PARE India. I'm your virtual assistant. How can I help you today?")
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		s := h.getSession(chatID)
		resp, err := h.assistant.Respond(context.Background(), s, text)
		if err != nil {
			h.logger.Error("turn failed", "chat_id", chatID, "error", err)
			h.sendText(chatID, apologyReply)
			continue
		}
		h.sendText(chatID, resp.Response)
		if resp.Artifact != "" {
			h.sendBrochure(chatID, resp.Artifact)
		}
	}
}

// handleAdmin processes the admin menu and broadcast flow. Returns true when
// the update was consumed.
func (h *Handler) handleAdmin(chatID int64, text string, update tgbotapi.Update) bool {
	if text == "/admin" {
		if !h.isAdmin(chatID) {
			h.sendText(chatID, "Access denied")
			h.logger.Warn("admin denied", "chat_id", chatID)
			return true
		}
		msg := tgbotapi.NewMessage(chatID, "Admin menu")
		msg.ReplyMarkup = inlineKeyboard([]string{menuBroadcastBtn, menuStatsBtn, menuFunnelBtn})
		_, _ = h.bot.Send(msg)
		h.logger.Info("admin opened menu", "chat_id", chatID)
		return true
	}
	if !h.isAdmin(chatID) {
		return false
	}

	switch text {
	case menuBroadcastBtn:
		s := h.getBSession(chatID)
		msg := h.broadcastUC.Start(s)
		h.sendTextWithKeyboard(chatID, msg, nil)
		h.logger.Info("broadcast start", "chat_id", chatID)
		return true
	case menuStatsBtn:
		h.sendText(chatID, h.broadcastUC.StatsSummary(5))
		return true
	case menuFunnelBtn:
		if h.funnel != nil {
			labels, values := h.funnel.GraphData()
			if err := h.sendFunnelChart(chatID, labels, values); err != nil {
				h.logger.Error("funnel chart failed", "error", err)
				h.sendText(chatID, h.funnel.Summary())
			}
		} else {
			h.sendText(chatID, "Funnel is not available")
		}
		return true
	}

	if s := h.bcastSessions[chatID]; s != nil {
		if m := update.Message; m != nil && len(m.Photo) > 0 {
			ph := m.Photo[len(m.Photo)-1]
			msg, opts := h.broadcastUC.ReceivePhoto(s, ph.FileID, m.Caption)
			h.sendTextWithKeyboard(chatID, msg, opts)
			return true
		}
		switch s.State {
		case usecase.BStateEnter:
			msg, opts, _ := h.broadcastUC.ReceiveText(s, text)
			h.sendTextWithKeyboard(chatID, msg, opts)
			return true
		case usecase.BStateConfirm:
			msg, _ := h.broadcastUC.ConfirmSend(s, text)
			h.sendTextRemoveKeyboard(chatID, msg)
			h.logger.Info("broadcast confirm", "chat_id", chatID)
			return true
		}
	}
	h.sendText(chatID, adminHintReply)
	return true
}

func (h *Handler) isAdmin(chatID int64) bool {
	if len(h.adminIDs) == 0 {
		return false
	}
	_, ok := h.adminIDs[chatID]
	return ok
}

func (h *Handler) getSession(chatID int64) *usecase.Session {
	if s, ok := h.sessions[chatID]; ok {
		return s
	}
	s := h.assistant.NewSession()
	h.sessions[chatID] = s
	return s
}

func (h *Handler) getBSession(chatID int64) *usecase.BroadcastSession {
	if s, ok := h.bcastSessions[chatID]; ok {
		return s
	}
	s := &usecase.BroadcastSession{State: usecase.BStateIdle}
	h.bcastSessions[chatID] = s
	return s
}

// sendBrochure tries to attach the PDF for the artifact from the local
// brochures folder; if the file is missing a plain note is sent instead.
func (h *Handler) sendBrochure(chatID int64, artifact string) {
	filePath := brochureFileFor(artifact)
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filePath))
	if _, err := h.bot.Send(doc); err != nil {
		h.logger.Error("send brochure failed", "chat_id", chatID, "file", filePath, "error", err)
		h.sendText(chatID, "[Sending "+artifact+" brochure]")
		return
	}
	h.logger.Info("brochure sent", "chat_id", chatID, "file", filePath)
}

func brochureFileFor(artifact string) string {
	return "brochures/" + artifact + ".pdf"
}

func (h *Handler) sendText(chatID int64, text string) {
	if h.send != nil {
		h.send(chatID, text)
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = h.bot.Send(msg)
}

func (h *Handler) sendTextWithKeyboard(chatID int64, text string, opts []string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(opts) > 0 {
		msg.ReplyMarkup = inlineKeyboard(opts)
	}
	_, _ = h.bot.Send(msg)
}

func (h *Handler) sendTextRemoveKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	_, _ = h.bot.Send(msg)
}

func inlineKeyboard(opts []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(opts))
	for _, o := range opts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o, o),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Sender implements the broadcast delivery port.
type Sender struct{ bot *tgbotapi.BotAPI }

func NewSender(bot *tgbotapi.BotAPI) *Sender { return &Sender{bot: bot} }

func (s *Sender) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := s.bot.Send(msg)
	return err
}

func (s *Sender) SendPhoto(chatID int64, fileID string, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	photo.Caption = caption
	_, err := s.bot.Send(photo)
	return err
}

func (h *Handler) sendFunnelChart(chatID int64, labels []string, values []int) error {
	buf, err := funnelchart.RenderPNG(labels, values)
	if err != nil {
		return err
	}
	fname := "funnel_" + strconv.FormatInt(time.Now().UnixNano(), 10) + ".png"
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: fname, Bytes: buf})
	_, err = h.bot.Send(photo)
	return err
}
