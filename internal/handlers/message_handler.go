package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/message"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	ucInbox "github.com/BruksfildServices01/barbershop-booking/internal/usecase/inbox"
)

type MessageHandler struct {
	inbox *ucInbox.Inbox
}

func NewMessageHandler(inbox *ucInbox.Inbox) *MessageHandler {
	return &MessageHandler{inbox: inbox}
}

type messageView struct {
	models.Message
	KindLabel string `json:"kind_label"`
}

func views(msgs []models.Message) []messageView {
	out := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageView{Message: m, KindLabel: message.Description(message.Kind(m.Kind))})
	}
	return out
}

// List answers GET /me/messages[?unread=true].
func (h *MessageHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	msgs, err := h.inbox.ListForBarber(c.Request.Context(), middleware.BarberID(c), unreadOnly)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, views(msgs))
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	n, err := h.inbox.CountUnread(c.Request.Context(), middleware.BarberID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	m, err := h.inbox.MarkRead(c.Request.Context(), middleware.BarberID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *MessageHandler) MarkAllRead(c *gin.Context) {
	n, err := h.inbox.MarkAllRead(c.Request.Context(), middleware.BarberID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": n})
}

func (h *MessageHandler) ListForAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	msgs, err := h.inbox.ListForAppointment(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, views(msgs))
}
