package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/simplemsg/message-api/internal/api/metrics"
	"github.com/simplemsg/message-api/internal/core/domain"
	"github.com/simplemsg/message-api/internal/core/ports"
)

type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type newMessageRequest struct {
	Recipient string `json:"recipient" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// CreateMessage sends a message to another user.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      newMessageRequest  true  "Message payload"
// @Success      200   {object}  ports.MessageResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/message [post]
// @Security     bearerAuth
func (h *MessageHandler) CreateMessage(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req newMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.messageService.CreateMessage(c.Request().Context(), principal.Name, ports.NewMessageInput{
		Recipient: req.Recipient,
		Body:      req.Message,
	})
	if err != nil {
		return err
	}

	metrics.MessagesCreatedTotal.Inc()
	return c.JSON(http.StatusOK, msg)
}

// ListMessages returns one page of the caller's inbox, oldest first.
//
// @Summary      List received messages
// @Tags         messages
// @Produce      json
// @Param        page    query     int   false  "Zero-based page index"  default(0)
// @Param        size    query     int   false  "Page size"              default(10)
// @Param        unread  query     bool  false  "Only unread messages"
// @Success      200   {object}  ports.MessagePage
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/messages [get]
// @Security     bearerAuth
func (h *MessageHandler) ListMessages(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	opts := ports.ListOptions{Page: 0, Size: 10}
	if v := c.QueryParam("page"); v != "" {
		opts.Page, err = strconv.Atoi(v)
		if err != nil {
			return domain.ErrBadPagination
		}
	}
	if v := c.QueryParam("size"); v != "" {
		opts.Size, err = strconv.Atoi(v)
		if err != nil {
			return domain.ErrBadPagination
		}
	}
	if v := c.QueryParam("unread"); v != "" {
		opts.UnreadOnly, err = strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unread must be a boolean")
		}
	}

	page, err := h.messageService.ListMessages(c.Request().Context(), principal.Name, opts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

// ReadAllMessages marks every message addressed to the caller as read.
//
// @Summary      Mark all messages read
// @Tags         messages
// @Success      204
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/messages/read-all [post]
// @Security     bearerAuth
func (h *MessageHandler) ReadAllMessages(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.messageService.MarkAllRead(c.Request().Context(), principal.Name); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
