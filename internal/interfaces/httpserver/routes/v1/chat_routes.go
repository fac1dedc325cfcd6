package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/domain/chat"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/infrastructure/metrics"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/interfaces/httpserver/handlers"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/interfaces/httpserver/requests"
	"github.com/RAJATKUMARSINGH527/Spurnow-AI-Live-Chat-Agent/internal/interfaces/httpserver/responses"
)

func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler) {
	router.POST("/chat/message", sendMessage(handler))
	router.GET("/chat/history/:sessionId", getHistory(handler))
}

// sendMessage godoc
// @Summary      Send a chat message
// @Description  Runs one turn: resolves the session, checks the reply cache, generates and persists a reply.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      requests.SendMessageRequest  true  "user message and optional session id"
// @Success      200  {object}  responses.SendMessageResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v1/chat/message [post]
func sendMessage(handler *handlers.ChatHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "invalid request body"})
			return
		}

		turn, err := handler.SendMessage(c.Request.Context(), req.Message, req.SessionID)
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			metrics.RecordTurn("invalid_input")
			c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "Message cannot be empty."})
		case err != nil:
			// Internal detail never reaches the caller.
			metrics.RecordTurn("error")
			c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: "Something went wrong"})
		default:
			metrics.RecordCacheLookup(turn.CacheHit)
			if turn.CacheHit {
				metrics.RecordTurn("cache_hit")
			} else {
				metrics.RecordTurn("ok")
			}
			c.JSON(http.StatusOK, responses.SendMessageResponse{
				Reply:     turn.Reply,
				SessionID: turn.ConversationID,
			})
		}
	}
}

// getHistory godoc
// @Summary      Fetch conversation history
// @Description  Returns every stored message of a conversation in timestamp order. Unknown ids yield an empty list.
// @Tags         chat
// @Produce      json
// @Param        sessionId  path      string  true  "conversation id"
// @Success      200  {object}  responses.HistoryResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v1/chat/history/{sessionId} [get]
func getHistory(handler *handlers.ChatHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")

		messages, err := handler.GetHistory(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: "Failed to fetch history"})
			return
		}

		c.JSON(http.StatusOK, responses.NewHistoryResponse(sessionID, messages))
	}
}
