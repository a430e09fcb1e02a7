package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type AssistantController struct {
	assistant services.AssistantServiceInterface
	sessions  services.SessionServiceInterface
	logger    *zap.Logger
}

func NewAssistantController(
	assistant services.AssistantServiceInterface,
	sessions services.SessionServiceInterface,
	logger *zap.Logger,
) *AssistantController {
	return &AssistantController{
		assistant: assistant,
		sessions:  sessions,
		logger:    logger,
	}
}

// CreateSession godoc
// @Summary Start a conversation
// @Description Opens a new assistant session and returns the welcome message
// @Tags Chat
// @Produce json
// @Success 201 {object} response_models.SessionResponse
// @Router /api/v1/chat/sessions [post]
func (a *AssistantController) CreateSession(c *gin.Context) {
	session := a.sessions.Create()
	utils.RespondWithCode(c, http.StatusCreated, response_models.SessionResponse{
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
		Welcome:   a.assistant.Welcome(),
	}, "Session created")
}

// SendMessage godoc
// @Summary Send a message to the assistant
// @Description Classifies the message and answers with text, a trip plan or lodging options
// @Tags Chat
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.SendMessageRequest true "Message"
// @Success 200 {object} trip_models.Reply
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/v1/chat/sessions/{id}/messages [post]
func (a *AssistantController) SendMessage(c *gin.Context) {
	var req request_models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "message is required")
		return
	}

	session, err := a.sessions.Get(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}

	reply, err := a.assistant.HandleQuery(c.Request.Context(), session, req.Message)
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}
	utils.RespondSuccess(c, reply, string(reply.Outcome))
}

func (a *AssistantController) History(c *gin.Context) {
	session, err := a.sessions.Get(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}
	utils.RespondSuccess(c, response_models.HistoryResponse{
		SessionID: session.ID,
		Turns:     session.History(),
	}, "History fetched successfully")
}

// CancelInflight stops the request currently running in the session, if any.
func (a *AssistantController) CancelInflight(c *gin.Context) {
	cancelled, err := a.sessions.Cancel(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}
	utils.RespondSuccess(c, response_models.CancelResponse{Cancelled: cancelled}, "")
}

func (a *AssistantController) EndSession(c *gin.Context) {
	if err := a.sessions.End(c.Param("id")); err != nil {
		utils.HandleServiceError(c, a.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "Session ended")
}
