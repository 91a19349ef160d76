package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/professor/core/chat"
)

type (
	chatApi struct {
		svc *chat.Service
	}

	ChatResponse struct {
		Response string `json:"response"`
	}

	ClearRequest struct {
		SessionID string `json:"sessionId"`
	}

	SuccessResponse struct {
		Success bool `json:"success"`
	}

	HistoryResponse struct {
		SessionID string      `json:"sessionId"`
		Messages  []chat.Turn `json:"messages"`
	}
)

func registerChatAPI(g *echo.Group, svc *chat.Service) {
	api := chatApi{svc: svc}

	g.POST("/chat", api.exchange)
	g.GET("/chat/:sessionId/history", api.history)
	g.POST("/clear", api.clear)
}

func (api *chatApi) exchange(ctx echo.Context) error {
	var data chat.ExchangeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ExchangeRequest")
	}

	// the completion runs to the end even if the client goes away
	reply, err := api.svc.Exchange(context.WithoutCancel(ctx.Request().Context()), data)
	if err != nil {
		if chat.IsChatFailed(err) { // detail is logged by the error handler, never returned
			return echo.NewHTTPError(http.StatusInternalServerError, chatFailedMsg).SetInternal(err)
		}
		return err
	}

	return ctx.JSON(http.StatusOK, ChatResponse{Response: reply})
}

func (api *chatApi) history(ctx echo.Context) error {
	sessionID := ctx.Param("sessionId")
	turns := api.svc.History(sessionID)
	if turns == nil {
		turns = make([]chat.Turn, 0)
	}
	return ctx.JSON(http.StatusOK, HistoryResponse{SessionID: sessionID, Messages: turns})
}

func (api *chatApi) clear(ctx echo.Context) error {
	var data ClearRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ClearRequest")
	}
	api.svc.Clear(data.SessionID)
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}
