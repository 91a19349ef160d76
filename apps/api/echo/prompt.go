package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/professor/core/prompt"
)

type PromptsResponse struct {
	Subject string          `json:"subject"`
	Prompts []prompt.Prompt `json:"prompts"`
}

func registerPromptAPI(g *echo.Group) {
	// both verbs are served: the dashboards fetch with GET, older clients POST
	g.GET("/prompts/:subject", prompts)
	g.POST("/prompts/:subject", prompts)
}

func prompts(ctx echo.Context) error {
	subject, list := prompt.ForSubject(ctx.Param("subject"))
	return ctx.JSON(http.StatusOK, PromptsResponse{Subject: subject, Prompts: list})
}
