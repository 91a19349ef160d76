package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/professor/core/activity"
)

type adminApi struct {
	ledger *activity.Ledger
}

func registerAdminAPI(g *echo.Group, ledger *activity.Ledger) {
	api := adminApi{ledger: ledger}

	ag := g.Group("/admin")
	ag.GET("/analytics", api.analytics)
}

func (api *adminApi) analytics(ctx echo.Context) error {
	report, err := api.ledger.Report()
	if err != nil {
		return errors.Wrap(err, "building analytics report")
	}
	return ctx.JSON(http.StatusOK, report)
}
