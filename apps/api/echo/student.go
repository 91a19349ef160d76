package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/professor/core/classroom"
)

type (
	studentApi struct {
		svc      *classroom.Service
		validate *validator.Validate
	}

	JoinedClass struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Subject     string `json:"subject"`
		Description string `json:"description"`
	}

	JoinResponse struct {
		Success   bool        `json:"success"`
		StudentID string      `json:"studentId"`
		Class     JoinedClass `json:"class"`
	}
)

func registerStudentAPI(g *echo.Group, svc *classroom.Service, validate *validator.Validate) {
	api := studentApi{svc: svc, validate: validate}

	sg := g.Group("/student")
	sg.POST("/join", api.join)
}

func (api *studentApi) join(ctx echo.Context) error {
	var data classroom.JoinClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to JoinClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	student, class, err := api.svc.Join(data)
	if err != nil {
		return classroomHTTPError(err, "joining class")
	}

	return ctx.JSON(http.StatusOK, JoinResponse{
		Success:   true,
		StudentID: student.ID,
		Class: JoinedClass{
			ID:          class.ID,
			Name:        class.Name,
			Subject:     class.Subject,
			Description: class.Description,
		},
	})
}
