package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/professor/core/classroom"
)

type (
	teacherApi struct {
		svc      *classroom.Service
		validate *validator.Validate
	}

	RegisterResponse struct {
		Success   bool              `json:"success"`
		TeacherID string            `json:"teacherId"`
		Teacher   classroom.Teacher `json:"teacher"`
	}

	LoginResponse struct {
		Success bool              `json:"success"`
		Teacher classroom.Teacher `json:"teacher"`
	}

	CreateClassResponse struct {
		Success bool                `json:"success"`
		Class   classroom.ClassRoom `json:"class"`
	}

	ClassesResponse struct {
		Classes []classroom.ClassSummary `json:"classes"`
	}

	StudentsResponse struct {
		Students []classroom.StudentSummary `json:"students"`
	}
)

func registerTeacherAPI(g *echo.Group, svc *classroom.Service, validate *validator.Validate) {
	api := teacherApi{svc: svc, validate: validate}

	tg := g.Group("/teacher")
	tg.POST("/register", api.register)
	tg.POST("/login", api.login)
	tg.POST("/create-class", api.createClass)
	tg.GET("/:teacherId/classes", api.classes)
	tg.GET("/:teacherId/students", api.students)
}

// setActingTeacher loads the teacher the request acts for, so that errors get reported against them.
func (api *teacherApi) setActingTeacher(ctx echo.Context, teacherID string) error {
	teacher, err := api.svc.GetTeacher(teacherID)
	if err != nil {
		return classroomHTTPError(err, "querying teacher")
	}
	ctx.Set(actingTeacherKey, teacher)
	return nil
}

// Handlers

func (api *teacherApi) register(ctx echo.Context) error {
	var data classroom.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	teacher, err := api.svc.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering teacher")
	}

	return ctx.JSON(http.StatusOK, RegisterResponse{Success: true, TeacherID: teacher.ID, Teacher: teacher})
}

func (api *teacherApi) login(ctx echo.Context) error {
	var data classroom.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}

	teacher, err := api.svc.Authenticate(data.Email, data.Password)
	if err != nil {
		return classroomHTTPError(err, "authenticating")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Success: true, Teacher: teacher})
}

func (api *teacherApi) createClass(ctx echo.Context) error {
	var data classroom.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.setActingTeacher(ctx, data.TeacherID); err != nil {
		return err
	}

	class, err := api.svc.CreateClass(data)
	if err != nil {
		return classroomHTTPError(err, "creating class")
	}

	return ctx.JSON(http.StatusOK, CreateClassResponse{Success: true, Class: class})
}

func (api *teacherApi) classes(ctx echo.Context) error {
	if err := api.setActingTeacher(ctx, ctx.Param("teacherId")); err != nil {
		return err
	}

	classes, err := api.svc.TeacherClasses(ctx.Param("teacherId"))
	if err != nil {
		return classroomHTTPError(err, "querying teacher classes")
	}
	return ctx.JSON(http.StatusOK, ClassesResponse{Classes: classes})
}

func (api *teacherApi) students(ctx echo.Context) error {
	if err := api.setActingTeacher(ctx, ctx.Param("teacherId")); err != nil {
		return err
	}

	students, err := api.svc.TeacherStudents(ctx.Param("teacherId"))
	if err != nil {
		return classroomHTTPError(err, "querying teacher students")
	}
	return ctx.JSON(http.StatusOK, StudentsResponse{Students: students})
}
