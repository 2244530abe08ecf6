package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classroom/core/assignment"
	"github.com/trezcool/classroom/core/dashboard"
	"github.com/trezcool/classroom/core/validation"
)

type dashboardApi struct {
	session *dashboard.Session
}

func registerDashboardAPI(g *echo.Group, session *dashboard.Session) {
	api := dashboardApi{session: session}

	g.GET("/dashboard", api.dashboardRetrieve)
	g.PUT("/dashboard/filter", api.dashboardSetFilter)
	g.GET("/courses", api.courseQuery)
	g.POST("/validate/:schema", api.validate)
}

func (api *dashboardApi) dashboardRetrieve(ctx echo.Context) error {
	snap, err := api.session.Snapshot()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *dashboardApi) dashboardSetFilter(ctx echo.Context) error {
	data := new(filterRequest)
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to filterRequest")
	}
	if err := api.session.SetQueryFilter(data.Status, data.Search); err != nil {
		return err
	}
	return api.dashboardRetrieve(ctx)
}

func (api *dashboardApi) courseQuery(ctx echo.Context) error {
	courses, err := api.session.Courses()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *dashboardApi) validate(ctx echo.Context) error {
	schema := ctx.Param("schema")
	if _, ok := validation.Lookup(validation.SchemaName(schema)); !ok {
		return errHttpNotFound
	}

	data := make(map[string]string)
	if err := new(echo.DefaultBinder).BindBody(ctx, &data); err != nil {
		return errors.Wrap(err, "binding to validation.Values")
	}
	res, err := api.session.Validate(schema, data)
	if err != nil {
		return err
	}
	if !res.OK {
		return res.Err()
	}
	return ctx.JSON(http.StatusOK, validateResponse{OK: true, Value: res.Value})
}

type assignmentApi struct {
	session *dashboard.Session
}

func registerAssignmentAPI(g *echo.Group, session *dashboard.Session) {
	api := assignmentApi{session: session}

	ag := g.Group("/assignments")
	ag.GET("", api.assignmentQuery)
	ag.POST("", api.assignmentCreate)
	ag.GET("/stats", api.assignmentStats)
	ag.GET("/deadlines", api.assignmentDeadlines)

	// detail endpoints
	ag.GET("/:id", api.assignmentRetrieve)
	ag.PUT("/:id", api.assignmentUpdate)
	ag.POST("/:id/submit", api.assignmentSubmit)
	ag.POST("/:id/grade", api.assignmentGrade)
}

func (api *assignmentApi) assignmentQuery(ctx echo.Context) error {
	filter, err := new(filterRequest).Bind(ctx)
	if err != nil {
		return err
	}
	assignments, err := api.session.Assignments(filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *assignmentApi) assignmentCreate(ctx echo.Context) error {
	data := new(assignment.Input)
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to assignment.Input")
	}
	asg, err := api.session.CreateAssignment(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, asg)
}

func (api *assignmentApi) assignmentStats(ctx echo.Context) error {
	stats, err := api.session.Stats()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *assignmentApi) assignmentDeadlines(ctx echo.Context) error {
	limit, err := queryInt(ctx, "limit", dashboard.DefaultDeadlineLimit)
	if err != nil {
		return err
	}
	deadlines, err := api.session.UpcomingDeadlines(limit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, deadlines)
}

func (api *assignmentApi) assignmentRetrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	asg, err := api.session.Assignment(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) assignmentUpdate(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	data := new(assignment.Input)
	if err = ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to assignment.Input")
	}
	asg, err := api.session.UpdateAssignment(id, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) assignmentSubmit(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	data := new(assignment.SubmitInput)
	if err = ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to assignment.SubmitInput")
	}
	asg, err := api.session.SubmitAssignment(id, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) assignmentGrade(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	data := new(assignment.GradeInput)
	if err = ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to assignment.GradeInput")
	}
	asg, err := api.session.GradeAssignment(id, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, asg)
}

type notificationApi struct {
	session *dashboard.Session
}

func registerNotificationAPI(g *echo.Group, session *dashboard.Session) {
	api := notificationApi{session: session}

	ng := g.Group("/notifications")
	ng.GET("", api.notificationQuery)
	ng.POST("/read", api.notificationReadAll)
	ng.POST("/:id/read", api.notificationRead)
}

func (api *notificationApi) notificationQuery(ctx echo.Context) error {
	list, unread := api.session.Notifications()
	return ctx.JSON(http.StatusOK, notificationsResponse{Notifications: list, UnreadCount: unread})
}

func (api *notificationApi) notificationReadAll(ctx echo.Context) error {
	api.session.MarkAllNotificationsRead()
	return api.notificationQuery(ctx)
}

func (api *notificationApi) notificationRead(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	api.session.MarkNotificationRead(id)
	return api.notificationQuery(ctx)
}
