package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	apperrors "task-manager.com/task-manager/internal/errors"
	middleware "task-manager.com/task-manager/internal/http/middlewares"
	"task-manager.com/task-manager/internal/http/validators"
)

func Register(e *echo.Echo, auth *AuthHandler, tasks *TaskHandler, resolver middleware.UserResolver, logger *slog.Logger) {
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.New()
	e.HTTPErrorHandler = ErrorHandler(e)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))

	e.POST("/auth/register", auth.Register)
	e.POST("/auth/login", auth.Login)

	g := e.Group("/tasks", middleware.Authenticate(resolver))
	g.GET("", tasks.ListTasks)
	g.POST("", tasks.CreateTask)
	g.GET("/:id", tasks.GetTask)
	g.PUT("/:id", tasks.UpdateTask)
	g.DELETE("/:id", tasks.DeleteTask)
}

// ErrorHandler renders an Exception as {"message": ...}; everything else
// goes through echo's default handler.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var exc *apperrors.Exception
		if !errors.As(err, &exc) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		if exc.StatusCode == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(exc.StatusCode)
			return
		}
		_ = c.JSON(exc.StatusCode, echo.Map{"message": exc.Message})
	}
}
