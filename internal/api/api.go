package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/yhdash/internal/api/controller"
	"github.com/ougirez/yhdash/internal/pkg/config"
	"github.com/ougirez/yhdash/internal/pkg/logger"
	"github.com/ougirez/yhdash/internal/service/dashboard"
)

type APIService struct {
	router           *echo.Echo
	dashboardService *dashboard.Service
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// Handler exposes the router, e.g. for httptest.
func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(dashboardService *dashboard.Service, cfg *config.Config) (*APIService, error) {
	svc := &APIService{router: echo.New(), dashboardService: dashboardService}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(gommonLevel(cfg.Log.Level))
	svc.router.JSONSerializer = NewJSONSerializer()
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(svc.RequestIDMiddleware)
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{echo.GET},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.dashboardService)

	api.GET("/kpis", cntrl.GetKPIs)
	api.GET("/options", cntrl.GetOptions)
	api.GET("/regions", cntrl.GetRegions)

	views := api.Group("/views")
	views.GET("", cntrl.ListViews)
	views.GET("/:view", cntrl.GetView)

	api.GET("/organizers/:name", cntrl.GetOrganizerStats)

	raw := api.Group("/raw")
	raw.GET("", cntrl.ListRawDatasets)
	raw.GET("/:dataset", cntrl.GetRawDataset)

	api.GET("/charts/:view", cntrl.GetChart)

	return svc, nil
}

func gommonLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
