package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/yhdash/internal/domain/dto"
)

func (c *Controller) GetRegions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.service.Regions(ctx.Request().Context()))
}

func (c *Controller) GetKPIs(ctx echo.Context) error {
	var q dto.FilterQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, c.service.KPIs(ctx.Request().Context(), q.ToFilters()))
}

func (c *Controller) GetOptions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.service.Options(ctx.Request().Context()))
}

func (c *Controller) GetOrganizerStats(ctx echo.Context) error {
	name := pathParam(ctx.Param("name"))

	return ctx.JSON(http.StatusOK, c.service.OrganizerStats(ctx.Request().Context(), name))
}
