package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/yhdash/internal/domain/dto"
)

func (c *Controller) ListRawDatasets(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.service.RawDatasets(ctx.Request().Context()))
}

func (c *Controller) GetRawDataset(ctx echo.Context) error {
	var q dto.RawQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}
	if err := ctx.Validate(&q); err != nil {
		return err
	}

	page, err := c.service.Raw(ctx.Request().Context(), pathParam(ctx.Param("dataset")), q.Offset, q.Limit)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, page)
}
