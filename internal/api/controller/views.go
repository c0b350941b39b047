package controller

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/yhdash/internal/domain/dto"
	"github.com/ougirez/yhdash/internal/pkg/constants"
	"github.com/ougirez/yhdash/internal/pkg/render"
	"github.com/ougirez/yhdash/internal/service/dashboard"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func bindViewQuery(ctx echo.Context) (dto.ViewQuery, error) {
	var q dto.ViewQuery
	if err := ctx.Bind(&q); err != nil {
		return q, err
	}
	if err := ctx.Validate(&q); err != nil {
		return q, err
	}
	return q, nil
}

func toParams(q dto.ViewQuery) dashboard.Params {
	return dashboard.Params{
		Filters: q.ToFilters(),
		Year:    q.Year,
		N:       q.N,
		Area:    q.Area,
		Round:   q.Round,
	}
}

func (c *Controller) ListViews(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, append(dashboard.Views(), dashboard.ViewSeatsHierarchy))
}

func (c *Controller) GetView(ctx echo.Context) error {
	name := pathParam(ctx.Param("view"))
	q, err := bindViewQuery(ctx)
	if err != nil {
		return err
	}

	if name == dashboard.ViewSeatsHierarchy {
		if q.Format == "xlsx" {
			return fmt.Errorf("%w: %s has no workbook export", constants.ErrBadRequest, name)
		}
		h, err := c.service.SeatsHierarchy(ctx.Request().Context(), q.ToFilters(), q.Year)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, h)
	}

	view, err := c.service.View(ctx.Request().Context(), name, toParams(q))
	if err != nil {
		return err
	}

	if q.Format == "xlsx" {
		ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
		ctx.Response().Header().Set(echo.HeaderContentType, mimeXLSX)
		ctx.Response().WriteHeader(http.StatusOK)
		return render.WriteWorkbook(view, ctx.Response())
	}

	return ctx.JSON(http.StatusOK, view)
}

func (c *Controller) GetChart(ctx echo.Context) error {
	name := pathParam(ctx.Param("view"))
	if name == dashboard.ViewSeatsHierarchy {
		return fmt.Errorf("view-%s: %w", name, constants.ErrNoChart)
	}

	q, err := bindViewQuery(ctx)
	if err != nil {
		return err
	}

	view, err := c.service.View(ctx.Request().Context(), name, toParams(q))
	if err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentType, "image/png")
	ctx.Response().WriteHeader(http.StatusOK)
	return render.Chart(view, ctx.Response())
}
