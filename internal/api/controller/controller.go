package controller

import (
	"net/url"

	"github.com/ougirez/yhdash/internal/service/dashboard"
)

type Controller struct {
	service *dashboard.Service
}

func NewController(service *dashboard.Service) *Controller {
	return &Controller{service: service}
}

// pathParam returns an unescaped path parameter.
func pathParam(raw string) string {
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
