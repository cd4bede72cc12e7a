package http

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor identity headers set by the trusted gateway in front of this
// service. Authentication itself is an external collaborator.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

// actorFromRequest resolves the acting identity from gateway headers.
func actorFromRequest(ctx echo.Context) (kernel.Actor, error) {
	id := ctx.Request().Header.Get(HeaderActorID)
	if id == "" {
		return kernel.Actor{}, errs.NewValueIsRequiredError(HeaderActorID + " header")
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(id, role)
}
