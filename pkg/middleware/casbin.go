package middleware

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/casbin/casbin/v2/util"
	"github.com/labstack/echo/v4"

	"CareerGo/internal/api"
	"CareerGo/internal/apperr"
	"CareerGo/internal/auth"
)

var (
	enforcer     *casbin.Enforcer
	enforcerOnce sync.Once
	enforcerErr  error
)

const casbinModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, eft

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act`

func initEnforcer() (*casbin.Enforcer, error) {
	enforcerOnce.Do(func() {
		m, err := model.NewModelFromString(casbinModel)
		if err != nil {
			enforcerErr = err
			return
		}
		adapter := fileadapter.NewAdapter("rbac_policy.csv")
		enforcer, enforcerErr = casbin.NewEnforcer(m, adapter)
		if enforcerErr == nil {
			enforcer.AddFunction("keyMatch", util.KeyMatchFunc)
		}
	})
	return enforcer, enforcerErr
}

// Casbin enforces role-based access on the matched route path. It must run
// after JWT so the role claim is available.
func Casbin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.JWTClaims)
		if !ok || claims == nil {
			return api.Fail(c, apperr.Unauthorized())
		}

		enf, err := initEnforcer()
		if err != nil {
			return api.Fail(c, apperr.Internal(err))
		}

		allowed, err := enf.Enforce(claims.Role, c.Path(), c.Request().Method)
		if err != nil {
			return api.Fail(c, apperr.Internal(err))
		}
		if !allowed {
			return api.Fail(c, apperr.Forbidden())
		}
		return next(c)
	}
}
