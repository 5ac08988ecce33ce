package model

import (
	"context"

	"gather/shared/constant"
)

// Principal is the authenticated identity attached to a request by the auth
// middleware. Services take it as an explicit argument rather than digging it
// out of the context themselves.
type Principal struct {
	UserID int64
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == constant.RoleAdmin
}

// PrincipalFromContext returns the principal stored by the auth middleware.
// The second return value is false for unauthenticated requests.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(constant.ContextKeyPrincipal).(Principal)

	return principal, ok
}
