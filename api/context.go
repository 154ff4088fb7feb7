package api

import (
	"context"
)

type keyType string

const principalEmailKey keyType = "principalEmail"

// ctxWithPrincipalEmail records the gate-verified principal on the request.
func ctxWithPrincipalEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, principalEmailKey, email)
}

// ctxPrincipalEmail retrieves the verified principal email, if any.
func ctxPrincipalEmail(ctx context.Context) (string, bool) {
	value := ctx.Value(principalEmailKey)
	if value == nil {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}
