package testutil

import (
	"context"

	"github.com/flexprice/taxengine/internal/types"
)

// ResolverKey is the resolver registered for service tests.
const ResolverKey = "fixed_rate"

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxTenantID, types.DefaultTenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
