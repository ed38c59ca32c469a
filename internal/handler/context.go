package handler

import (
	"context"

	"github.com/eventboard/backend/internal/model"
)

type identityCtxKey struct{}

func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*model.Identity)
	return identity, ok && identity != nil
}
