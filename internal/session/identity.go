package session

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the validated caller of an API request together with the
// provider tokens stored for them.
type Identity struct {
	UserID       uuid.UUID
	Email        string
	AccessToken  string
	RefreshToken string
}

type ctxKey struct{}

func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok && id.UserID != uuid.Nil
}
