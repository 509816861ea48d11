// AngelaMos | 2026
// context.go

package access

import (
	"context"

	"github.com/carterperez-dev/teamcomm/internal/catalog"
)

// Identity is what a valid session resolves to.
type Identity struct {
	SessionID   string
	UserID      string
	Username    string
	Role        catalog.Role
	WorkspaceID *string
}

// Caller is the unverified request context: the presented session token and
// the workspace selection. It is checked by Policy.Authorize on every
// operation.
type Caller struct {
	Token     string
	Selection Selection
}

type contextKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

func CallerFrom(ctx context.Context) Caller {
	if c, ok := ctx.Value(contextKey{}).(Caller); ok {
		return c
	}
	return Caller{Selection: SelectAll()}
}
