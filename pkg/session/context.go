package session

import "context"

type stateContextKey struct{}

// WithState embeds a session snapshot in the context for downstream
// consumers (form handlers, route guards).
func WithState(ctx context.Context, state State) context.Context {
	return context.WithValue(ctx, stateContextKey{}, state)
}

// FromContext retrieves the session snapshot from the context.
func FromContext(ctx context.Context) (State, bool) {
	state, ok := ctx.Value(stateContextKey{}).(State)
	return state, ok
}

// UserIDFromContext returns the signed-in user's id from the snapshot in
// context, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	state, ok := FromContext(ctx)
	if !ok || !state.IsAuthenticated || state.User == nil {
		return "", false
	}
	return state.User.UserID, true
}
