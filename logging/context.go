package logging

import "context"

type debugModeKey struct{}

// EnableDebugMode returns a context under which CDebugw logs regardless of the logger level.
// The tag names who enabled it and defaults to "debug".
func EnableDebugMode(ctx context.Context, tag string) context.Context {
	if tag == "" {
		tag = "debug"
	}
	return context.WithValue(ctx, debugModeKey{}, tag)
}

// IsDebugMode returns whether ctx has debug logging enabled.
func IsDebugMode(ctx context.Context) bool {
	tag, _ := ctx.Value(debugModeKey{}).(string)
	return tag != ""
}
