// Package logger wraps go.uber.org/zap with:
//   - a process-wide sugared logger with a mutable level,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - leveled convenience functions that read the logger from the context.
package logger
