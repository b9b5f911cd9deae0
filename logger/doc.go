// Package logger provides structured logging for rxkit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("join")
//	log.Debug("plan deactivated", logger.Fields(logger.FieldPlan, 2))
//
// Libraries that accept a *Logger fall back to Nop when handed nil.
package logger
