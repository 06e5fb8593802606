package core

// Logger is the application-wide logging contract.
//
// Implementations accept extra args in the form: error, map[string]interface{}
// or the currently logged-in user; see services/logger.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
