package log

import (
	"go.uber.org/zap"
)

// Logger is a no-op until InitLogger runs, so packages can log from tests
// without any setup.
var Logger = zap.NewNop()

func InitLogger() {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	Logger = l
}

// UseProduction swaps the development logger for zap's JSON production
// logger. Called once the config says we are not running in dev.
func UseProduction() {
	l, err := zap.NewProduction()
	if err != nil {
		Logger.Error("failed to build production logger", zap.Error(err))
		return
	}
	_ = Logger.Sync()
	Logger = l
}

func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
