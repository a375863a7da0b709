package logging

import "go.uber.org/zap"

// Setup builds the process-wide zap logger and installs it as the
// global. Mode "production" selects the JSON encoder; anything else
// gets the development console encoder.
func Setup(mode string) error {
	var cfg zap.Config
	if mode == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = zap.L().Sync()
}
