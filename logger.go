package sniff

// Logger lets the caller see classification decisions. Debugf gets every verdict.
// Printf is used only for container decoders that panicked on their input.
// log.Logger satisfies Printf; wrap it to provide Debugf.
type Logger interface {
	Printf(msg string, v ...any)
	Debugf(msg string, v ...any)
}

// NoLogger gives you an empty Logger for cases when you don't want any output.
func NoLogger() Logger { return &antiLogger{} }

type antiLogger struct{}

func (*antiLogger) Printf(_ string, _ ...any) {}
func (*antiLogger) Debugf(_ string, _ ...any) {}
