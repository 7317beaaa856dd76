package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	encoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	leveler = &levelSetter{
		levelers: make(map[string]zap.AtomicLevel),
	}
	output = &switchSyncer{ws: zapcore.Lock(os.Stdout)}
)

type Leveler interface {
	SetLevel(name string, level zapcore.Level)
	GetLevel(name string) zapcore.Level
}

type levelSetter struct {
	levelers map[string]zap.AtomicLevel
	mu       sync.RWMutex
}

var _ Leveler = (*levelSetter)(nil)

func GetLeveler() Leveler {
	return leveler
}

func (lw *levelSetter) SetLevel(name string, level zapcore.Level) {
	_ = lw.setLevel(name, level)
}

func (lw *levelSetter) GetLevel(name string) zapcore.Level {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	if l, ok := lw.levelers[name]; ok {
		return l.Level()
	}

	return zap.InfoLevel
}

func (lw *levelSetter) setLevel(name string, level zapcore.Level) zap.AtomicLevel {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if _, ok := lw.levelers[name]; !ok {
		lw.levelers[name] = zap.NewAtomicLevelAt(level)
	}

	lw.levelers[name].SetLevel(level)

	return lw.levelers[name]
}

func (lw *levelSetter) setAll(level zapcore.Level) {
	lw.mu.RLock()
	defer lw.mu.RUnlock()

	for _, l := range lw.levelers {
		l.SetLevel(level)
	}
}

// SetLevel changes the level of every logger created so far.
func SetLevel(level zapcore.Level) {
	leveler.setAll(level)
}

// switchSyncer lets the destination change after package level loggers
// have already been built.
type switchSyncer struct {
	mu sync.RWMutex
	ws zapcore.WriteSyncer
}

func (s *switchSyncer) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ws.Write(p)
}

func (s *switchSyncer) Sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ws.Sync()
}

// SetOutput redirects all loggers to ws. The terminal sink owns stdout, so
// logs have to go somewhere else while it is running.
func SetOutput(ws zapcore.WriteSyncer) {
	output.mu.Lock()
	output.ws = zapcore.Lock(ws)
	output.mu.Unlock()
}

// OpenFile points all loggers at the named file, creating it if needed.
// The returned func restores stdout and closes the file.
func OpenFile(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	SetOutput(f)
	return func() {
		SetOutput(os.Stdout)
		_ = f.Close()
	}, nil
}

func New(name string) *zap.SugaredLogger {
	level := leveler.setLevel(name, zap.InfoLevel)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), output, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.PanicLevel)).Named(name).Sugar()
}
