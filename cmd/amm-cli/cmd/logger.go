// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"io"
	"os"
	"path"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logFactory mirrors the AvalancheGo factory but lets the console writer be
// muted and the file writer be skipped when no directory is configured.
type logFactory struct {
	config logging.Config
	lock   sync.Mutex

	loggers map[string]logging.Logger
}

func newLogFactory(config logging.Config) *logFactory {
	return &logFactory{
		config:  config,
		loggers: make(map[string]logging.Logger),
	}
}

func (f *logFactory) Make(name string) (logging.Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if _, ok := f.loggers[name]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", name)
	}

	var consoleWriter io.WriteCloser = os.Stderr
	if f.config.DisableWriterDisplaying {
		consoleWriter = discardWriteCloser{io.Discard}
	}
	consoleCore := logging.NewWrappedCore(f.config.DisplayLevel, consoleWriter, logging.Colors.ConsoleEncoder())
	consoleCore.WriterDisabled = f.config.DisableWriterDisplaying
	cores := []logging.WrappedCore{consoleCore}

	if len(f.config.Directory) > 0 {
		rw := &lumberjack.Logger{
			Filename:   path.Join(f.config.Directory, name+".log"),
			MaxSize:    f.config.MaxSize,  // megabytes
			MaxAge:     f.config.MaxAge,   // days
			MaxBackups: f.config.MaxFiles, // files
			Compress:   f.config.Compress,
		}
		cores = append(cores, logging.NewWrappedCore(f.config.LogLevel, rw, f.config.LogFormat.FileEncoder()))
	}

	l := logging.NewLogger(f.config.LogFormat.WrapPrefix(name), cores...)
	f.loggers[name] = l
	return l, nil
}

func (f *logFactory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, l := range f.loggers {
		l.Stop()
	}
	f.loggers = nil
}

type discardWriteCloser struct {
	io.Writer
}

func (discardWriteCloser) Close() error {
	return nil
}
