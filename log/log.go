// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2025-present Datadog, Inc.

// Package log is the leveled logger shared by every pinger strategy. Embedders
// can replace the whole function table with SetLogger.
package log

import (
	"fmt"
	"log"
	"sync/atomic"
)

// LogLevel orders log verbosity from least (LevelError) to most (LevelTrace)
type LogLevel int

const (
	LevelError LogLevel = iota + 1
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var levelNames = map[string]LogLevel{
	"error": LevelError,
	"warn":  LevelWarn,
	"info":  LevelInfo,
	"debug": LevelDebug,
	"trace": LevelTrace,
}

func (l LogLevel) String() string {
	for name, level := range levelNames {
		if level == l {
			return name
		}
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// ParseLogLevel maps one of error, warn, info, debug or trace to its level
func ParseLogLevel(s string) (LogLevel, error) {
	level, ok := levelNames[s]
	if !ok {
		return 0, fmt.Errorf("invalid log level %q (expected error, warn, info, debug or trace)", s)
	}
	return level, nil
}

var (
	enabled atomic.Bool
	level   atomic.Int32
)

func init() {
	enabled.Store(true)
	level.Store(int32(LevelTrace))
}

// SetVerbose turns the default logger on or off
func SetVerbose(v bool) {
	enabled.Store(v)
}

// EnabledLogging is the SetVerbose switch used by the HTTP server binary
func EnabledLogging(v bool) {
	SetVerbose(v)
}

// SetLogLevel drops every message more verbose than l
func SetLogLevel(l LogLevel) {
	level.Store(int32(l))
}

func active(l LogLevel) bool {
	return enabled.Load() && LogLevel(level.Load()) >= l
}

type Logger struct {
	Tracef    func(format string, args ...interface{})
	Infof     func(format string, args ...interface{})
	Debugf    func(format string, args ...interface{})
	Warnf     func(format string, args ...interface{}) error
	Errorf    func(format string, args ...interface{}) error
	TraceFunc func(func() string)
}

var logger = Logger{
	Tracef:    defaultTracef,
	Infof:     defaultInfof,
	Debugf:    defaultDebugf,
	Warnf:     defaultWarnf,
	Errorf:    defaultErrorf,
	TraceFunc: defaultTraceFunc,
}

func SetLogger(l Logger) {
	logger = l
}

func Tracef(format string, args ...interface{}) {
	if logger.Tracef != nil {
		logger.Tracef(format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	if logger.Infof != nil {
		logger.Infof(format, args...)
	}
}

func Debugf(format string, args ...interface{}) {
	if logger.Debugf != nil {
		logger.Debugf(format, args...)
	}
}

func Warnf(format string, args ...interface{}) error {
	if logger.Warnf != nil {
		return logger.Warnf(format, args...)
	}
	return nil
}

func Errorf(format string, args ...interface{}) error {
	if logger.Errorf != nil {
		return logger.Errorf(format, args...)
	}
	return nil
}

func TraceFunc(logFunc func() string) {
	if logger.TraceFunc != nil {
		logger.TraceFunc(logFunc)
	}
}

var (
	defaultTracef = func(format string, args ...interface{}) {
		if active(LevelTrace) {
			log.Printf("[TRACE] "+format, args...)
		}
	}

	defaultInfof = func(format string, args ...interface{}) {
		if active(LevelInfo) {
			log.Printf("[INFO] "+format, args...)
		}
	}

	defaultDebugf = func(format string, args ...interface{}) {
		if active(LevelDebug) {
			log.Printf("[DEBUG] "+format, args...)
		}
	}

	defaultErrorf = func(format string, args ...interface{}) error {
		err := fmt.Errorf(format, args...)
		if active(LevelError) {
			log.Print("[ERROR] " + err.Error())
		}
		return err
	}

	defaultWarnf = func(format string, args ...interface{}) error {
		err := fmt.Errorf(format, args...)
		if active(LevelWarn) {
			log.Print("[WARN] " + err.Error())
		}
		return err
	}

	defaultTraceFunc = func(logFunc func() string) {
		if active(LevelTrace) {
			log.Print("[TRACEFUNC] " + logFunc())
		}
	}
)
