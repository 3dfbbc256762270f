package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.add("debug", msg, fields)
}

func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.add("info", msg, fields)
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.add("warn", msg, fields)
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.add("error", msg, fields)
}

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.msg)
	}
	return out
}

var errStorage = errors.New("storage unavailable")

// mapStorage is an in-memory StoragePort whose operations can be made to fail.
type mapStorage struct {
	items     map[string]string
	failGet   bool
	failSetOn string
}

func newMapStorage() *mapStorage {
	return &mapStorage{items: map[string]string{}}
}

func (s *mapStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	if s.failGet {
		return "", false, errStorage
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *mapStorage) SetItem(_ context.Context, key, value string) error {
	if key == s.failSetOn {
		return errStorage
	}
	s.items[key] = value
	return nil
}

func (s *mapStorage) RemoveItem(_ context.Context, key string) error {
	delete(s.items, key)
	return nil
}

type fakeDocument struct {
	titles []string
}

func (d *fakeDocument) SetTitle(title string) {
	d.titles = append(d.titles, title)
}

type navigation struct {
	to     string
	reason domain.DecisionReason
}

type fakeMetrics struct {
	navigations []navigation
}

func (m *fakeMetrics) RecordRequest(string, int, time.Time) {}

func (m *fakeMetrics) RecordNavigation(to string, reason domain.DecisionReason) {
	m.navigations = append(m.navigations, navigation{to: to, reason: reason})
}
