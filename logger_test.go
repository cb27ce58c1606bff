package crcgo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func bufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level}))
}

func TestLogger_LogSum(t *testing.T) {
	var buf bytes.Buffer
	l := bufferLogger(&buf, slog.LevelDebug)

	l.LogSum(context.Background(), "a.bin", 2048, 0xcbf43926, time.Second, nil)
	out := buf.String()
	assert.Contains(t, out, "checksum completed")
	assert.Contains(t, out, "crc32=cbf43926")
	assert.Contains(t, out, "2.0 KiB")

	buf.Reset()
	l.LogSum(context.Background(), "a.bin", 0, 0, 0, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "boom")
}

func TestLogger_LogBatch(t *testing.T) {
	var buf bytes.Buffer
	l := bufferLogger(&buf, slog.LevelInfo)

	l.LogBatch(context.Background(), 3, 0, 3<<20, time.Second)
	assert.Contains(t, buf.String(), "batch checksum completed")
	assert.Contains(t, buf.String(), "3.0 MiB")

	buf.Reset()
	l.LogBatch(context.Background(), 3, 1, 0, time.Second)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "failed=1")
}

func TestLogger_LogVerify(t *testing.T) {
	var buf bytes.Buffer
	l := bufferLogger(&buf, slog.LevelInfo)

	l.LogVerify(context.Background(), 5, 0, nil)
	assert.Contains(t, buf.String(), "verification completed")

	buf.Reset()
	l.LogVerify(context.Background(), 5, 2, nil)
	assert.Contains(t, buf.String(), "mismatches=2")

	buf.Reset()
	l.LogVerify(context.Background(), 5, 0, errors.New("io"))
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := bufferLogger(&buf, slog.LevelInfo).WithName("x.bin").WithSize(10)

	l.Info("hello")
	assert.Contains(t, buf.String(), "name=x.bin")
	assert.Contains(t, buf.String(), "size=10")
}

func TestLogger_Noop(t *testing.T) {
	l := NoopLogger()
	l.LogSum(context.Background(), "a", 1, 1, time.Millisecond, nil)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
