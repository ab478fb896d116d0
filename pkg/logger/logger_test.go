package logger

import (
	"bytes"
	"testing"
)

func TestPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo, &buf)

	log.Debug("hidden")
	log.Info("verified", "events", 9, "runs", 2)
	log.Warn("run incomplete", "run", "abc")
	log.Error("cannot read transcript")

	want := "verified events=9 runs=2\n" +
		"warning: run incomplete run=abc\n" +
		"error: cannot read transcript\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelDebug, &buf).With("cmd", "trace").WithGroup("run")

	log.Debug("loaded", "id", "r1")

	want := "loaded cmd=trace run.id=r1\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("loud", &buf)
	log.Debug("hidden")
	log.Info("shown")
	if buf.String() != "shown\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
}
