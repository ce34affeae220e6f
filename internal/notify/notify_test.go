package notify

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriter_DisabledStillPrintsErrors(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, false)

	w.Notify(Success, "Saved")
	w.Notify(Error, "Save failed")

	if got := buf.String(); got != "✗ Save failed\n" {
		t.Errorf("output = %q", got)
	}

	w.SetEnabled(true)
	w.Notify(Success, "Saved")
	if got := buf.String(); got != "✗ Save failed\n✓ Saved\n" {
		t.Errorf("output = %q", got)
	}
}

func TestErrorf(t *testing.T) {
	var r Recorder
	Errorf(&r, errors.New("connection refused"), "sync preset %s", "work")

	got := r.Notices()
	if len(got) != 1 {
		t.Fatalf("notices = %v", got)
	}
	if got[0].Level != Error || got[0].Message != "sync preset work: connection refused" {
		t.Errorf("notice = %+v", got[0])
	}
}

func TestLevel_String(t *testing.T) {
	if Warning.String() != "warning" || Level(42).String() != "info" {
		t.Errorf("String() = %s, %s", Warning, Level(42))
	}
}
