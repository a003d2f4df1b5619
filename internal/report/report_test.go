package report

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizmaster/internal/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestQuizzesPerSubject(t *testing.T) {
	var buf bytes.Buffer
	err := QuizzesPerSubject(&buf, []model.NameCount{
		{Name: "Math", Count: 3},
		{Name: "Physics", Count: 0},
	})
	if err != nil {
		t.Fatalf("QuizzesPerSubject: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestQuizzesPerSubjectAllZero(t *testing.T) {
	// Subjects with no quizzes still produce a valid (empty) chart.
	var buf bytes.Buffer
	err := QuizzesPerSubject(&buf, []model.NameCount{
		{Name: "Math", Count: 0},
		{Name: "Physics", Count: 0},
	})
	if err != nil {
		t.Fatalf("QuizzesPerSubject all-zero: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestQuizzesPerSubjectEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := QuizzesPerSubject(&buf, nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestAttemptsPerUser(t *testing.T) {
	var buf bytes.Buffer
	err := AttemptsPerUser(&buf, []model.NameCount{
		{Name: "Alice", Count: 5},
		{Name: "Bob", Count: 0},
		{Name: "Carol", Count: 2},
	})
	if err != nil {
		t.Fatalf("AttemptsPerUser: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestAttemptsPerUserNoAttempts(t *testing.T) {
	var buf bytes.Buffer
	err := AttemptsPerUser(&buf, []model.NameCount{
		{Name: "Alice", Count: 0},
	})
	if err == nil {
		t.Error("expected error when total attempts is zero")
	}
}

func TestPublisher(t *testing.T) {
	dir := t.TempDir()
	p, err := NewPublisher(filepath.Join(dir, "charts"))
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}

	name1, err := p.Publish("bar", func(w io.Writer) error {
		_, err := w.Write([]byte("first"))
		return err
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !strings.HasPrefix(name1, "bar-") || !strings.HasSuffix(name1, ".png") {
		t.Errorf("unexpected name %q", name1)
	}

	// A second publish for the same slot gets a distinct name and removes
	// the superseded file.
	name2, err := p.Publish("bar", func(w io.Writer) error {
		_, err := w.Write([]byte("second"))
		return err
	})
	if err != nil {
		t.Fatalf("Publish again: %v", err)
	}
	if name1 == name2 {
		t.Error("expected distinct names per publish")
	}
	if _, err := os.Stat(filepath.Join(p.Dir(), name1)); !os.IsNotExist(err) {
		t.Error("superseded file should be removed")
	}
	data, err := os.ReadFile(filepath.Join(p.Dir(), name2))
	if err != nil {
		t.Fatalf("read published file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("unexpected content %q", data)
	}

	// Other slots are untouched.
	pieName, err := p.Publish("pie", func(w io.Writer) error {
		_, err := w.Write([]byte("pie"))
		return err
	})
	if err != nil {
		t.Fatalf("Publish pie: %v", err)
	}
	if _, err := os.Stat(filepath.Join(p.Dir(), name2)); err != nil {
		t.Errorf("bar file should survive pie publish: %v", err)
	}
	if _, err := os.Stat(filepath.Join(p.Dir(), pieName)); err != nil {
		t.Errorf("pie file missing: %v", err)
	}
}

func TestPublisherRenderError(t *testing.T) {
	p, err := NewPublisher(t.TempDir())
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}

	_, err = p.Publish("bar", func(w io.Writer) error {
		return io.ErrUnexpectedEOF
	})
	if err == nil {
		t.Fatal("expected render error to propagate")
	}

	// No file, not even a temp one, is left behind.
	entries, err := os.ReadDir(p.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty dir, got %d entries", len(entries))
	}
}
