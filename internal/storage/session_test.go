package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/helsomnoi/airborne-crew/internal/geom"
	"github.com/helsomnoi/airborne-crew/internal/scene"
)

func sampleState() *scene.State {
	st := scene.New()
	st.SetPrimitive(scene.DefaultCircle())
	st.SetVisible(true)
	st.SetTarget(geom.P(120, -15))
	return st
}

func TestWriteAndReadSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SessionFileName)
	st := sampleState()

	if err := WriteSnapshot(path, st.Snapshot()); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	snap, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	restored := scene.New()
	restored.Restore(snap)
	if restored.Primitive() != st.Primitive() || restored.Target() != st.Target() || restored.Visible() != st.Visible() {
		t.Fatalf("round trip mismatch: %+v", snap)
	}
}

func TestWriteSnapshotCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", SessionFileName)
	if err := WriteSnapshot(path, sampleState().Snapshot()); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
}

func TestWriteSnapshotLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SessionFileName)
	if err := WriteSnapshot(path, sampleState().Snapshot()); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the snapshot file, got %d entries", len(entries))
	}
}

func TestReadSnapshotRejectsInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), SessionFileName)
	// visible has the wrong type, which the schema must catch
	bad := `{"primitive":{"kind":"circle","radius":50},"targetX":1,"targetY":2,"visible":"yes"}`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("write bad snapshot: %v", err)
	}
	if _, err := ReadSnapshot(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestReadSnapshotRejectsUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), SessionFileName)
	bad := `{"primitive":{"kind":"triangle"},"targetX":0,"targetY":0,"visible":false}`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("write bad snapshot: %v", err)
	}
	if _, err := ReadSnapshot(path); err == nil {
		t.Fatalf("expected validation error for unknown shape kind")
	}
}

func TestReadSnapshotMissingFile(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing snapshot")
	}
}

func TestWriteSnapshotOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), SessionFileName)
	first := sampleState().Snapshot()
	if err := WriteSnapshot(path, first); err != nil {
		t.Fatalf("first write: %v", err)
	}
	st := scene.New() // invisible, no primitive
	if err := WriteSnapshot(path, st.Snapshot()); err != nil {
		t.Fatalf("second write: %v", err)
	}
	snap, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if snap.Visible || snap.Primitive.Kind != scene.KindNone {
		t.Fatalf("second write did not replace the snapshot: %+v", snap)
	}
}
