package stage

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// writeJar builds a jar fixture with the given entries, in order. Entry
// names use forward slashes as real jars do.
func writeJar(t *testing.T, path string, entries []struct{ name, content string }) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating jar fixture: %v", err)
	}
	w := zip.NewWriter(f)
	for _, e := range entries {
		ew, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("adding %s: %v", e.name, err)
		}
		if _, err := ew.Write([]byte(e.content)); err != nil {
			t.Fatalf("writing %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing jar writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing jar file: %v", err)
	}
}

func TestExtractConfigSettings_FiltersEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jar := filepath.Join(dir, "config.jar")
	writeJar(t, jar, []struct{ name, content string }{
		{"bin/", ""},
		{"bin/jmeter.sh", "#!/bin/sh"},
		{"bin/jmeter.properties", "a=1"},
		{"bin/examples/example.jmx", "<plan/>"},
		{"docs/readme.txt", "nope"},
	})

	tree, err := BuildTree(filepath.Join(dir, "work"), "")
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	if err := extractConfigSettings(jar, tree, "logkit.xml"); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	for _, want := range []string{
		filepath.Join(tree.Work, "bin", "jmeter.sh"),
		filepath.Join(tree.Work, "bin", "examples", "example.jmx"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("expected %s: %v", want, err)
		}
	}
	for _, unwanted := range []string{
		filepath.Join(tree.Work, "bin", "jmeter.properties"),
		filepath.Join(tree.Work, "docs", "readme.txt"),
	} {
		if _, err := os.Stat(unwanted); err == nil {
			t.Errorf("%s should not have been extracted", unwanted)
		}
	}
}

func TestExtractConfigSettings_StopsAtExistingLogConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jar := filepath.Join(dir, "config.jar")
	writeJar(t, jar, []struct{ name, content string }{
		{"bin/a.properties", "a=1"},
		{"bin/logkit.xml", "<bundled/>"},
		{"bin/b.txt", "later entry"},
	})

	tree, err := BuildTree(filepath.Join(dir, "work"), "")
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}

	// A user-supplied override is already staged; nothing may clobber it
	// and nothing after it may be extracted.
	existing := filepath.Join(tree.Work, "bin", "logkit.xml")
	if err := os.WriteFile(existing, []byte("<custom/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := extractConfigSettings(jar, tree, "logkit.xml"); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	content, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "<custom/>" {
		t.Errorf("user override clobbered: %q", content)
	}
	if _, err := os.Stat(filepath.Join(tree.Work, "bin", "b.txt")); err == nil {
		t.Error("b.txt extracted after the early-exit entry")
	}
}

func TestExtractConfigSettings_NoExistingLogConfigExtractsAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jar := filepath.Join(dir, "config.jar")
	writeJar(t, jar, []struct{ name, content string }{
		{"bin/logkit.xml", "<bundled/>"},
		{"bin/b.txt", "later entry"},
	})

	tree, err := BuildTree(filepath.Join(dir, "work"), "")
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	if err := extractConfigSettings(jar, tree, "logkit.xml"); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	for _, want := range []string{
		filepath.Join(tree.Work, "bin", "logkit.xml"),
		filepath.Join(tree.Work, "bin", "b.txt"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("expected %s: %v", want, err)
		}
	}
}

func TestExtractConfigSettings_RejectsEscapingEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jar := filepath.Join(dir, "config.jar")
	writeJar(t, jar, []struct{ name, content string }{
		{"bin/../../evil.txt", "nope"},
	})

	work := filepath.Join(dir, "nested", "work")
	tree, err := BuildTree(work, "")
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	if err := extractConfigSettings(jar, tree, "logkit.xml"); err == nil {
		t.Error("expected error for entry escaping the work directory")
	}
	if _, err := os.Stat(filepath.Join(dir, "nested", "evil.txt")); err == nil {
		t.Error("escaping entry was written outside the tree")
	}
}

func TestExtractConfigSettings_UnreadableArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "not-a-jar.jar")
	if err := os.WriteFile(garbage, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	tree, err := BuildTree(filepath.Join(dir, "work"), "")
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	if err := extractConfigSettings(garbage, tree, "logkit.xml"); err == nil {
		t.Error("expected error for malformed archive")
	}
}
