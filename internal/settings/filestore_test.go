package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := fs.Get(ThemeKey); ok {
		t.Error("expected empty store")
	}

	if err := fs.Set(ThemeKey, "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, ok := reopened.Get(ThemeKey); !ok || v != "dark" {
		t.Errorf("Get = %q, %v", v, ok)
	}
	if got := Load(reopened).Theme(); got != ThemeDark {
		t.Errorf("theme = %q, want dark", got)
	}
}

func TestFileStoreEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := fs.Set(ThemeKey, "light"); err != nil {
		t.Fatalf("set: %v", err)
	}
}

func TestFileStoreInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("theme: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFileStore(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefaultPath(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if path != filepath.Join(tmp, ".config", "pf", "preferences.yaml") {
		t.Errorf("path = %q", path)
	}
}
