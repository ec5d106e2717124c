//nolint:testpackage // using package name 'cmdline' to access unexported fields for testing
package cmdline

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestPropertiesOrderAndOverwrite(t *testing.T) {
	props := NewProperties().
		Set("a", "1").
		Set("b", "2").
		Set("a", "3")

	if !reflect.DeepEqual(props.Keys(), []string{"a", "b"}) {
		t.Errorf("expected insertion order [a b], got %v", props.Keys())
	}
	if v, _ := props.Get("a"); v != "3" {
		t.Errorf("expected overwrite to keep position but update value, got %q", v)
	}
	if props.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", props.Len())
	}
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"yes", "YES", "Yes", "true", "TRUE", "1"} {
		if !isTruthy(v) {
			t.Errorf("expected %q to be truthy", v)
		}
	}
	for _, v := range []string{"no", "false", "0", "", "on", "y", "2"} {
		if isTruthy(v) {
			t.Errorf("expected %q to be falsy", v)
		}
	}
}

func TestMergeFlagDefaultTruthy(t *testing.T) {
	opts := NewOptions().Option("v", "", "verbose output").Back()

	cmd, err := NewParser().ParseWithDefaults(opts, nil, NewProperties().Set("v", "YES"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cmd.Has("v") {
		t.Error("expected truthy default to mark the flag present")
	}
}

func TestMergeFalsyFlagAbortsRemainingDefaults(t *testing.T) {
	opts := NewOptions().
		Option("v", "", "verbose output").Back().
		Option("f", "file", "input file").Arg().Back()

	defaults := NewProperties().
		Set("v", "no").
		Set("f", "in.txt")

	cmd, err := NewParser().ParseWithDefaults(opts, nil, defaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Has("v") {
		t.Error("expected falsy flag default to stay unresolved")
	}
	// The falsy flag aborts the whole remaining loop, not just its entry.
	if cmd.Has("f") {
		t.Error("expected later default entries to be skipped")
	}
}

func TestMergeEntriesBeforeFalsyFlagAreKept(t *testing.T) {
	opts := NewOptions().
		Option("f", "file", "input file").Arg().Back().
		Option("v", "", "verbose output").Back()

	defaults := NewProperties().
		Set("f", "in.txt").
		Set("v", "no")

	cmd, err := NewParser().ParseWithDefaults(opts, nil, defaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := cmd.Value("f"); v != "in.txt" {
		t.Errorf("expected earlier default applied, got %q", v)
	}
	if cmd.Has("v") {
		t.Error("expected falsy flag to stay unresolved")
	}
}

func TestMergeUnknownDefaultKey(t *testing.T) {
	opts := NewOptions().Option("v", "", "verbose output").Back()

	_, err := NewParser().ParseWithDefaults(opts, nil, NewProperties().Set("bogus", "x"))
	perr := assertParseError(t, err, ErrorTypeUnknownDefaultKey)
	if perr.Key != "bogus" {
		t.Errorf("expected offending key bogus, got %q", perr.Key)
	}
}

func TestMergeSkipsOptionsWithValues(t *testing.T) {
	opts := NewOptions().Option("f", "file", "input file").Arg().Back()

	cmd, err := NewParser().ParseWithDefaults(opts, []string{"-f", "cli.txt"}, NewProperties().Set("file", "default.txt"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cmd.Values("f"), []string{"cli.txt"}) {
		t.Errorf("expected token value kept, got %v", cmd.Values("f"))
	}
}

func TestLoadPropertiesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.json")
	content := `{"file": "in.txt", "v": true, "port": 8080, "ratio": 1.5}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	props, err := LoadProperties(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(props.Keys(), []string{"file", "v", "port", "ratio"}) {
		t.Errorf("expected file order preserved, got %v", props.Keys())
	}
	want := map[string]string{"file": "in.txt", "v": "true", "port": "8080", "ratio": "1.5"}
	for key, expected := range want {
		if v, _ := props.Get(key); v != expected {
			t.Errorf("key %s: expected %q, got %q", key, expected, v)
		}
	}
}

func TestLoadPropertiesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	content := "file: in.txt\nv: \"true\"\nport: 8080\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	props, err := LoadProperties(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(props.Keys(), []string{"file", "v", "port"}) {
		t.Errorf("expected file order preserved, got %v", props.Keys())
	}
	if v, _ := props.Get("port"); v != "8080" {
		t.Errorf("expected port 8080, got %q", v)
	}
}

func TestLoadPropertiesRejectsNonScalars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.json")
	if err := os.WriteFile(path, []byte(`{"nested": {"a": 1}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProperties(path); err == nil {
		t.Error("expected error for nested value")
	}
}

func TestLoadPropertiesUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.toml")
	if err := os.WriteFile(path, []byte("a = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProperties(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoadPropertiesEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, []byte("out: from-file.txt\nv: yes\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	props, err := LoadProperties(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmd, err := NewParser().ParseWithDefaults(testOptions(), []string{"-f", "in.txt"}, props)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := cmd.Value("o"); v != "from-file.txt" {
		t.Errorf("expected default for o, got %q", v)
	}
	if !cmd.Has("v") {
		t.Error("expected truthy flag default applied")
	}
}
