package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/minios-linux/captrans/config"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		width   int
		want    string
	}{
		{
			name:    "clamps below zero",
			percent: -10,
			width:   4,
			want:    colorRed + "░░░░" + colorReset + "   0%",
		},
		{
			name:    "mid range uses yellow",
			percent: 50,
			width:   4,
			want:    colorYellow + "██░░" + colorReset + "  50%",
		},
		{
			name:    "clamps above hundred",
			percent: 120,
			width:   4,
			want:    colorGreen + "████" + colorReset + " 100%",
		},
	}

	for _, tc := range tests {
		if got := progressBar(tc.percent, tc.width); got != tc.want {
			t.Fatalf("%s: progressBar() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func noFlags(string) bool { return false }

func TestMergeOptionsLayering(t *testing.T) {
	t.Setenv(config.EnvProvider, "")
	t.Setenv(config.EnvDictionary, "")
	t.Setenv(config.EnvBaseLanguage, "")
	t.Setenv(config.EnvWorkLanguage, "1036")

	file := &config.File{
		BaseLanguage: "1033",
		WorkLanguage: "1031",
		Provider:     config.Provider{ID: "deepl"},
		Encoding:     config.DefaultEncoding,
		Review:       true,
		LogLevel:     "info",
	}
	opts := mergeOptions(file, translateArgs{base: "2057", model: "m"}, noFlags)

	if opts.file.BaseLanguage != "2057" {
		t.Fatalf("flag should override base language, got %q", opts.file.BaseLanguage)
	}
	if opts.file.WorkLanguage != "1036" {
		t.Fatalf("env should override work language, got %q", opts.file.WorkLanguage)
	}
	if !opts.useMT || !opts.review || opts.strict {
		t.Fatalf("unexpected switches: %#v", opts)
	}
	if opts.file.Provider.Model != "m" {
		t.Fatalf("Provider.Model = %q, want m", opts.file.Provider.Model)
	}
}

func TestMergeOptionsSwitches(t *testing.T) {
	t.Setenv(config.EnvProvider, "")

	changed := func(name string) bool { return name == "mt" || name == "review" }
	opts := mergeOptions(nil, translateArgs{provider: "google", useMT: false, review: false}, changed)
	if opts.useMT {
		t.Fatal("--mt=false should disable machine translation")
	}
	if opts.review {
		t.Fatal("--review=false should win")
	}
	if opts.file.Encoding != config.DefaultEncoding {
		t.Fatalf("Encoding = %q, want default", opts.file.Encoding)
	}

	opts = mergeOptions(nil, translateArgs{useMT: true}, changed)
	if opts.useMT {
		t.Fatal("machine translation needs a provider")
	}
}

func TestMemoryPath(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	got, err := memoryPath(nil, "en-US", "1031")
	if err != nil {
		t.Fatalf("memoryPath() error: %v", err)
	}
	if want := filepath.Join(tmp, "captrans", "dictionary-1033-1031.csv"); got != want {
		t.Fatalf("memoryPath() = %q, want %q", got, want)
	}

	if got, _ := memoryPath([]string{"x.db"}, "", ""); got != "x.db" {
		t.Fatalf("memoryPath(arg) = %q, want x.db", got)
	}
	if _, err := memoryPath(nil, "", "1031"); err == nil {
		t.Fatal("memoryPath() without base should fail")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(filePath, []byte("ok"), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}

	if !fileExists(filePath) {
		t.Fatalf("fileExists(file) = false, want true")
	}
	if fileExists(dir) {
		t.Fatalf("fileExists(directory) = true, want false")
	}
	if fileExists(filepath.Join(dir, "missing.txt")) {
		t.Fatalf("fileExists(missing) = true, want false")
	}
}

func TestExpandFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"tab18.txt", "tab36.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(dir, "notes.md")

	got, err := expandFiles([]string{single, dir})
	if err != nil {
		t.Fatalf("expandFiles() error: %v", err)
	}
	want := []string{single, filepath.Join(dir, "tab18.txt"), filepath.Join(dir, "tab36.txt")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expandFiles() = %#v, want %#v", got, want)
	}

	if _, err := expandFiles([]string{filepath.Join(dir, "missing.txt")}); err == nil {
		t.Fatal("expandFiles(missing) should fail")
	}
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	for _, path := range [][]string{
		{"translate"}, {"memory", "stats"}, {"memory", "merge"}, {"auth", "set"}, {"auth", "list"}, {"languages"}, {"version"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd == root {
			t.Fatalf("command %v not found: %v", path, err)
		}
	}
}
