package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestNewCorpusNormalizes(t *testing.T) {
	raw := []string{"Crane", "slate", "toolong", "ab", "cr4ne", " Slate ", "eerie", "CRANE"}

	testCases := []struct {
		name   string
		dedupe bool
		want   []string
	}{
		{"dedupe", true, []string{"crane", "slate", "eerie"}},
		{"keep duplicates", false, []string{"crane", "slate", "slate", "eerie", "crane"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCorpus(raw, 5, tc.dedupe)
			if err != nil {
				t.Fatalf("NewCorpus: %v", err)
			}
			if !slices.Equal(c.Words(), tc.want) {
				t.Errorf("Words() = %v, want %v", c.Words(), tc.want)
			}
			for _, w := range c.Words() {
				if len(w) != c.WordLength() {
					t.Errorf("word %q has length %d, want %d", w, len(w), c.WordLength())
				}
			}
			if c.Stats()["dropped"] != 3 {
				t.Errorf("dropped = %d, want 3", c.Stats()["dropped"])
			}
		})
	}
}

func TestNewCorpusErrors(t *testing.T) {
	if _, err := NewCorpus([]string{"crane"}, 0, true); !errors.Is(err, ErrWordLength) {
		t.Errorf("zero length: got %v, want ErrWordLength", err)
	}
	if _, err := NewCorpus([]string{"crane"}, 4, true); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("no matching words: got %v, want ErrEmptyCorpus", err)
	}
	if _, err := NewCorpus(nil, 5, true); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("nil input: got %v, want ErrEmptyCorpus", err)
	}
}

func TestCorpusPrefixIndex(t *testing.T) {
	c, err := NewCorpus([]string{"apple", "amble", "angle", "apple", "crane"}, 5, false)
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		prefix string
		want   []int
	}{
		{"a", []int{0, 1, 2, 3}},
		{"ap", []int{0, 3}},
		{"cra", []int{4}},
		{"z", nil},
		{"", []int{0, 1, 2, 3, 4}},
	}
	for _, tc := range testCases {
		got := c.WithPrefix(tc.prefix)
		if !slices.Equal(got, tc.want) {
			t.Errorf("WithPrefix(%q) = %v, want %v", tc.prefix, got, tc.want)
		}
	}

	if !c.Contains("Crane") || c.Contains("slate") {
		t.Errorf("Contains mismatch")
	}
}

func TestExportChunks(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	words := []string{"crane", "slate", "eerie", "apple", "amble"}

	n, err := ExportChunks(dir, words, 2)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("ExportChunks wrote %d files, want 3", n)
	}

	format, err := DetectFileFormat(dir)
	if err != nil || format != FormatChunkDir {
		t.Errorf("DetectFileFormat = %v, %v; want chunk dir", format, err)
	}
	got, err := Load(dir, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, words) {
		t.Errorf("Load() = %v, want %v", got, words)
	}
}

func TestChunkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	first := []string{"crane", "slate"}
	second := []string{"eerie", "apple", "amble"}
	if err := WriteChunk(filepath.Join(dir, "dict_0002.bin"), second); err != nil {
		t.Fatal(err)
	}
	if err := WriteChunk(filepath.Join(dir, "dict_0001.bin"), first); err != nil {
		t.Fatal(err)
	}

	loader := NewChunkLoader(dir, 0)
	chunks, err := loader.GetAvailable()
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 || chunks[0].ID != 1 || chunks[1].WordCount != 3 {
		t.Fatalf("GetAvailable() = %+v", chunks)
	}

	words, err := loader.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	want := append(slices.Clone(first), second...)
	if !slices.Equal(words, want) {
		t.Errorf("LoadAll() = %v, want %v", words, want)
	}

	limited, err := NewChunkLoader(dir, 3).LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(limited, want[:3]) {
		t.Errorf("LoadAll with limit = %v, want %v", limited, want[:3])
	}

	single, err := Load(filepath.Join(dir, "dict_0001.bin"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(single, first) {
		t.Errorf("Load(chunk) = %v, want %v", single, first)
	}
}

func TestLoadText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	content := "# five letter words\ncrane 120\n\nslate\n  eerie  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	format, err := DetectFileFormat(path)
	if err != nil || format != FormatText {
		t.Fatalf("DetectFileFormat = %v, %v", format, err)
	}

	words, err := Load(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"crane", "slate", "eerie"}; !slices.Equal(words, want) {
		t.Errorf("Load(text) = %v, want %v", words, want)
	}
}

func TestDetectFileFormatErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := DetectFileFormat(dir); err == nil {
		t.Errorf("empty dir should not be a corpus")
	}
	if _, err := DetectFileFormat(filepath.Join(dir, "missing.txt")); err == nil {
		t.Errorf("missing file should fail")
	}

	bad := filepath.Join(dir, "dict_0001.bin")
	if err := os.WriteFile(bad, []byte{0x01}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := DetectFileFormat(bad); err == nil {
		t.Errorf("truncated chunk should fail validation")
	}
}
