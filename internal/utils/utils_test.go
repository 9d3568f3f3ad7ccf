package utils

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestIsLowerAlpha(t *testing.T) {
	testCases := map[string]bool{
		"crane": true,
		"":      false,
		"Crane": false,
		"cr4ne": false,
		"café":  false,
	}
	for in, want := range testCases {
		if got := IsLowerAlpha(in); got != want {
			t.Errorf("IsLowerAlpha(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLetters(t *testing.T) {
	testCases := []struct {
		in   string
		want []byte
		ok   bool
	}{
		{"mp", []byte("mp"), true},
		{"M, P", []byte("mp"), true},
		{"a-b/c", []byte("abc"), true},
		{"", nil, true},
		{"p!", nil, false},
		{"7", nil, false},
	}
	for _, tc := range testCases {
		got, ok := Letters(tc.in)
		if ok != tc.ok || !slices.Equal(got, tc.want) {
			t.Errorf("Letters(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestWordFilter(t *testing.T) {
	f := NewWordFilter("Slate")
	var kept []string
	for _, w := range []string{"crane", "slate", "CRANE", "eerie", "crane"} {
		if f.ShouldInclude(w) {
			kept = append(kept, w)
		}
	}
	if want := []string{"crane", "eerie"}; !slices.Equal(kept, want) {
		t.Errorf("kept %v, want %v", kept, want)
	}
}

func TestCreateRankList(t *testing.T) {
	if got := CreateRankList(0); len(got) != 0 {
		t.Errorf("CreateRankList(0) = %v", got)
	}
	if got := CreateRankList(3); !slices.Equal(got, []uint16{1, 2, 3}) {
		t.Errorf("CreateRankList(3) = %v", got)
	}
	big := CreateRankList(70000)
	if big[MaxRank-2] != MaxRank-1 || big[MaxRank-1] != MaxRank || big[69999] != MaxRank {
		t.Errorf("ranks should saturate at %d, got %d, %d and %d",
			MaxRank, big[MaxRank-2], big[MaxRank-1], big[69999])
	}
}

func TestExtractors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.toml")
	content := "[search]\nworkers = 4\ntiebreak_exponent = 2\n[corpus]\npath = \"w.txt\"\ndedupe = false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatal(err)
	}
	search, ok := ExtractSection(data, "search")
	if !ok {
		t.Fatal("search section missing")
	}
	if v, ok := ExtractInt64(search, "workers"); !ok || v != 4 {
		t.Errorf("workers = %d, %v", v, ok)
	}
	if v, ok := ExtractFloat(search, "tiebreak_exponent"); !ok || v != 2 {
		t.Errorf("tiebreak_exponent = %v, %v", v, ok)
	}
	corpus, _ := ExtractSection(data, "corpus")
	if v, ok := ExtractString(corpus, "path"); !ok || v != "w.txt" {
		t.Errorf("path = %q, %v", v, ok)
	}
	if v, ok := ExtractBool(corpus, "dedupe"); !ok || v {
		t.Errorf("dedupe = %v, %v", v, ok)
	}
	if _, ok := ExtractInt64(corpus, "path"); ok {
		t.Error("string value extracted as int")
	}
	if _, ok := ExtractSection(data, "server"); ok {
		t.Error("missing section reported present")
	}
}

func TestIsCorpusPath(t *testing.T) {
	dir := t.TempDir()
	if IsCorpusPath(dir) {
		t.Error("empty dir is not a corpus")
	}
	if IsCorpusPath(filepath.Join(dir, "missing.txt")) {
		t.Error("missing file is not a corpus")
	}

	words := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(words, []byte("crane\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsCorpusPath(words) {
		t.Error("text file should be a corpus")
	}

	chunks := filepath.Join(dir, "chunks")
	if err := EnsureDir(chunks); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(chunks, "dict_0001.bin"), []byte{0, 0, 0, 0}, 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsCorpusPath(chunks) || !IsDir(chunks) {
		t.Error("chunk dir should be a corpus")
	}
}

func TestCorpusCandidates(t *testing.T) {
	pr := &PathResolver{executableDir: "/opt/openers/bin", homeDir: "/home/u", configDir: "/home/u/.config/openers"}

	if got := pr.corpusCandidates("/srv/words.txt"); !slices.Equal(got, []string{"/srv/words.txt"}) {
		t.Errorf("absolute path candidates = %v", got)
	}

	got := pr.corpusCandidates("words.txt")
	if got[0] != "/opt/openers/bin/words.txt" || got[len(got)-1] != "/home/u/.config/openers/data" {
		t.Errorf("relative path candidates = %v", got)
	}
}
