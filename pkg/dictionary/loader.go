package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// maxChunkWords bounds the header count of a single chunk file.
const maxChunkWords = 1000000

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// ChunkLoader reads a directory of dict_NNNN.bin files. Each file is an
// int32 little-endian word count followed by, per word, a uint16 length, the
// word bytes and a uint16 rank. Words come out in chunk id order, then file
// order.
type ChunkLoader struct {
	dirPath  string
	maxWords int
}

// NewChunkLoader creates a loader for dirPath. maxWords <= 0 loads every chunk.
func NewChunkLoader(dirPath string, maxWords int) *ChunkLoader {
	return &ChunkLoader{
		dirPath:  dirPath,
		maxWords: maxWords,
	}
}

// GetAvailable scans the directory for chunk files, sorted by id.
func (cl *ChunkLoader) GetAvailable() ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(cl.dirPath, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			log.Debugf("Skipping chunk with bad name: %s", file)
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{
			ID:        id,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

// LoadAll reads chunks in id order until maxWords words have been read.
func (cl *ChunkLoader) LoadAll() ([]string, error) {
	chunks, err := cl.GetAvailable()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", cl.dirPath)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	var words []string
	for _, chunk := range chunks {
		if cl.maxWords > 0 && len(words) >= cl.maxWords {
			break
		}
		chunkWords, err := cl.Load(chunk.ID)
		if err != nil {
			return nil, err
		}
		words = append(words, chunkWords...)
	}
	if cl.maxWords > 0 && len(words) > cl.maxWords {
		words = words[:cl.maxWords]
	}
	return words, nil
}

// Load reads a single chunk by id.
func (cl *ChunkLoader) Load(chunkID int) ([]string, error) {
	filename := filepath.Join(cl.dirPath, fmt.Sprintf("dict_%04d.bin", chunkID))
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	words, err := readChunk(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("chunk %d: %w", chunkID, err)
	}
	log.Debugf("Chunk %d loaded: %d words", chunkID, len(words))
	return words, nil
}

func readChunk(r io.Reader) ([]string, error) {
	var totalEntries int32
	if err := binary.Read(r, binary.LittleEndian, &totalEntries); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return nil, fmt.Errorf("invalid word count %d in chunk header", totalEntries)
	}

	words := make([]string, 0, totalEntries)
	for len(words) < int(totalEntries) {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}
		// rank only orders words inside the file, which they already are
		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("failed to read rank: %w", err)
		}
		words = append(words, string(wordBytes))
	}
	return words, nil
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// WriteChunk writes words as a chunk file, ranking them by position.
func WriteChunk(filename string, words []string) error {
	if len(words) > maxChunkWords {
		return fmt.Errorf("chunk of %d words exceeds limit %d", len(words), maxChunkWords)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create chunk file %s: %w", filename, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for i, word := range words {
		if len(word) > 65535 {
			return fmt.Errorf("word %d too long for chunk format", i)
		}
		rank := uint16(min(i+1, 65535))
		if err := binary.Write(w, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := w.WriteString(word); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, rank); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ExportChunks writes words into dir as dict_0001.bin, dict_0002.bin, ...
// holding at most perChunk words each, and returns the number of files.
// perChunk <= 0 puts up to the format limit in every file.
func ExportChunks(dir string, words []string, perChunk int) (int, error) {
	if perChunk <= 0 || perChunk > maxChunkWords {
		perChunk = maxChunkWords
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create chunk dir %s: %w", dir, err)
	}

	n := 0
	for start := 0; start < len(words); start += perChunk {
		n++
		chunk := words[start:min(start+perChunk, len(words))]
		filename := filepath.Join(dir, fmt.Sprintf("dict_%04d.bin", n))
		if err := WriteChunk(filename, chunk); err != nil {
			return n - 1, err
		}
		log.Debugf("Wrote %d words to %s", len(chunk), filename)
	}
	return n, nil
}

// LoadText reads one word per line. Blank lines and lines starting with '#'
// are skipped; only the first whitespace-separated field of a line is used,
// so "word count" frequency lists load as plain word lists.
func LoadText(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", filename, err)
	}
	defer file.Close()
	return readText(file)
}

func readText(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// Load reads raw words from path, which may be a text word list, a single
// chunk file or a directory of chunk files. maxWords only limits chunk dirs.
func Load(path string, maxWords int) ([]string, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loading %s as %s", path, format)

	switch format {
	case FormatChunkDir:
		return NewChunkLoader(path, maxWords).LoadAll()
	case FormatChunk:
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return readChunk(bufio.NewReader(file))
	default:
		return LoadText(path)
	}
}
