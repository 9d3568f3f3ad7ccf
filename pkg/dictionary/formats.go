package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents different word list formats
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatChunk               // single dict_NNNN.bin file
	FormatChunkDir            // directory of chunk files
	FormatText                // one word per line
)

// FormatInfo contains metadata about a word list format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // word count header
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt", ".lst", ""},
		MinSize:     1,
	},
}

func (f FileFormat) String() string {
	switch f {
	case FormatChunk:
		return "chunk"
	case FormatChunkDir:
		return "chunk-dir"
	case FormatText:
		return "text"
	}
	return "unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(formatInfo.Extensions, ext) {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expectedFormat == FormatChunk {
		return validateChunkHeader(filename)
	}
	return nil
}

// validateChunkHeader checks the word count header of a chunk file
func validateChunkHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if wordCount > maxChunkWords {
		return fmt.Errorf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}

	log.Debugf("Chunk file %s validated: %d words", filename, wordCount)
	return nil
}

// DetectFileFormat works out how path should be loaded.
func DetectFileFormat(path string) (FileFormat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("unable to detect format for %s: %w", path, err)
	}
	if info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(path, "dict_*.bin"))
		if err != nil || len(matches) == 0 {
			return FormatUnknown, fmt.Errorf("directory %s holds no dict_*.bin chunks", path)
		}
		return FormatChunkDir, nil
	}

	if strings.ToLower(filepath.Ext(path)) == ".bin" {
		if err := ValidateFileFormat(path, FormatChunk); err != nil {
			return FormatUnknown, err
		}
		return FormatChunk, nil
	}
	if err := ValidateFileFormat(path, FormatText); err != nil {
		return FormatUnknown, err
	}
	return FormatText, nil
}
