package cv

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/google/uuid"
)

type CVParser struct {
	uploadsDir string
}

type ParsedCV struct {
	Filename string
	FilePath string
	FileType string
	FileSize int64
	FullText string
}

func NewCVParser(uploadsDir string) *CVParser {
	return &CVParser{
		uploadsDir: uploadsDir,
	}
}

// SupportedExtension reports whether ParseFile can read files with this extension.
func SupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt", ".txt":
		return true
	}
	return false
}

// ParseFile stores the upload under the uploads dir and extracts its text
func (p *CVParser) ParseFile(filename string, reader io.Reader) (*ParsedCV, error) {
	fileType := strings.ToLower(filepath.Ext(filename))
	if !SupportedExtension(fileType) {
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}

	if err := os.MkdirAll(p.uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	// Prefix keeps two uploads with the same name from clobbering each other
	base := filepath.Base(filename)
	filePath := filepath.Join(p.uploadsDir, uuid.NewString()+"_"+base)

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	var text string
	switch fileType {
	case ".txt":
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(content)
	default:
		res, err := docconv.ConvertPath(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		text = res.Body
	}

	return &ParsedCV{
		Filename: base,
		FilePath: filePath,
		FileType: fileType,
		FileSize: size,
		FullText: text,
	}, nil
}
