package usecase

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kord-legal/kord/pkg/domain/model"
)

// supportedExtensions lists the file types whose contents can be read
// directly as brief text
var supportedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// Brief implements BriefUseCase
type Brief struct{}

// NewBrief creates a new Brief use case
func NewBrief() *Brief {
	return &Brief{}
}

// Extract reads an uploaded file into brief text. The file contents are
// preserved exactly; only the extension is inspected.
func (u *Brief) Extract(filename string, data []byte) (*model.Brief, error) {
	if filename == "" {
		return nil, goerr.New("filename is required")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedExtensions[ext] {
		return nil, goerr.Wrap(model.ErrUnsupportedFileType, "cannot extract brief text",
			goerr.V("filename", filename),
			goerr.V("extension", ext))
	}

	if !utf8.Valid(data) {
		return nil, goerr.New("file is not valid UTF-8 text",
			goerr.V("filename", filename))
	}

	brief, err := model.NewBrief(string(data), filepath.Base(filename))
	if err != nil {
		return nil, goerr.Wrap(err, "uploaded file contains no text",
			goerr.V("filename", filename))
	}
	return brief, nil
}
