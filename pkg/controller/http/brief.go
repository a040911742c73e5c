package http

import (
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kord-legal/kord/pkg/usecase"
)

// maxBriefUploadBytes caps uploaded brief files at 10 MiB
const maxBriefUploadBytes = 10 << 20

// BriefHandler exposes brief file intake
type BriefHandler struct {
	uc usecase.BriefUseCase
}

// NewBriefHandler creates a new brief handler
func NewBriefHandler(uc usecase.BriefUseCase) *BriefHandler {
	return &BriefHandler{
		uc: uc,
	}
}

// extractResponse is the wire shape of an extracted brief
type extractResponse struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
	Words    int    `json:"words"`
}

// HandleExtract handles POST /api/briefs/extract with a multipart "file"
// part
func (h *BriefHandler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBriefUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, goerr.Wrap(err, "file part is required"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, goerr.Wrap(err, "failed to read uploaded file"), http.StatusBadRequest)
		return
	}

	brief, err := h.uc.Extract(header.Filename, data)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		Text:     brief.Text,
		Filename: brief.Filename,
		Words:    brief.WordCount(),
	})
}
