package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

const maxBodySize = 16 << 20 // 16MB

type Handler struct {
	background string
}

// NewHandler serves exports; background fills documents whose request asks
// for one.
func NewHandler(background string) *Handler {
	if background == "" {
		background = DefaultBackground
	}
	return &Handler{background: background}
}

type exportRequest struct {
	Elements   json.RawMessage `json:"elements"`
	Background bool            `json:"background"`
}

// Export handles POST /export/{format}.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		http.Error(w, "invalid format: must be svg, png, jpg, jpeg, or pdf", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	var elements []*document.Element
	if len(req.Elements) > 0 {
		elements, err = document.DecodeElements(req.Elements)
		if err != nil {
			http.Error(w, "invalid elements: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = BaseName
	}
	// Sanitize filename
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)

	var opts Options
	if req.Background {
		opts.Background = h.background
	}

	slog.Info("export started", "format", format, "elements", len(elements))

	var buf bytes.Buffer
	if err := Write(&buf, format, elements, opts); err != nil {
		slog.Error("export failed", "format", format, "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, ErrUnsupportedFormat) {
			status = http.StatusBadRequest
		}
		http.Error(w, fmt.Sprintf("export failed: %v", err), status)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, format.Extension()))
	size := buf.Len()
	w.Header().Set("Content-Length", strconv.Itoa(size))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("write export response", "error", err)
		return
	}

	slog.Info("export complete", "format", format, "size", size)
}
