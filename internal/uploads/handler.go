package uploads

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Lelo88/monument-catalog/internal/httpx"
	"go.uber.org/zap"
)

// Extensiones de imagen aceptadas.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Handler HTTP para subir fotos de productos.
type Handler struct {
	store         Store
	publicBaseURL string
	maxBytes      int64
	logger        *zap.Logger
}

// NewHandler crea el handler. publicBaseURL se antepone a /files/<nombre>;
// vacío usa el host del request, así la URL siempre es absoluta.
func NewHandler(store Store, publicBaseURL string, maxBytes int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:         store,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		maxBytes:      maxBytes,
		logger:        logger,
	}
}

// URLBody es la respuesta de POST /upload.
type URLBody struct {
	URL string `json:"url"`
}

// jsonUpload es el formato del sitio viejo: archivo en base64 dentro de JSON.
type jsonUpload struct {
	File     string `json:"file"`
	Filename string `json:"filename"`
}

// Upload maneja POST /upload. Acepta multipart (campo "file") o JSON con
// el archivo en base64.
func (handler *Handler) Upload(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxBytes)

	filename, content, ok := handler.readFile(writer, request)
	if !ok {
		return
	}
	if closer, isCloser := content.(io.Closer); isCloser {
		defer closer.Close()
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_type", "unsupported file type, use .jpg, .jpeg, .png, .webp or .gif")
		return
	}

	name, err := handler.store.Save(ext, content)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.Fail(writer, request, http.StatusRequestEntityTooLarge, "too_large", "file is too large")
			return
		}
		handler.logger.Error("save upload failed", zap.Error(err))
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	httpx.OK(writer, http.StatusOK, URLBody{URL: httpx.BaseURL(request, handler.publicBaseURL) + "/files/" + name})
}

func (handler *Handler) readFile(writer http.ResponseWriter, request *http.Request) (string, io.Reader, bool) {
	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		var upload jsonUpload
		if err := json.NewDecoder(request.Body).Decode(&upload); err != nil {
			failBody(writer, request, err)
			return "", nil, false
		}
		data := upload.File
		if index := strings.Index(data, ","); index >= 0 {
			data = data[index+1:]
		}
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil || len(decoded) == 0 {
			httpx.Fail(writer, request, http.StatusBadRequest, "file_required", "file data is required")
			return "", nil, false
		}
		filename := upload.Filename
		if filename == "" {
			filename = "photo.jpg"
		}
		return filename, bytes.NewReader(decoded), true
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		failBody(writer, request, err)
		return "", nil, false
	}
	return header.Filename, file, true
}

func failBody(writer http.ResponseWriter, request *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httpx.Fail(writer, request, http.StatusRequestEntityTooLarge, "too_large", "file is too large")
		return
	}
	httpx.Fail(writer, request, http.StatusBadRequest, "file_required", "file field is required")
}
