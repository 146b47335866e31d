package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/JaimeStill/catalog-console/pkg/assets"
	"github.com/JaimeStill/catalog-console/pkg/handlers"
	"github.com/JaimeStill/catalog-console/pkg/record"
	"github.com/JaimeStill/catalog-console/pkg/routes"
)

// multipartOverhead allows for the fields part and multipart framing on top
// of the image itself.
const multipartOverhead = 1 << 20

// Handler binds one view-model to HTTP. Operation endpoints always answer
// 200 with the resulting State; only malformed requests answer 4xx.
type Handler struct {
	vm            *ViewModel
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a handler for vm. Multipart bodies larger than
// maxUploadSize are rejected.
func NewHandler(vm *ViewModel, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		vm:            vm,
		logger:        logger.With("handler", vm.Name()),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the screen's route group.
func (h *Handler) Routes() routes.Group {
	opts := h.vm.Options()

	group := routes.Group{
		Prefix:      "/" + opts.Name,
		Tags:        []string{opts.Title},
		Description: fmt.Sprintf("%s screen over the %s collection", opts.Title, opts.Collection),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.State, OpenAPI: Spec.State},
			{Method: "POST", Pattern: "/load", Handler: h.Load, OpenAPI: Spec.Load},
			{Method: "GET", Pattern: "/table", Handler: h.Table, OpenAPI: Spec.Table},
			{Method: "POST", Pattern: "/form", Handler: h.OpenCreate, OpenAPI: Spec.OpenCreate},
			{Method: "POST", Pattern: "/form/{id}", Handler: h.OpenEdit, OpenAPI: Spec.OpenEdit},
			{Method: "DELETE", Pattern: "/form", Handler: h.CloseForm, OpenAPI: Spec.CloseForm},
			{Method: "POST", Pattern: "/submit", Handler: h.Submit, OpenAPI: Spec.Submit},
			{Method: "DELETE", Pattern: "/records/{id}", Handler: h.Remove, OpenAPI: Spec.Remove},
		},
	}

	if opts.Children != nil {
		group.Routes = append(group.Routes, routes.Route{
			Method: "GET", Pattern: "/records/{id}/children", Handler: h.Children, OpenAPI: Spec.Children,
		})
	}

	return group
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.vm.State())
}

func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.vm.Load(r.Context()))
}

func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.vm.Table())
}

func (h *Handler) OpenCreate(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.vm.OpenCreate())
}

func (h *Handler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.vm.OpenEdit(r.PathValue("id")))
}

func (h *Handler) CloseForm(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.vm.CloseForm())
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	draft, asset, err := h.decodeSubmit(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.vm.Submit(r.Context(), draft, asset))
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.vm.Remove(r.Context(), r.PathValue("id")))
}

func (h *Handler) Children(w http.ResponseWriter, r *http.Request) {
	children, err := h.vm.Children(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, children)
}

// decodeSubmit reads a draft from a JSON body, or from the "fields" part of
// a multipart body with an optional "image" file. The file must sniff as an
// image.
func (h *Handler) decodeSubmit(r *http.Request) (record.Fields, *assets.Pending, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		draft, err := decodeFields(r.Body)
		return draft, nil, err
	}

	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, ErrFileTooLarge
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	draft := record.Fields{}
	if raw := r.FormValue("fields"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &draft); err != nil {
			return nil, nil, fmt.Errorf("%w: fields: %w", ErrInvalidBody, err)
		}
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return draft, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: image: %w", ErrInvalidBody, err)
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		return nil, nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: image: %w", ErrInvalidBody, err)
	}

	// The declared part type is client-controlled; only sniffed content counts.
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, nil, fmt.Errorf("%w: %s is %s", ErrNotAnImage, header.Filename, contentType)
	}

	return draft, &assets.Pending{
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func decodeFields(body io.Reader) (record.Fields, error) {
	draft := record.Fields{}
	if err := json.NewDecoder(body).Decode(&draft); err != nil {
		if errors.Is(err, io.EOF) {
			return draft, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return draft, nil
}
