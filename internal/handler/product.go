package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/product-drawer/internal/screen"
)

// ListProducts reloads the list and returns it. A failed reload is reported
// as 503.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.newScreen(ctx, &requestPrompter{ctx: ctx}).Mount(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "product list unavailable")
		return
	}
	writeProducts(w, http.StatusOK, h.store.Products())
}

// AddProduct handles the multipart add form: name, price, offeredPrice and
// the image file.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	p := &requestPrompter{ctx: ctx}

	if err := h.newScreen(ctx, p).Add(ctx, form); err != nil {
		h.writeAlert(w, p, err)
		return
	}
	writeProducts(w, http.StatusOK, h.store.Products())
}

// EditProduct handles the multipart edit form for the product in the path.
func (h *Handler) EditProduct(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	p := &requestPrompter{ctx: ctx}

	if err := h.newScreen(ctx, p).Edit(ctx, chi.URLParam(r, "id"), form); err != nil {
		h.writeAlert(w, p, err)
		return
	}
	writeProducts(w, http.StatusOK, h.store.Products())
}

// DeleteProduct deletes the product in the path when the request carries
// confirm=yes; otherwise it answers 428 with the confirmation question.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := &requestPrompter{ctx: ctx, confirm: parseConfirm(r.URL.Query().Get("confirm"))}

	h.newScreen(ctx, p).Delete(chi.URLParam(r, "id"))
	if !p.answered {
		writeError(w, http.StatusPreconditionRequired, p.asked)
		return
	}
	writeProducts(w, http.StatusOK, h.store.Products())
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (screen.Form, bool) {
	if r.ContentLength > h.cfg.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return screen.Form{}, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return screen.Form{}, false
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			zctx.From(r.Context()).Debug("Bad form", zap.Error(err))
			writeError(w, http.StatusBadRequest, "invalid form")
			return screen.Form{}, false
		}
	}

	form := screen.Form{
		Name:         r.FormValue("name"),
		Price:        r.FormValue("price"),
		OfferedPrice: r.FormValue("offeredPrice"),
	}
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			form.Image = screen.UploadedImage{Header: files[0]}
		}
	}
	return form, true
}

func (h *Handler) writeAlert(w http.ResponseWriter, p *requestPrompter, err error) {
	msg := err.Error()
	if len(p.alerts) > 0 {
		msg = p.alerts[0]
	}
	writeError(w, http.StatusUnprocessableEntity, msg)
}
