// Package handler exposes the catalog screen over HTTP.
//
// Each request drives its own screen.Screen against the shared store, so
// the add, edit and delete endpoints behave exactly like the interactive
// screen: the response carries the list as reloaded after the mutation.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/sdk/zctx"

	"github.com/xenking/product-drawer/internal/catalog"
	"github.com/xenking/product-drawer/internal/screen"
)

// HandlerConfig holds non-dependency configuration for the Handler.
type HandlerConfig struct {
	// MaxUploadBytes bounds the multipart body of add and edit requests.
	MaxUploadBytes int64
	// MediaDir, when set, is served under /media/.
	MediaDir string
}

const defaultMaxUploadBytes = 32 << 20

// Handler serves the catalog API and the HTML card list.
type Handler struct {
	store    *catalog.Store
	uploader *screen.Uploader
	cfg      HandlerConfig
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig, store *catalog.Store, uploader *screen.Uploader) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		store:    store,
		uploader: uploader,
		cfg:      cfg,
	}
}

// Routes returns the router with every endpoint mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.AddProduct)
		r.Put("/{id}", h.EditProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
	if h.cfg.MediaDir != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(h.cfg.MediaDir))))
	}
	return r
}

func (h *Handler) newScreen(ctx context.Context, p screen.Prompter) *screen.Screen {
	return screen.New(h.store, h.uploader, p, zctx.From(ctx))
}
