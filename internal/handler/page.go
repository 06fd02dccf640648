package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/product-drawer/internal/screen"
)

//go:embed templates/*.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type indexData struct {
	Cards []screen.Card
	Error string
}

// Index renders the product cards.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := h.newScreen(ctx, &requestPrompter{ctx: ctx}).Mount(ctx)

	data := indexData{Cards: screen.Cards(h.store.Products())}
	if err != nil {
		data.Error = "Products could not be loaded."
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		zctx.From(ctx).Error("Render index", zap.Error(err))
	}
}
