package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"

	"github.com/xenking/product-drawer/internal/domain/product"
)

func encodeProduct(e *jx.Encoder, p product.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Str(p.Price) })
		e.Field("offeredPrice", func(e *jx.Encoder) { e.Str(p.OfferedPrice) })
		e.Field("imageUrl", func(e *jx.Encoder) { e.Str(p.ImageURL) })
		if !p.CreatedAt.IsZero() {
			e.Field("createdAt", func(e *jx.Encoder) { e.Str(p.CreatedAt.Format(time.RFC3339)) })
		}
	})
}

func writeProducts(w http.ResponseWriter, status int, products []product.Product) {
	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, p := range products {
			encodeProduct(e, p)
		}
	})
	writeJSON(w, status, e.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(status) })
		e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
	})
	writeJSON(w, status, e.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
