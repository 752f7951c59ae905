package main

import (
	"errors"
	"net/http"

	"vitrineshop.org/vitrine-web/internal/catalog"
	mw "vitrineshop.org/vitrine-web/internal/middleware"
	"vitrineshop.org/vitrine-web/internal/suggest"
)

// SuggestItem is one row of the suggestion panel.
type SuggestItem struct {
	ID       int
	Title    string
	Category string
}

// SuggestView is the suggestion panel fragment view model.
type SuggestView struct {
	Query string
	Items []SuggestItem
}

// SuggestFrag treats each request as a keystroke in the session's debounced
// suggestion pipeline. Requests overtaken by newer input resolve empty with
// 204 so a stale panel never renders.
func SuggestFrag(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	fetcher := suggestions.For(mw.SessionFromContext(r.Context()).ID)

	items, err := fetcher.Type(q).Wait(r.Context())
	if errors.Is(err, suggest.ErrSuperseded) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		// transport failure reads as "no suggestions"
		items = nil
	}
	renderTemplate(w, r, "frag_suggestions", SuggestView{Query: q, Items: suggestItems(items)})
}

// SuggestClearHandler closes the session's suggestion panel (selection made
// or search cleared).
func SuggestClearHandler(w http.ResponseWriter, r *http.Request) {
	suggestions.For(mw.SessionFromContext(r.Context()).ID).Clear()
	renderTemplate(w, r, "frag_suggestions", SuggestView{})
}

func suggestItems(products []catalog.Product) []SuggestItem {
	items := make([]SuggestItem, 0, len(products))
	for _, p := range products {
		items = append(items, SuggestItem{ID: p.ID, Title: p.Title, Category: p.Category})
	}
	return items
}
