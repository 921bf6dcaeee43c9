package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// ListMenu handles GET /api/menu and returns the full menu catalog.
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.List(r.Context())
	if err != nil {
		writeError(w, r, errors.Wrap(err, "list menu"))
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ArrStart()
		for _, item := range items {
			e.ObjStart()
			e.FieldStart("id")
			e.Str(item.ID)
			e.FieldStart("name")
			e.Str(item.Name)
			e.FieldStart("price")
			e.RawStr(item.Price.String())
			e.FieldStart("restaurantId")
			e.Str(item.RestaurantID)
			e.ObjEnd()
		}
		e.ArrEnd()
	})
}
