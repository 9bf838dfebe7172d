package handlers

import "net/http"

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	h.render(w, http.StatusOK, "index.html", "Generate", h.newFormData(sid))
}
