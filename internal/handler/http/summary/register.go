package summary

import "net/http"

// RegisterRoutes mounts the summarize endpoint on mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	h := NewHandler(service)
	mux.HandleFunc("/api/summarize", h.Summarize)
}
