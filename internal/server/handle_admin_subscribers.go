package server

import (
	"encoding/csv"
	"log/slog"
	"net/http"
)

// AdminSubscribersResponse is the response for GET /api/admin/subscribers.
type AdminSubscribersResponse struct {
	Count       int          `json:"count"`
	Subscribers []Subscriber `json:"subscribers"`
}

func handleAdminSubscribers(admin AdminStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := admin.ListSubscribers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, AdminSubscribersResponse{Count: len(subs), Subscribers: subs})
	}
}

func handleAdminSubscribersCSV(logger *slog.Logger, admin AdminStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := admin.ListSubscribers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=subscribers.csv")

		// UTF-8 BOM so spreadsheet apps pick the right encoding.
		w.Write([]byte("\xEF\xBB\xBF"))

		cw := csv.NewWriter(w)
		cw.Write([]string{"email", "registered_at"})
		for _, s := range subs {
			cw.Write([]string{s.Email, s.RegisteredAt})
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			logger.Warn("writing subscribers csv", "error", err)
		}
	}
}
