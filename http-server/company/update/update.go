package update

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"log/slog"

	"printer-crm/internal/service/company"
)

// Logos land on half-page receipts; anything bigger than this is a mistake.
const maxLogoBytes = 5 << 20

type ProfileUpdater interface {
	Profile() company.Profile
	SetProfile(p company.Profile)
	SetLogo(data []byte, mime string)
}

func UpdateCompanyProfile(log *slog.Logger, comp ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.company.update.UpdateCompanyProfile"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req company.Profile
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("error", err.Error()))
			http.Error(w, "Invalid data", http.StatusBadRequest)
			return
		}

		comp.SetProfile(req)

		log.Info("company profile updated")

		render.JSON(w, r, map[string]interface{}{
			"status": strconv.Itoa(http.StatusOK),
		})
	}
}

func UploadCompanyLogo(log *slog.Logger, comp ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.company.update.UploadCompanyLogo"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
			http.Error(w, "Invalid upload", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("logo")
		if err != nil {
			http.Error(w, "Missing logo file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		mime := header.Header.Get("Content-Type")
		switch mime {
		case "image/png", "image/jpeg", "image/jpg":
		default:
			http.Error(w, "Logo must be png or jpeg", http.StatusBadRequest)
			return
		}

		data, err := io.ReadAll(io.LimitReader(file, maxLogoBytes+1))
		if err != nil {
			log.Error("failed to read logo", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if len(data) > maxLogoBytes {
			http.Error(w, "Logo too large", http.StatusRequestEntityTooLarge)
			return
		}

		comp.SetLogo(data, mime)

		log.Info("company logo updated",
			slog.String("mime", mime),
			slog.Int("size", len(data)))

		render.JSON(w, r, map[string]interface{}{
			"status": strconv.Itoa(http.StatusOK),
		})
	}
}
