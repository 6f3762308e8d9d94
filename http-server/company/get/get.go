package get

import (
	"net/http"

	"github.com/go-chi/render"

	"log/slog"

	"printer-crm/internal/service/company"
)

type ProfileProvider interface {
	Profile() company.Profile
}

func GetCompanyProfile(log *slog.Logger, comp ProfileProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, comp.Profile())
	}
}
