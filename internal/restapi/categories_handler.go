package restapi

import (
	"net/http"

	"spacetime.railviz.dev/internal/models"
	"spacetime.railviz.dev/internal/railway"
)

func (api *RestAPI) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(railway.Categories()))
}
