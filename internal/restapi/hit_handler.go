package restapi

import (
	"encoding/json"
	"net/http"
	"time"

	"spacetime.railviz.dev/internal/hit"
	"spacetime.railviz.dev/internal/models"
	"spacetime.railviz.dev/internal/utils"
)

const maxHitBodyBytes = 1 << 20

// hitHandler resolves a pointer release. The rendering side casts the rays
// and posts the intersections of each tier in tier order.
func (api *RestAPI) hitHandler(w http.ResponseWriter, r *http.Request) {
	var req models.HitRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxHitBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.badRequestResponse(w, r, "invalid hit request body")
		return
	}

	fieldErrors := make(map[string][]string)
	if err := utils.ValidatePointer(req.Pointer.X); err != nil {
		fieldErrors["pointer.x"] = append(fieldErrors["pointer.x"], err.Error())
	}
	if err := utils.ValidatePointer(req.Pointer.Y); err != nil {
		fieldErrors["pointer.y"] = append(fieldErrors["pointer.y"], err.Error())
	}
	if req.PressedMs < 0 {
		fieldErrors["pressedMs"] = append(fieldErrors["pressedMs"], "must not be negative")
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	state := req.State
	if state.Date.IsZero() {
		state.Date = time.Now().In(api.Calendar.Location())
	}

	tier := 0
	caster := hit.CasterFunc(func(hit.Pointer, hit.Tier) []hit.Intersection {
		defer func() { tier++ }()
		if tier < len(req.Tiers) {
			return req.Tiers[tier]
		}
		return nil
	})

	state, result := api.Engine.Click(state, caster, req.Pointer, time.Duration(req.PressedMs)*time.Millisecond)

	response := models.HitResponse{Hit: result.Hit, Target: result.Target, State: state}
	if result.Trip != nil {
		detail := models.NewTripDetail(*result.Trip)
		response.Trip = &detail
	}
	api.sendResponse(w, r, models.NewEntryResponse(response))
}
