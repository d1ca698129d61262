package utils

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams retrieves a path parameter and strips a trailing ".json".
func ExtractIDFromParams(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	rawID := params.ByName(paramName)
	return strings.TrimSuffix(rawID, ".json")
}

// ExtractIntIDFromParams retrieves a numeric path parameter.
func ExtractIntIDFromParams(r *http.Request, paramName string) (int, error) {
	raw := ExtractIDFromParams(r, paramName)
	if err := ValidateID(raw); err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer")
	}
	return id, nil
}
