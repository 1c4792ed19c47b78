package validators

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
)

// URLParamUint parses a chi route parameter as an unsigned id.
func URLParamUint(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name)
	}
	return uint(value), nil
}
