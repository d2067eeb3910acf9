package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/apperrors"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/logger"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = apperrors.NewBadRequestError("Invalid request body")

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

// logFailure records server-side errors with the request logger. Client
// errors are not logged.
func logFailure(r *http.Request, err error, status int) {
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
}

// writeError sends {"message": ...} with the status mapped from err.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusCode(err)
	logFailure(r, err, status)
	writeJSON(w, status, map[string]string{"message": apperrors.PublicMessage(err)})
}

// writeDeleteError uses the {"success": false, ...} envelope of delete routes.
func writeDeleteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusCode(err)
	logFailure(r, err, status)
	writeJSON(w, status, map[string]interface{}{"success": false, "message": apperrors.PublicMessage(err)})
}

func writeDeleted(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewBadRequestError("Request body is required")
		}
		return errInvalidBody
	}
	return nil
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
