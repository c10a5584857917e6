package messaging

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	catalogerrors "github.com/mkostin/catalog_service/internal/catalog/errors"
)

// wireFailure is the standardized failure shape sent back on the reply
// subject.
type wireFailure struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

const genericFailureMessage = "internal server error"

// classify maps a core failure to a wire status, a safe message and a metrics
// outcome label. Detail beyond validation and not-found reasons stays in the
// logs.
func classify(err error) (status int, message, outcome string) {
	var vErr *catalogerrors.ValidationError
	var dErr *catalogerrors.DispatchError
	var sErr *catalogerrors.StorageError

	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Error(), "validation"
	case errors.Is(err, catalogerrors.ErrProductNotFound):
		return http.StatusNotFound, catalogerrors.ErrProductNotFound.Error(), "not_found"
	case errors.As(err, &dErr):
		return http.StatusInternalServerError, genericFailureMessage, "dispatch"
	case errors.As(err, &sErr):
		return http.StatusInternalServerError, genericFailureMessage, "storage"
	default:
		return http.StatusInternalServerError, genericFailureMessage, "internal"
	}
}

func failurePayload(status int, message string) []byte {
	payload, err := json.Marshal(wireFailure{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		// wireFailure marshalling cannot realistically fail; keep the wire
		// contract anyway.
		return []byte(`{"status":500,"message":"internal server error"}`)
	}
	return payload
}
