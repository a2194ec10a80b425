package http

import (
	"errors"
	"net/http"

	"github.com/rlozanop/credvault/internal/crypto"
	"github.com/rlozanop/credvault/internal/service"
	"github.com/rlozanop/credvault/internal/store"
)

// errorStatusMap translates service and store sentinels into response codes
// for the credential endpoints.
//
// ErrNotOwner and ErrCredentialNotFound deliberately share one status: from
// the outside, a credential someone else owns and a credential that does not
// exist are indistinguishable, so record ids cannot be probed.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNotOwner:                http.StatusNotFound,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrCredentialNotFound: http.StatusNotFound,
	store.ErrAuditNotRecorded:   http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,

	crypto.ErrMalformedEnvelope: http.StatusInternalServerError,
	crypto.ErrDecryptionFailed:  http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageForStatus keeps error bodies generic: 5xx responses never leak
// internals, 404 never says whether the record exists for someone else.
func messageForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return "credential not found"
	default:
		return http.StatusText(status)
	}
}
