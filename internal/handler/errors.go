package handler

import (
	"errors"
	"net/http"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/question"
	"github.com/ArtemMoroz51/VerifyAdmin/internal/storage"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, question.ErrInvalidQuestion):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrRejected):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
