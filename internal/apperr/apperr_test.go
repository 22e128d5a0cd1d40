package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/foreman-dev/foreman/internal/apperr"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind   apperr.Kind
		status int
	}{
		{apperr.KindValidation, http.StatusBadRequest},
		{apperr.KindConflict, http.StatusConflict},
		{apperr.KindUnauthenticated, http.StatusUnauthorized},
		{apperr.KindUnauthorized, http.StatusUnauthorized},
		{apperr.KindForbidden, http.StatusForbidden},
		{apperr.KindNotFound, http.StatusNotFound},
		{apperr.KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			c := qt.New(t)
			c.Assert(tt.kind.HTTPStatus(), qt.Equals, tt.status)
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	c := qt.New(t)

	err := fmt.Errorf("loading project: %w", apperr.NotFound("Project not found"))
	c.Assert(apperr.KindOf(err), qt.Equals, apperr.KindNotFound)
	c.Assert(apperr.Is(err, apperr.KindNotFound), qt.IsTrue)
	c.Assert(apperr.Is(nil, apperr.KindNotFound), qt.IsFalse)
	c.Assert(apperr.KindOf(errors.New("boom")), qt.Equals, apperr.KindInternal)
}

func TestInternalKeepsCause(t *testing.T) {
	c := qt.New(t)

	cause := errors.New("disk I/O error")
	err := apperr.Internal("Error fetching projects", cause)

	c.Assert(errors.Is(err, cause), qt.IsTrue)
	c.Assert(err.Error(), qt.Equals, "Error fetching projects: disk I/O error")
	c.Assert(err.Message, qt.Equals, "Error fetching projects")
}
