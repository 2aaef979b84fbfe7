package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/kevinmichaelchen/readme-gen/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("generating: %w", apperr.NotFound("Repository not found."))

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NotErrorIs(t, err, apperr.ErrUpstreamAPI)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Repository not found.", apperr.UserMessage(err))
	assert.Equal(t, 3, apperr.ExitCode(err))
}

func TestUnclassified(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Equal(t, "An unexpected error occurred. Please try again.", apperr.UserMessage(err))
	assert.Equal(t, 1, apperr.ExitCode(err))
	assert.Equal(t, 0, apperr.ExitCode(nil))
}

func TestConnectivityKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")
	err := apperr.Connectivity(cause, "Failed to fetch repository data.")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperr.ErrConnectivity)
	assert.Equal(t, "Failed to fetch repository data.: dial tcp: connection refused", err.Error())
	assert.Equal(t, "Failed to fetch repository data.", apperr.UserMessage(err))
}

func TestUpstream(t *testing.T) {
	t.Parallel()

	err := apperr.Upstream("GitHub", http.StatusBadGateway, "Bad Gateway")

	assert.Equal(t, "GitHub API error: Bad Gateway", err.Error())
	assert.Equal(t, http.StatusBadGateway, err.StatusCode)
	assert.Equal(t, 4, apperr.ExitCode(err))
}

func TestStatusText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Service Unavailable", apperr.StatusText(&http.Response{
		StatusCode: http.StatusServiceUnavailable,
		Status:     "503 Service Unavailable",
	}))
	assert.Equal(t, "Down For Maintenance", apperr.StatusText(&http.Response{
		StatusCode: http.StatusServiceUnavailable,
		Status:     "503 Down For Maintenance",
	}))
	assert.Equal(t, "Not Found", apperr.StatusText(&http.Response{StatusCode: http.StatusNotFound}))
}
