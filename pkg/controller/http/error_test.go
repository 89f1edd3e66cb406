package http_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	controller "github.com/m-mizutani/keycodes/pkg/controller/http"
	"github.com/m-mizutani/keycodes/pkg/domain/model"
	"github.com/m-mizutani/keycodes/pkg/domain/types"
)

func TestToEnvelope(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want model.ErrorEnvelope
	}{
		{
			name: "upstream status is mirrored",
			err:  goerr.Wrap(&types.UpstreamStatusError{StatusCode: 404, Message: "Not Found"}, "failed to list commits"),
			want: model.ErrorEnvelope{Code: 404, Name: "Not Found", Description: "Not Found"},
		},
		{
			name: "upstream rate limit keeps GitHub message",
			err:  &types.UpstreamStatusError{StatusCode: 403, Message: "API rate limit exceeded"},
			want: model.ErrorEnvelope{Code: 403, Name: "Forbidden", Description: "API rate limit exceeded"},
		},
		{
			name: "upstream status without message",
			err:  &types.UpstreamStatusError{StatusCode: 503},
			want: model.ErrorEnvelope{Code: 503, Name: "Service Unavailable", Description: "Service Unavailable"},
		},
		{
			name: "non error upstream status becomes bad gateway",
			err:  &types.UpstreamStatusError{StatusCode: 304, Message: "Not Modified"},
			want: model.ErrorEnvelope{Code: 502, Name: "Bad Gateway", Description: "Not Modified"},
		},
		{
			name: "missing query parameter",
			err:  &types.InvalidQueryError{Param: "q"},
			want: model.ErrorEnvelope{Code: 400, Name: "Bad Request", Description: "missing required query parameter: q"},
		},
		{
			name: "shape error",
			err:  goerr.Wrap(&types.UpstreamShapeError{Path: "[0].sha", Reason: "commit list is empty"}, "repository has no commits"),
			want: model.ErrorEnvelope{Code: 502, Name: "Bad Gateway", Description: "unexpected upstream response at [0].sha: commit list is empty"},
		},
		{
			name: "decode error",
			err:  &types.DecodeError{Field: "content", Err: errors.New("illegal base64 data at input byte 3")},
			want: model.ErrorEnvelope{Code: 502, Name: "Bad Gateway", Description: "failed to decode content: illegal base64 data at input byte 3"},
		},
		{
			name: "transport error hides network details",
			err:  &types.TransportError{Err: errors.New("dial tcp 10.0.0.1:443: connection refused")},
			want: model.ErrorEnvelope{Code: 502, Name: "Bad Gateway", Description: "Failed to reach the GitHub API."},
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: model.ErrorEnvelope{
				Code:        500,
				Name:        "Internal Server Error",
				Description: "The server encountered an internal error and was unable to complete your request.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := controller.ToEnvelope(tt.err)
			gt.Equal(t, *got, tt.want)
			gt.Equal(t, got.Name, http.StatusText(got.Code))
		})
	}
}

func TestToEnvelope_InvalidURL(t *testing.T) {
	got := controller.ToEnvelope(&types.InvalidURLError{URL: "http://[::1", Err: errors.New("missing ']' in host")})
	gt.Equal(t, got.Code, http.StatusBadRequest)
	gt.String(t, got.Description).Contains("http://[::1")
}
