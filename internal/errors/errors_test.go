package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "character not found",
			expected: "NOT_FOUND: character not found",
		},
		{
			name:     "data loss error",
			code:     errors.CodeDataLoss,
			message:  "snapshot truncated",
			expected: "DATA_LOSS: snapshot truncated",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.NotFound("character not found").
		WithMeta("character_id", "colonel-mustard").
		WithMeta("game_id", "game_1")

	s.Equal("colonel-mustard", err.Meta["character_id"])
	s.Equal("game_1", errors.GetMeta(err)["game_id"])
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.NotFoundf("character %s not found", "nobody").WithMeta("character_id", "nobody")
	wrapped := errors.Wrap(base, "failed to move character")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("failed to move character", errors.GetMessage(wrapped))
	s.Equal("nobody", wrapped.Meta["character_id"])
	s.True(errors.IsNotFound(wrapped))
	s.True(stderrors.Is(wrapped, errors.NotFound("")))
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	base := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(base, "failed to reach provider")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal(base, wrapped.Unwrap())
	s.Nil(errors.Wrap(nil, "ignored"))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	base := errors.Internal("bad json").WithMeta("offset", 12)
	wrapped := errors.WrapWithCodef(base, errors.CodeDataLoss, "snapshot %s unreadable", "abc")

	s.True(errors.IsDataLoss(wrapped))
	s.Equal(12, wrapped.Meta["offset"])
	s.Equal("snapshot abc unreadable", wrapped.Message)
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal(errors.CodeUnavailable, errors.GetCode(errors.Unavailable("down")))
	s.True(errors.IsFailedPrecondition(errors.FailedPrecondition("game over")))
	s.True(errors.IsOutOfRange(errors.OutOfRangef("position %d,%d", 30, 2)))
}

func (s *ErrorsTestSuite) TestCodeFromHTTPStatus() {
	testCases := []struct {
		status   int
		expected errors.Code
	}{
		{http.StatusOK, errors.CodeOK},
		{http.StatusBadRequest, errors.CodeInvalidArgument},
		{http.StatusNotFound, errors.CodeNotFound},
		{http.StatusGatewayTimeout, errors.CodeDeadlineExceeded},
		{http.StatusInternalServerError, errors.CodeUnavailable},
		{http.StatusBadGateway, errors.CodeUnavailable},
	}

	for _, tc := range testCases {
		s.Run(http.StatusText(tc.status), func() {
			s.Equal(tc.expected, errors.CodeFromHTTPStatus(tc.status))
		})
	}
}
