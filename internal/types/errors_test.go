package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (s *ErrorTestSuite) TestNewGameError() {
	// Setup
	code := ErrIllegalPlay
	message := "7♣ cannot be played on 5♥"

	// Execute
	err := NewGameError(code, message)

	// Assert
	s.Equal(code, err.Code, "Error code should match")
	s.Equal(message, err.Message, "Error message should match")
	s.Nil(err.Err, "Underlying error should be nil")
}

func (s *ErrorTestSuite) TestErrorf() {
	err := Errorf(ErrInvalidIndex, "card %d is not in a hand of %d", 7, 5)

	s.Equal(ErrInvalidIndex, err.Code)
	s.Equal("card 7 is not in a hand of 5", err.Message)
}

func (s *ErrorTestSuite) TestWrapError() {
	// Setup
	code := ErrDatabaseError
	message := "saving round"
	underlying := errors.New("connection failed")

	// Execute
	err := WrapError(code, message, underlying)

	// Assert
	s.Equal(code, err.Code, "Error code should match")
	s.Equal(message, err.Message, "Error message should match")
	s.Equal(underlying, err.Err, "Underlying error should match")
	s.ErrorIs(err, underlying)
}

func (s *ErrorTestSuite) TestErrorString() {
	testCases := []struct {
		name     string
		err      *GameError
		expected string
	}{
		{
			name:     "Simple error",
			err:      NewGameError(ErrDrawUsed, "optional draw already used"),
			expected: "DRAW_USED: optional draw already used",
		},
		{
			name:     "Wrapped error",
			err:      WrapError(ErrDatabaseError, "saving round", errors.New("connection failed")),
			expected: "DATABASE_ERROR: saving round (connection failed)",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.err.Error(), "Error string should match expected format")
		})
	}
}

func (s *ErrorTestSuite) TestIsGameError() {
	// Setup
	gameErr := NewGameError(ErrSixObligation, "cover your six")
	regularErr := errors.New("regular error")

	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{
			name:     "Matching game error",
			err:      gameErr,
			code:     ErrSixObligation,
			expected: true,
		},
		{
			name:     "Wrapped game error",
			err:      fmt.Errorf("play: %w", gameErr),
			code:     ErrSixObligation,
			expected: true,
		},
		{
			name:     "Non-matching game error",
			err:      gameErr,
			code:     ErrInternalError,
			expected: false,
		},
		{
			name:     "Regular error",
			err:      regularErr,
			code:     ErrSixObligation,
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			code:     ErrSixObligation,
			expected: false,
		},
	}

	// Execute and assert
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result := IsGameError(tc.err, tc.code)
			s.Equal(tc.expected, result, "IsGameError result should match expected value")
		})
	}
}

func (s *ErrorTestSuite) TestCodeOf() {
	s.Equal(ErrMustDraw, CodeOf(NewGameError(ErrMustDraw, "draw first")))
	s.Equal(ErrInternalError, CodeOf(errors.New("boom")))
}

func (s *ErrorTestSuite) TestAs() {
	// Setup
	gameErr := NewGameError(ErrRoundOver, "round is over")
	regularErr := errors.New("regular error")

	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Game error",
			err:      gameErr,
			expected: true,
		},
		{
			name:     "Regular error",
			err:      regularErr,
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	// Execute and assert
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			var target *GameError
			result := As(tc.err, &target)
			s.Equal(tc.expected, result, "As result should match expected value")
			if tc.expected {
				s.Equal(gameErr, target, "Target should be set to the game error")
			}
		})
	}
}
