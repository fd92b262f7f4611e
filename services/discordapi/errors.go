package discordapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrUpstream is returned when the Discord API answers with a non-2xx status
	ErrUpstream = errors.New("discord api returned an error status")
	// ErrRequest is returned when the Discord API could not be reached
	ErrRequest = errors.New("discord api request failed")
)

// Error struct
type Error struct {
	Message string `json:"message"`
	Err     error  `json:"error"`
	Code    int    `json:"code"`
	Status  int    `json:"status,omitempty"`
	Body    string `json:"body,omitempty"`
}

// Error func
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap func
func (e *Error) Unwrap() error {
	return e.Err
}

// ParseDiscordError converts an error from the discordgo session
func ParseDiscordError(err error) *Error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return &Error{
			Code:    -1,
			Err:     fmt.Errorf("%w: %s", ErrRequest, err.Error()),
			Message: err.Error(),
		}
	}

	body := string(restErr.ResponseBody)
	discErr := &Error{
		Code:    -1,
		Err:     ErrUpstream,
		Status:  restErr.Response.StatusCode,
		Body:    body,
		Message: fmt.Sprintf("Discord API error: %d %s", restErr.Response.StatusCode, strings.TrimSpace(body)),
	}

	if restErr.Message != nil {
		discErr.Code = restErr.Message.Code
		if restErr.Message.Message != "" {
			discErr.Message = fmt.Sprintf("Discord API error: %d %s", restErr.Response.StatusCode, restErr.Message.Message)
		}
	}

	return discErr
}
