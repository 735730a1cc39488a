package telegram

import (
	"errors"
	"fmt"

	telegoapi "github.com/mymmrac/telego/telegoapi"
)

// ConnectivityError indicates the Bot API could not be reached: network
// failure, timeout, or a malformed transport response. The polling loop
// recovers from it by retrying with a delay.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("telegram: %s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// PlatformError indicates the transport succeeded but Telegram reported
// ok:false (bad payload, invalid token, rate limit, ...). For the initial
// handshake it is fatal to session startup; for steady-state sends it is
// logged and swallowed.
type PlatformError struct {
	Op          string
	Code        int
	Description string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("telegram: %s: api error %d: %s", e.Op, e.Code, e.Description)
}

// classifyErr maps an error returned by the Bot API to the taxonomy above.
func classifyErr(op string, err error) error {
	var apiErr *telegoapi.Error
	if errors.As(err, &apiErr) {
		return &PlatformError{Op: op, Code: apiErr.ErrorCode, Description: apiErr.Description}
	}
	return &ConnectivityError{Op: op, Err: err}
}
