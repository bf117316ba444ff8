package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// APIError is a non-2xx answer from the salon API. Message is the server's
// own text and is shown to the user as is.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error_code,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// UserMessage is the text a failed write surfaces to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if ae, ok := AsAPIError(err); ok {
		return ae.Error()
	}
	var be BusinessError
	if errors.As(err, &be) {
		if msg, ok := businessMessages[be.Code]; ok {
			return msg
		}
		return be.Code
	}
	return err.Error()
}
