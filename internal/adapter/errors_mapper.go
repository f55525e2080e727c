package adapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// gatewayErrorBody covers both error shapes the auth gateway answers with:
// {"code": 400, "error_code": "...", "msg": "..."} and the OAuth-style
// {"error": "...", "error_description": "..."}.
type gatewayErrorBody struct {
	Code             json.RawMessage `json:"code"`
	ErrorCode        string          `json:"error_code"`
	Msg              string          `json:"msg"`
	Message          string          `json:"message"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	httpErr := &HTTPError{
		StatusCode: resp.StatusCode(),
		kind:       statusKind(resp.StatusCode()),
	}
	httpErr.Code, httpErr.Message = parseErrorBody(resp.Body())
	if httpErr.Message == "" {
		httpErr.Message = http.StatusText(resp.StatusCode())
	}

	return httpErr
}

func parseErrorBody(raw []byte) (code, message string) {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return "", ""
	}

	var parsed gatewayErrorBody
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", body
	}

	code = parsed.ErrorCode
	if code == "" {
		// "code" is numeric on newer gateways and a string on older ones.
		if s, err := strconv.Unquote(string(parsed.Code)); err == nil {
			code = s
		}
	}
	if code == "" {
		code = parsed.Error
	}

	for _, m := range []string{parsed.Msg, parsed.Message, parsed.ErrorDescription, parsed.Error} {
		if m != "" {
			return code, m
		}
	}
	return code, body
}

func statusKind(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return ErrUnprocessable
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return nil
	}
}
