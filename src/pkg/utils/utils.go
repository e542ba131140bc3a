package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	httpError "trip-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

// Result is the envelope every usecase returns.
type Result struct {
	Data  interface{}
	Error error
}

type response struct {
	Success  bool        `json:"success"`
	Code     int         `json:"code"`
	CodeName string      `json:"codeName,omitempty"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data,omitempty"`
}

// Response writes a success envelope.
func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// ResponseError maps a usecase error to its HTTP status. Unknown error types
// fall back to 500.
func ResponseError(err error, ctx *fiber.Ctx) error {
	if commonErr, ok := err.(*httpError.CommonError); ok {
		return ctx.Status(commonErr.Code).JSON(response{
			Success:  false,
			Code:     commonErr.Code,
			CodeName: commonErr.CodeName,
			Message:  commonErr.Message,
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(response{
		Success:  false,
		Code:     fiber.StatusInternalServerError,
		CodeName: "UNKNOWN",
		Message:  err.Error(),
	})
}

// ConvertString marshals any value for log metadata.
func ConvertString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%+v", v)
		}
		return string(data)
	}
}

func ConvertInt(v interface{}) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		n, _ := strconv.Atoi(val)
		return n
	default:
		return 0
	}
}

// FormatCurrency renders an amount with thousand separators for notification
// text, e.g. 1234567.89 -> "1.234.568 VND". Halves round away from zero for
// both signs.
func FormatCurrency(amount float64, currency string) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	return fmt.Sprintf("%s%s %s", sign, string(out), currency)
}
