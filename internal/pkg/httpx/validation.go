// internal/pkg/httpx/validation.go
package httpx

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// MaxBodyBytes 是请求体的上限
const MaxBodyBytes = 1 << 20

// ErrInvalidInput 表示请求参数不合法，handler 统一映射为 400
var ErrInvalidInput = errors.New("invalid input")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 错误信息里使用 json 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// money: 非负且最多两位小数
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.Float64 {
			return false
		}
		d := decimal.NewFromFloat(fl.Field().Float())
		return !d.IsNegative() && d.Exponent() >= -2
	})
	return v
}

// DecodeJSON 解析请求体并按 validate 标签校验
func DecodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errors.Wrap(ErrInvalidInput, "request body too large")
		}
		return errors.Wrap(ErrInvalidInput, "malformed request body")
	}
	return Validate(dst)
}

// Validate 校验结构体，失败时返回包装了 ErrInvalidInput 的错误
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(ErrInvalidInput, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+": "+validationMessage(fe))
	}
	return errors.Wrap(ErrInvalidInput, strings.Join(msgs, "; "))
}

// ValidateUUID 校验路径或查询参数中的 id
func ValidateUUID(field, value string) error {
	if err := validate.Var(value, "required,uuid"); err != nil {
		return errors.Wrapf(ErrInvalidInput, "%s: Invalid UUID format", field)
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "min", "gte":
		return "Must be at least " + fe.Param()
	case "max", "lte":
		return "Must be at most " + fe.Param()
	case "money":
		return "Must be a non-negative amount with at most 2 decimal places"
	default:
		return "Invalid value"
	}
}
