package validation

import (
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/mockcommerce/checkout-sandbox/internal/apierror"
)

// BindAndValidate binds the JSON body into out and runs validation. On
// failure it writes the taxonomy error response and returns a non-nil error
// so the handler can short-circuit.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		ae := apierror.Invalid("", "malformed request body: %v", err)
		c.JSON(ae.HTTPStatus(), ae)
		return err
	}
	if err := v.Struct(out); err != nil {
		ae := toAPIError(err)
		c.JSON(ae.HTTPStatus(), ae)
		return err
	}
	return nil
}

// toAPIError picks the first field error and points param at it.
func toAPIError(err error) *apierror.Error {
	if ve, ok := err.(validatorv10.ValidationErrors); ok && len(ve) > 0 {
		fe := ve[0]
		return apierror.Invalid(fieldPath(fe), "field failed %q validation", fe.Tag())
	}
	return apierror.Invalid("", "request validation failed: %v", err)
}

func fieldPath(fe validatorv10.FieldError) string {
	ns := fe.StructNamespace()
	// strip the request struct name, keep the field path
	for i := 0; i < len(ns); i++ {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return ns
}
