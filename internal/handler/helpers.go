package handler

import (
	"errors"
	"net/http"
	"reflect"

	"stationops/internal/apierror"
	"stationops/internal/middleware"
	"stationops/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalide : "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// currentUserID extracts the authenticated user's ID from the JWT claims.
// Routes behind JWTAuth always carry valid claims, so a parse failure here
// yields the zero UUID rather than a panic.
func currentUserID(c *gin.Context) uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return uuid.Nil
	}
	id, _ := uuid.Parse(claims.UserID)
	return id
}

// writeServiceError maps a service error onto the right HTTP status: typed
// validation failures carry their field map, optimistic-lock conflicts are a
// 409, everything else is a 400.
func writeServiceError(c *gin.Context, err error) {
	if ve, ok := err.(*apierror.ValidationError); ok {
		c.JSON(http.StatusUnprocessableEntity, ve)
		return
	}
	if errors.Is(err, repository.ErrVersionConflict) {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}
