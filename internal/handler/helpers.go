package handler

import (
	"errors"
	"net/http"

	"stockledger/internal/apierror"
	"stockledger/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
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

// respondError maps the domain error taxonomy onto HTTP statuses. Conflicts
// (409) must stay distinguishable from validation failures (400): clients
// retry the former after re-reading the version, and reject the latter.
func respondError(c *gin.Context, err error) {
	var (
		validation *apperr.ValidationError
		conflict   *apperr.ConflictError
		notFound   *apperr.NotFoundError
		constraint *apperr.ConstraintError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, apierror.New(validation.Error()))
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, apierror.NewConflict(conflict.Error(), conflict.Expected, conflict.Got))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
	case errors.As(err, &constraint):
		c.JSON(http.StatusConflict, apierror.New(constraint.Error()))
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// A mutation committed between a delete's reference check and the
		// delete itself; the database constraint catches it last.
		c.JSON(http.StatusConflict, apierror.New("resource is still referenced by inventory records"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
