package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Gangulr/finace/internal/errors"
	"github.com/Gangulr/finace/internal/middleware"
	"github.com/Gangulr/finace/internal/pagination"
	"github.com/Gangulr/finace/internal/services"
	"github.com/Gangulr/finace/internal/store"
	"github.com/Gangulr/finace/internal/uuid"
	"github.com/Gangulr/finace/internal/validator"
)

// TotalCountHeader carries the number of records a list request matched.
const TotalCountHeader = "X-Total-Count"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success    bool   `json:"success" example:"false"`
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message" example:"Amount must be a number"`
	Code       string `json:"code" example:"NOT_A_NUMBER"`
}

// MessageResponse is returned by operations that have no record to send back.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
}

// AmountInput accepts an amount sent as either a JSON string or a JSON number
// and keeps the text exactly as sent, so the amount rules see what the user
// typed.
type AmountInput string

// UnmarshalJSON implements json.Unmarshaler.
func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}
	*a = AmountInput(data)
	return nil
}

func optionalAmount(a *AmountInput) *string {
	if a == nil {
		return nil
	}
	s := string(*a)
	return &s
}

// Access decides which user a request may act for.
type Access struct {
	// RequireAuth restricts every record to the user named in the token.
	RequireAuth bool
}

// owner resolves the user a create or list request acts for. Without
// RequireAuth the requested id is trusted, as the original routes did.
func (a Access) owner(c *gin.Context, requested string) (string, error) {
	authUser, ok := middleware.UserID(c)
	if !a.RequireAuth {
		if requested == "" && ok {
			return authUser, nil
		}
		return requested, nil
	}
	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	if requested != "" && requested != authUser {
		return "", apperrors.ErrForbidden
	}
	return authUser, nil
}

// scope returns the owner by-id operations are restricted to, or "" when
// any record may be touched.
func (a Access) scope(c *gin.Context) string {
	if !a.RequireAuth {
		return ""
	}
	id, _ := middleware.UserID(c)
	return id
}

// parseRecordID validates the :id path parameter.
func parseRecordID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid id")
	}
	return id, nil
}

// bindJSON binds the request body and converts failures into the same
// errors the record rules produce.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return services.AsAppError(validator.FromBinding(err))
	}
	return nil
}

// listOptions reads the optional category filter and page parameters.
func listOptions(c *gin.Context) (store.ListOptions, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return store.ListOptions{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid page parameters")
	}
	return store.ListOptions{Category: c.Query("category"), Page: page}, nil
}

// respondWithList writes items as a bare JSON array with the total count in
// a header.
func respondWithList[T any](c *gin.Context, items []T, total int64) {
	if items == nil {
		items = []T{}
	}
	c.Header(TotalCountHeader, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, items)
}

// respondWithError writes the JSON error envelope for err. Errors that are
// not *AppError become a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	middleware.LogError(c, appErr)
	c.JSON(appErr.StatusCode, appErr.Envelope())
}
