package handlers

import (
	"errors"
	"net/http"

	"github.com/JonnyWalker81/problemjson/internal/bind"
	"github.com/JonnyWalker81/problemjson/internal/logger"
	"github.com/JonnyWalker81/problemjson/internal/models"
	"github.com/JonnyWalker81/problemjson/internal/problemhttp"
	"github.com/JonnyWalker81/problemjson/internal/service"
	"github.com/JonnyWalker81/problemjson/pkg/apierror"
	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	personService service.PersonService
	problems      *problemhttp.Writer
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(personService service.PersonService, problems *problemhttp.Writer) *PersonHandler {
	return &PersonHandler{
		personService: personService,
		problems:      problems,
	}
}

// CreatePerson handles POST /api/v1/people
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req models.CreatePersonRequest
	if errs, ok := bind.JSON(c, &req); !ok {
		problemhttp.Write(h.problems, c, apierror.NewValidationError("", errs.Errors...))
		return
	}

	person, err := h.personService.CreatePerson(c.Request.Context(), &req)
	if err != nil {
		var idErr *service.InvalidIDError
		switch {
		case errors.As(err, &idErr):
			problemhttp.Write(h.problems, c, apierror.NewValidationError("",
				apierror.ValidationError{
					Detail: idErr.Reason,
					Source: apierror.FromBody(apierror.Pointer("id")),
				}))
		case errors.Is(err, service.ErrPersonExists):
			problemhttp.Write(h.problems, c, apierror.NewConflictError("A person with this ID already exists"))
		case errors.Is(err, service.ErrEmailTaken):
			problemhttp.Write(h.problems, c, apierror.NewConflictError("A person with this email already exists"))
		default:
			h.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, person)
}

// GetPerson handles GET /api/v1/people/:id
func (h *PersonHandler) GetPerson(c *gin.Context) {
	personID := c.Param("id")

	person, err := h.personService.GetPerson(c.Request.Context(), personID)
	if err != nil {
		var idErr *service.InvalidIDError
		switch {
		case errors.As(err, &idErr):
			problemhttp.Write(h.problems, c, apierror.NewBadRequestError("person id "+idErr.Reason))
		case errors.Is(err, service.ErrPersonNotFound):
			problemhttp.Write(h.problems, c, apierror.NewNotFoundError("Person", personID))
		default:
			h.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, person)
}

// internalError logs err and answers with a generic 500 problem
func (h *PersonHandler) internalError(c *gin.Context, err error) {
	logger.Ctx(c.Request.Context()).Error("person request failed",
		logger.Err(err),
		logger.String("path", c.FullPath()),
	)
	problemhttp.Write(h.problems, c, apierror.NewInternalError())
}
