// Package stub serves the fixture store over the same REST surface the real
// backend exposes. It exists so the REST data source can be exercised end to
// end (and checked for parity with mock mode) without a deployed backend.
package stub

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tetoca/tetoca-go/internal/data"
	"github.com/tetoca/tetoca-go/internal/data/fixture"
	"github.com/tetoca/tetoca-go/internal/models"
	"github.com/tetoca/tetoca-go/internal/transport"
)

type Handler struct {
	Store     *fixture.Store
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Login(c *gin.Context) {
	var creds data.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		writeError(c, http.StatusBadRequest, transport.CodeBadRequest, "invalid login payload")
		return
	}
	if err := h.Validator.Struct(creds); err != nil {
		writeError(c, http.StatusBadRequest, transport.CodeBadRequest, err.Error())
		return
	}
	session, err := h.Store.Login(creds.Email, creds.Password)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) Register(c *gin.Context) {
	var input data.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, http.StatusBadRequest, transport.CodeBadRequest, "invalid register payload")
		return
	}
	if err := h.Validator.Struct(input); err != nil {
		writeError(c, http.StatusBadRequest, transport.CodeBadRequest, err.Error())
		return
	}
	session, err := h.Store.Register(input)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *Handler) Logout(c *gin.Context) {
	h.Store.RevokeToken(sessionToken(c))
	c.Status(http.StatusNoContent)
}

func (h *Handler) Profile(c *gin.Context) {
	user, err := h.Store.UserByToken(sessionToken(c))
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (h *Handler) CompaniesList(c *gin.Context) {
	companies := h.Store.Enterprises()
	if tenantID := c.Param("tenantId"); tenantID != "" {
		companies = filterByTenant(companies, tenantID)
	}
	c.JSON(http.StatusOK, gin.H{"data": companies})
}

func (h *Handler) CompanyDetails(c *gin.Context) {
	company, err := h.Store.Enterprise(c.Param("id"))
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": company})
}

func (h *Handler) CompanySearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		writeError(c, http.StatusBadRequest, transport.CodeBadRequest, "query parameter q required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.Store.Search(query)})
}

func (h *Handler) CategoriesList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Store.Categories()})
}

func (h *Handler) CompaniesByCategory(c *gin.Context) {
	companies, err := h.Store.EnterprisesByCategory(c.Param("id"))
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": companies})
}

func (h *Handler) QueuesByCompany(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Store.QueuesByEnterprise(c.Param("id"))})
}

func (h *Handler) QueueDetails(c *gin.Context) {
	queue, err := h.Store.Queue(c.Param("id"))
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": queue})
}

func (h *Handler) JoinQueue(c *gin.Context) {
	var input data.JoinQueueInput
	// The join body is optional: customer fields default to the session user.
	_ = c.ShouldBindJSON(&input)
	input.QueueID = c.Param("id")

	ticket, err := h.Store.Join(sessionToken(c), input)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": ticket})
}

func (h *Handler) TicketDetails(c *gin.Context) {
	ticket, err := h.Store.Ticket(c.Param("id"))
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ticket})
}

func (h *Handler) PauseTicket(c *gin.Context)  { h.applyTicketAction(c, models.ActionPause) }
func (h *Handler) ResumeTicket(c *gin.Context) { h.applyTicketAction(c, models.ActionResume) }
func (h *Handler) CancelTicket(c *gin.Context) { h.applyTicketAction(c, models.ActionCancel) }

func (h *Handler) applyTicketAction(c *gin.Context, action string) {
	ticket, err := h.Store.Apply(sessionToken(c), c.Param("id"), action)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ticket})
}

func (h *Handler) MyTickets(c *gin.Context) {
	tickets, err := h.Store.TicketsByToken(sessionToken(c))
	if err != nil {
		writeAPIError(c, err)
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	c.JSON(http.StatusOK, gin.H{"data": tickets})
}

func (h *Handler) RegisterPushToken(c *gin.Context) {
	var body struct {
		Token string `json:"token" validate:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Token == "" {
		writeError(c, http.StatusBadRequest, transport.CodeBadRequest, "token required")
		return
	}
	if err := h.Store.SetPushToken(sessionToken(c), body.Token); err != nil {
		writeAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func filterByTenant(companies []models.Enterprise, tenantID string) []models.Enterprise {
	out := make([]models.Enterprise, 0, len(companies))
	for _, e := range companies {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out
}

func writeAPIError(c *gin.Context, err error) {
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		writeError(c, apiErr.Status, apiErr.Code, apiErr.Message)
		return
	}
	writeError(c, http.StatusInternalServerError, transport.CodeServerError, err.Error())
}

func writeError(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}
