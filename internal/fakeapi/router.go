package fakeapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yaroslav/vlantrunk/internal/logging"
	"github.com/yaroslav/vlantrunk/models"
	"github.com/yaroslav/vlantrunk/sdk"
)

// Exception codes returned in the error envelope.
const (
	CodePublic         = "SoftLayer_Exception_Public"
	CodeObjectNotFound = "SoftLayer_Exception_ObjectNotFound"
)

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Router builds the gin engine serving the fake endpoints.
func (p *Provider) Router(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(p.basicAuth())

	account := router.Group("/SoftLayer_Account")
	{
		account.GET("/getHardware.json", p.handle(sdk.OpListHardware, p.listHardware))
		account.GET("/getNetworkVlans.json", p.handle(sdk.OpListVLANs, p.listVLANs))
	}

	component := router.Group("/SoftLayer_Network_Component/:id")
	{
		component.GET("/getNetworkVlanTrunks.json", p.handle(sdk.OpGetVLANTrunks, p.getTrunks))
		component.POST("/addNetworkVlanTrunks.json", p.handle(sdk.OpAddVLANTrunks, p.addTrunksHandler))
		component.POST("/clearNetworkVlanTrunks.json", p.handle(sdk.OpClearVLANTrunks, p.clearTrunksHandler))
	}

	return router
}

// requestLogger logs each request with the client-supplied request ID.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("fake api request",
			zap.String(logging.FieldRequestID, c.GetHeader(sdk.HeaderRequestID)),
			zap.String(logging.FieldMethod, c.Request.Method),
			zap.String(logging.FieldOperation, c.FullPath()),
			zap.Int(logging.FieldStatusCode, c.Writer.Status()),
			zap.Duration(logging.FieldDuration, time.Since(start)),
		)
	}
}

func (p *Provider) basicAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, key, ok := c.Request.BasicAuth()
		if !ok || user != p.username || key != p.apiKey {
			respondError(c, http.StatusUnauthorized, CodePublic, "Invalid API token.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// handle counts the call and serves a queued failure instead of fn when one exists.
func (p *Provider) handle(operation string, fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if f, failed := p.record(operation); failed {
			code := f.Code
			if code == "" {
				code = CodePublic
			}
			respondError(c, f.Status, code, f.Message)
			return
		}
		fn(c)
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorEnvelope{Error: message, Code: code})
}

func componentID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, CodeObjectNotFound,
			fmt.Sprintf("Unable to find object with id of '%s'.", c.Param("id")))
		return 0, false
	}
	return id, true
}

func (p *Provider) listHardware(c *gin.Context) {
	p.mu.Lock()
	hardware := append([]models.Hardware{}, p.hardware...)
	p.mu.Unlock()
	c.JSON(http.StatusOK, hardware)
}

func (p *Provider) listVLANs(c *gin.Context) {
	p.mu.Lock()
	vlans := append([]models.VLAN{}, p.vlans...)
	p.mu.Unlock()
	c.JSON(http.StatusOK, vlans)
}

func (p *Provider) getTrunks(c *gin.Context) {
	id, ok := componentID(c)
	if !ok {
		return
	}

	p.mu.Lock()
	known := p.components[id]
	trunks := p.trunkList(id)
	p.mu.Unlock()

	if !known {
		respondError(c, http.StatusNotFound, CodeObjectNotFound,
			fmt.Sprintf("Unable to find object with id of '%d'.", id))
		return
	}
	c.JSON(http.StatusOK, trunks)
}

type addTrunksRequest struct {
	Parameters [][]struct {
		ID int `json:"id"`
	} `json:"parameters"`
}

func (p *Provider) addTrunksHandler(c *gin.Context) {
	id, ok := componentID(c)
	if !ok {
		return
	}

	var req addTrunksRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Parameters) != 1 {
		respondError(c, http.StatusBadRequest, CodePublic, "Invalid parameters.")
		return
	}

	ids := make([]int, 0, len(req.Parameters[0]))
	for _, ref := range req.Parameters[0] {
		ids = append(ids, ref.ID)
	}

	added, missing, ok := p.addTrunks(id, ids)
	if !ok {
		respondError(c, http.StatusNotFound, CodeObjectNotFound,
			fmt.Sprintf("Unable to find object with id of '%d'.", missing))
		return
	}
	c.JSON(http.StatusOK, added)
}

func (p *Provider) clearTrunksHandler(c *gin.Context) {
	id, ok := componentID(c)
	if !ok {
		return
	}

	removed, ok := p.clearTrunks(id)
	if !ok {
		respondError(c, http.StatusNotFound, CodeObjectNotFound,
			fmt.Sprintf("Unable to find object with id of '%d'.", id))
		return
	}
	c.JSON(http.StatusOK, removed)
}
