package users

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func postJSON(body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	handler := NewHandler(nil, zap.NewNop())
	c, w := postJSON(`{"username":"jan","password":"secret","role":"superuser"}`)

	handler.CreateUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid role")
}

func TestCreateUserRejectsMissingFields(t *testing.T) {
	handler := NewHandler(nil, zap.NewNop())
	c, w := postJSON(`{"username":"jan"}`)

	handler.CreateUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	handler := NewHandler(nil, zap.NewNop())
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/users/1", bytes.NewBufferString(`{"role":"root"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.UpdateUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid role")
}
