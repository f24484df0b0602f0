package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestMatchFAQKeyword(t *testing.T) {
	reply := matchFAQ("What is the monthly rent here?")
	assert.Contains(t, reply, "monthly rents")
}

func TestMatchFAQCaseInsensitive(t *testing.T) {
	assert.Equal(t, matchFAQ("DEPOSIT?"), matchFAQ("deposit?"))
}

func TestMatchFAQFallback(t *testing.T) {
	assert.Equal(t, fallbackReply, matchFAQ("qwertyuiop"))
}

func TestChatEndpoint(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cc := NewChatbotController()
	assert.NoError(t, cc.Chat(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "DwellDash assistant")
}

func TestChatEndpointEmptyMessage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(`{"message":"  "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cc := NewChatbotController()
	assert.NoError(t, cc.Chat(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
