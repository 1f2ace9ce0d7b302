package search_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pulsefeed/post-events/pkg/entity"
	"github.com/pulsefeed/post-events/pkg/gentest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSearchHandlerRejectsEmptyQuery(t *testing.T) {
	svc, _ := setUpService(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	svc.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandlerReturnsMatches(t *testing.T) {
	svc, _ := setUpService(t)
	post := gentest.RandomPost(0)

	require.NoError(t, dispatch(t, svc, makeCreatedEvent(t, post)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/search?query="+post.Content, nil)
	svc.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                `json:"success"`
		Results []entity.SearchPost `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, post.Id, resp.Results[0].PostId)
}
