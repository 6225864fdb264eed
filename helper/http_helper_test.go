package helper

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kb-cms/models"
)

func TestGetStatusCode(t *testing.T) {
	u := NewHTTPHelper()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", models.NewErrorNotFound("article 9 not found"), http.StatusNotFound},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"conflict", models.NewErrorConflict("draft already open"), http.StatusConflict},
		{"permission", models.NewErrorPermission("not allowed"), http.StatusForbidden},
		{"unauthorized", models.NewErrorUnauthorized("bad credentials"), http.StatusUnauthorized},
		{"transient", models.NewErrorTransient("translator down", nil), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, u.GetStatusCode(tc.err))
		})
	}
}

func TestUnderscore(t *testing.T) {
	cases := map[string]string{
		"Title":                      "title",
		"IsPublic":                   "is_public",
		"ArticleID":                  "article_id",
		"LanguageCode":               "language_code",
		"URLPath":                    "url_path",
		"AutoTranslateFromArticleID": "auto_translate_from_article_id",
		"lower":                      "lower",
		"":                           "",
	}

	for in, want := range cases {
		assert.Equal(t, want, Underscore(in), "input %q", in)
	}
}

type envelope struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage json.RawMessage `json:"code_message"`
	Data        json.RawMessage `json:"data"`
}

func performSend(t *testing.T, send func(c *gin.Context)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	send(c)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestSendErrorResponse(t *testing.T) {
	u := NewHTTPHelper()

	w, env := performSend(t, func(c *gin.Context) {
		u.SendErrorResponse(c, models.NewErrorConflict("article 3 already has an open draft"))
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, http.StatusConflict, env.Code)
	assert.Equal(t, "conflict", env.CodeType)
	assert.Contains(t, string(env.CodeMessage), "open draft")

	w, env = performSend(t, func(c *gin.Context) {
		u.SendErrorResponse(c, models.NewErrorPermission("role \"editor\" is not allowed to delete articles"))
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", env.CodeType)

	w, env = performSend(t, func(c *gin.Context) {
		u.SendErrorResponse(c, gorm.ErrRecordNotFound)
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "notFound", env.CodeType)
}

func TestSendSuccessAndCreated(t *testing.T) {
	u := NewHTTPHelper()

	w, env := performSend(t, func(c *gin.Context) {
		u.SendSuccess(c, "", gin.H{"ok": true})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env.CodeType)
	assert.Contains(t, string(env.CodeMessage), "success")

	w, env = performSend(t, func(c *gin.Context) {
		u.SendCreated(c, "draft created", gin.H{"version_number": 2})
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "created", env.CodeType)
}

func TestValidateStruct(t *testing.T) {
	u := NewHTTPHelper()

	payload := models.RegisterRequest{Username: "ab", Email: "not-an-email", Password: "secret1"}
	fieldErrors := u.ValidateStruct(payload)
	require.NotEmpty(t, fieldErrors)

	w, _ := performSend(t, func(c *gin.Context) {
		u.SendValidationError(c, fieldErrors)
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Code        int                 `json:"code"`
		CodeType    string              `json:"code_type"`
		CodeMessage map[string][]string `json:"code_message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validationError", body.CodeType)
	assert.Contains(t, body.CodeMessage, "username")
	assert.Contains(t, body.CodeMessage, "email")

	assert.Nil(t, u.ValidateStruct(models.RegisterRequest{
		Username: "writer",
		Email:    "writer@example.com",
		Password: "secret1",
	}))
}
