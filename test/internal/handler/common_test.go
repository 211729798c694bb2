package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"community-pulse/internal/middleware"
	"community-pulse/internal/model"

	"github.com/gin-gonic/gin"
)

var (
	InvalidJSON = `{"invalid": json}`
)

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

// create HTTP request with form body
func createFormHTTPRequest(method, target string, values url.Values) *http.Request {
	req, err := http.NewRequest(method, target, strings.NewReader(values.Encode()))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// fakeAuth 測試用的認證中介層，直接把使用者塞進 context
func fakeAuth(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, user)
		c.Next()
	}
}

func testUser() *model.User {
	return &model.User{ID: 2, Username: "alice", Email: "alice@example.com"}
}
