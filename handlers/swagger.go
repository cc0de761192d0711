package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the auth service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>skill-mint-auth — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the auth endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "skill-mint-auth", "version": "1.0.0" },
  "paths": {
    "/skill-mint/login": {
      "post": {
        "summary": "Signup (newOne=true) or login with email and password",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"},"newOne":{"type":"boolean"},"name":{"type":"string"},"phone":{"type":"string"}}}}}},
        "responses": { "200": { "description": "login successful, session cookie set" }, "201": { "description": "account created, session cookie set" }, "400": { "description": "missing or invalid credentials" }, "401": { "description": "incorrect password" }, "404": { "description": "email not found" }, "409": { "description": "email already registered" } }
      }
    },
    "/skill-mint/google-login": {
      "post": {
        "summary": "Upsert a Google-asserted identity and open a session",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"name":{"type":"string"},"googleId":{"type":"string"},"profilePicture":{"type":"string"}}}}}},
        "responses": { "200": { "description": "session cookie set" }, "400": { "description": "email or googleId missing" } }
      }
    },
    "/skill-mint/check": {
      "get": { "summary": "Session introspection", "responses": { "200": { "description": "loggedIn true with user and expiry" }, "401": { "description": "loggedIn false" } } }
    },
    "/skill-mint/profile": {
      "get": { "summary": "Echo verified session claims", "responses": { "200": { "description": "claims" }, "401": { "description": "missing, expired, or invalid token" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
