package main

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resourceocr/models"
	"resourceocr/process/archive"
	"resourceocr/process/report"
	"resourceocr/process/screening"
)

var runs *runner

func setupRoutes(r *gin.Engine) {
	r.POST("/login", loginHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/operators", requireRole(models.RoleAdministrator), createOperatorHandler)
	authGroup.POST("/runs", requireCanRun(), createRunHandler)
	authGroup.GET("/runs", listRunsHandler)
	authGroup.GET("/runs/latest", latestRunHandler)
	authGroup.GET("/runs/:id", getRunHandler)
	authGroup.GET("/runs/:id/report", runReportHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		claims, err := parseToken(authHeader[7:])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		canRun, _ := claims["can_run"].(bool)
		c.Set("username", username)
		c.Set("role", role)
		c.Set("can_run", canRun)
		c.Next()
	}
}

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "requires role " + role})
			c.Abort()
			return
		}
		c.Next()
	}
}

func requireCanRun() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("can_run") {
			c.JSON(http.StatusForbidden, gin.H{"error": "operator may not trigger runs"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"username": c.GetString("username"),
		"role":     c.GetString("role"),
		"can_run":  c.GetBool("can_run"),
	})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	op, err := Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	token, err := issueToken(op)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token})
}

func createOperatorHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	op, err := Register(req.Username, req.Password, req.Role)
	if errors.Is(err, archive.ErrOperatorExists) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": op.ID, "username": op.Username, "role": op.Role.Name})
}

// createRunHandler runs the pipeline synchronously and returns the archived run.
func createRunHandler(c *gin.Context) {
	var operatorID *uint
	if db != nil {
		if op, err := archive.FindOperator(db, c.GetString("username")); err == nil {
			operatorID = &op.ID
		}
	}
	run, _, err := runs.tryRun(c.Request.Context(), db, operatorID)
	switch {
	case errors.Is(err, errRunInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, screening.ErrInsufficientInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "run": run})
	case err != nil && run == nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "run": run})
	default:
		c.JSON(http.StatusOK, run)
	}
}

func listRunsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := archive.List(db, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func latestRunHandler(c *gin.Context) {
	run, err := archive.Latest(db)
	if errors.Is(err, archive.ErrNoRuns) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// runFromParam loads the run named by the :id path parameter and writes the error
// response itself when it cannot.
func runFromParam(c *gin.Context) (*models.Run, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}
	run, err := archive.Get(db, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return nil, false
	}
	return run, true
}

func getRunHandler(c *gin.Context) {
	if run, ok := runFromParam(c); ok {
		c.JSON(http.StatusOK, run)
	}
}

// runReportHandler renders the same text table the CLI prints.
func runReportHandler(c *gin.Context) {
	run, ok := runFromParam(c)
	if !ok {
		return
	}
	rows, missing, err := archive.Rows(run)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := report.Write(&buf, rows, missing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}
