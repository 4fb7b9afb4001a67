package handlers

import (
	"github.com/gin-gonic/gin"

	"taskflow/internal/middleware"
)

// RegisterRoutes wires every page route onto r.
func RegisterRoutes(r *gin.Engine, authHandler *AuthHandler, taskHandler *TaskHandler) {
	// Public routes
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected routes
	authed := r.Group("/")
	authed.Use(middleware.RequireAuth())
	{
		authed.GET("", taskHandler.Dashboard)
		authed.POST("", taskHandler.Dashboard)
		authed.GET("/dashboard", taskHandler.Dashboard)
		authed.POST("/dashboard", taskHandler.Dashboard)
		authed.GET("/task/new", taskHandler.ShowNewTask)
		authed.POST("/task/new", taskHandler.CreateTask)
		authed.GET("/task/:id", taskHandler.ShowTask)
		authed.GET("/task/:id/update", taskHandler.ShowEditTask)
		authed.POST("/task/:id/update", taskHandler.UpdateTask)
		authed.POST("/task/:id/delete", taskHandler.DeleteTask)
	}
}
