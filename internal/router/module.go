package router

import "github.com/gin-gonic/gin"

// Module is a feature area (auth, catalog) that mounts its own routes
// on the shared /api group. Wiring happens in InitModules; the registry
// only calls Register.
type Module interface {
	Register(rg *gin.RouterGroup)
}
