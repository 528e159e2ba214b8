package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runTeamRouter(
	secureGroup *echo.Group,
	teamService *services.TeamService,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	teamController := controllers.NewTeamController(teamService, logger)

	secureGroup.GET("/teams", teamController.GetTeams, authMW.Require(authz.TeamsView))
	secureGroup.GET("/teams/:id", teamController.FindTeam, authMW.Require(authz.TeamsView))
	secureGroup.POST("/teams", teamController.CreateTeam, authMW.Require(authz.TeamsCreate))
	secureGroup.PUT("/teams/:id", teamController.UpdateTeam, authMW.Require(authz.TeamsUpdate))
	secureGroup.DELETE("/teams/:id", teamController.DeleteTeam, authMW.Require(authz.TeamsDelete))
}
