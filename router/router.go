package router

import (
	"github.com/labstack/echo/v4"

	assistant "agriplan/pkg/assistant/controller"
	auth "agriplan/pkg/auth/controller"
	crop "agriplan/pkg/crop/controller"
	field "agriplan/pkg/field/controller"
	kb "agriplan/pkg/kb/controller"
	"agriplan/pkg/middleware"
	plan "agriplan/pkg/plan/controller"
	schedule "agriplan/pkg/schedule/controller"
	soil "agriplan/pkg/soil/controller"
)

// The catalog, recommendation, profile and health handlers have no
// controller package of their own.
type (
	healthController interface {
		Health(echo.Context) error
	}
	catalogController interface {
		List(echo.Context) error
		Crop(echo.Context) error
		Compatibility(echo.Context) error
	}
	recommendController interface {
		Recommend(echo.Context) error
		Rulesets(echo.Context) error
	}
	profileController interface {
		Get(echo.Context) error
		Put(echo.Context) error
		Delete(echo.Context) error
	}
)

type Controllers struct {
	Auth      auth.AuthController
	Health    healthController
	Catalog   catalogController
	Recommend recommendController
	Plan      plan.PlanController
	Profile   profileController
	Field     field.FieldController
	Crop      crop.CropController
	Activity  schedule.ActivityController
	Soil      soil.SoilController
	Assistant assistant.AssistantController
	KB        kb.KBController
}

// New registers every route. Public routes need no session; everything else
// runs behind middleware.Session.
func New(e *echo.Echo, h Controllers, requireSession bool) *echo.Echo {
	e.GET("/health", h.Health.Health)
	e.GET("/catalog", h.Catalog.List)
	e.GET("/catalog/crops/:name", h.Catalog.Crop)
	e.GET("/catalog/compatibility", h.Catalog.Compatibility)
	e.POST("/recommendations", h.Recommend.Recommend)
	e.GET("/recommendations/rulesets", h.Recommend.Rulesets)

	e.POST("/auth/sign-in", h.Auth.SignIn)
	e.POST("/auth/sign-up", h.Auth.SignUp)
	e.POST("/auth/sign-out", h.Auth.SignOut)

	api := e.Group("", middleware.Session(requireSession))
	api.GET("/whoami", h.Auth.WhoAmI)

	api.GET("/profile", h.Profile.Get)
	api.PUT("/profile", h.Profile.Put)
	api.DELETE("/profile", h.Profile.Delete)

	api.POST("/business-plan", h.Plan.Project)
	api.GET("/business-plan/export", h.Plan.Export)
	api.POST("/business-plans", h.Plan.Save)
	api.GET("/business-plans", h.Plan.History)
	api.GET("/business-plans/latest", h.Plan.Latest)

	api.GET("/fields", h.Field.List)
	api.POST("/fields", h.Field.Create)
	api.GET("/fields/:id", h.Field.Get)
	api.DELETE("/fields/:id", h.Field.Delete)

	api.GET("/crops", h.Crop.List)
	api.POST("/crops", h.Crop.Create)
	api.GET("/crops/summary", h.Crop.Summary)
	api.POST("/crops/recommended", h.Crop.AcceptRecommended)
	api.GET("/crops/:id", h.Crop.Get)
	api.PATCH("/crops/:id", h.Crop.Patch)
	api.DELETE("/crops/:id", h.Crop.Delete)

	api.GET("/activities", h.Activity.List)
	api.PATCH("/activities/:id", h.Activity.Patch)

	api.GET("/soil-readings", h.Soil.List)
	api.POST("/soil-readings", h.Soil.Create)

	api.POST("/assistant/messages", h.Assistant.Message)
	api.DELETE("/assistant/messages", h.Assistant.Reset)

	api.POST("/kb/ingest", h.KB.IngestText)
	api.POST("/kb/ingest/url", h.KB.IngestURL)
	api.GET("/kb/search", h.KB.Search)
	api.GET("/kb/docs", h.KB.Docs)
	return e
}
