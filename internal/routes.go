package internal

import (
	"net/http"
	"runlog/internal/controllers"
	"runlog/internal/providers"
)

func InitRoutes(runController *controllers.RunController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/runs", http.HandlerFunc(runController.ListRuns))
	routers.Post("/runs", http.HandlerFunc(runController.AddRun))
	routers.Get("/run", http.HandlerFunc(runController.GetRun))
	routers.Post("/runs/update", http.HandlerFunc(runController.UpdateRun))
	routers.Post("/runs/delete", http.HandlerFunc(runController.DeleteRun))
	routers.Post("/runs/duplicate", http.HandlerFunc(runController.DuplicateRun))

	routers.Post("/import", http.HandlerFunc(runController.Import))
	routers.Post("/import/spreadsheet", http.HandlerFunc(runController.ImportSpreadsheet))
	routers.Get("/export/json", http.HandlerFunc(runController.ExportJSON))
	routers.Get("/export/csv", http.HandlerFunc(runController.ExportCSV))
	routers.Post("/reset", http.HandlerFunc(runController.Reset))

	routers.Get("/stats", http.HandlerFunc(runController.GetStats))
	routers.Get("/stats/weekly", http.HandlerFunc(runController.GetWeeklyStats))
	routers.Get("/stats/monthly", http.HandlerFunc(runController.GetMonthlyStats))
	return routers
}
