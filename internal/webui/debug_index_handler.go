package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"gati.bengalurutransit.org/internal/appconf"
)

//go:embed debug_index.html
var templateFS embed.FS

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		// Log the actual error server-side
		slog.Error("failed to parse debug template", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	err = tmpl.Execute(w, dataStruct)
	if err != nil {
		slog.Error("failed to execute debug template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// debugIndexHandler dumps a loaded dataset for inspection. It is disabled in
// Production.
func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.Config.Env == appconf.Production {
		http.NotFound(w, r)
		return
	}
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "wards":
		data = webUI.Datasets.Wards.All()
		title = "Ward Boundaries - Loaded Index"
	case "routes":
		data = webUI.Datasets.Routes.All()
		title = "BMTC Routes - Loaded Store"
	case "matrix":
		data = webUI.Datasets.Matrix()
		title = "Travel Times - Ward Pair Matrix"
	case "pairs":
		data = webUI.Datasets.Estimator.PlanPairs(webUI.Datasets.Routes.All())
		title = "Travel Times - Planned Ward Pairs"
	default:
		data = map[string]string{
			"error": "Please use one of the following: wards, routes, matrix, pairs.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
