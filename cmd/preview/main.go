// Command preview serves a rendered report over HTTP: an HTML view at / and
// the workbook download at /report.xlsx. The table comes from a file or a
// postgres query, configured through the environment.
package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"flextab/adapters/markdown"
	"flextab/adapters/sqldb"
	"flextab/adapters/xlsx"
	"flextab/app"
	"flextab/domain/grouped"
	"flextab/domain/table"
	"flextab/internal"
	"flextab/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	logger := internal.DefaultLogger

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config: %v", err)
		return
	}

	tbl, err := loadTable(cfg)
	if err != nil {
		logger.Error("load table: %v", err)
		return
	}
	logger.Info("table loaded (%d columns, %d rows)", tbl.NCol(), tbl.NRow())

	groups := splitGroups(cfg.Data.GroupColumns)
	svc := app.NewRenderService()
	plan, err := svc.BuildReport(tbl, groups,
		grouped.Options{ExpandSingle: cfg.Render.ExpandSingle}, cfg.Defaults())
	if err != nil {
		logger.Error("build report: %v", err)
		return
	}
	logger.Info("plan %s bound: %d rows, %d title merges",
		plan.ID(), plan.NRow(), len(plan.Merges()))

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		md := markdown.NewRenderer()
		if err := svc.RenderPlan(plan, md); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, pageTemplate, md.HTML())
	})

	r.Get("/report.xlsx", func(w http.ResponseWriter, req *http.Request) {
		wb := xlsx.NewRenderer("Report", cfg.Defaults())
		if err := svc.RenderPlan(plan, wb); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="report.xlsx"`)
		if _, err := wb.WriteTo(w); err != nil {
			logger.Error("stream workbook: %v", err)
		}
	})

	logger.Info("preview listening on :%s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, r); err != nil {
		logger.Error("server: %v", err)
	}
}

func loadTable(cfg *config.Config) (*table.Table, error) {
	if cfg.Data.DatabaseURL != "" {
		src, err := sqldb.Connect("postgres", cfg.Data.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer src.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return src.ResolveTable(ctx, cfg.Data.Query)
	}
	return xlsx.NewTableReader(cfg.Data.SheetName).ReadTable(cfg.Data.TableFile)
}

func splitGroups(raw string) []string {
	var groups []string
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>flextab preview</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.8rem; text-align: left; }
th { background: #f2f2f2; }
</style>
</head>
<body>
<p><a href="/report.xlsx">download workbook</a></p>
%s
</body>
</html>
`
