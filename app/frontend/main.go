package main

import(
	"flag"
	"fmt"
	"html/template"
	golog "log"
	"net/http"

	hw "github.com/skypies/util/handlerware"

	"github.com/skypies/obstacle/archive"
	"github.com/skypies/obstacle/config"
	"github.com/skypies/obstacle/log"
	"github.com/skypies/obstacle/query"
	"github.com/skypies/obstacle/ui"
)

var(
	fTemplateDir string
	fStaticDir   string
)

func init() {
	// The templates dir is relative to the module root, which is where the app gets run from.
	flag.StringVar(&fTemplateDir, "templates", "app/frontend/templates", "directory of HTML templates")
	flag.StringVar(&fStaticDir, "static", "app/frontend/static", "directory of static files")
}

func main() {
	flag.Parse()

	cfg,err := config.FromEnv()
	if err != nil {
		golog.Fatalf("config: %v", err)
	}

	l := log.New(cfg.LogLevel, cfg.LogDir)
	tmpl := hw.ParseRecursive(template.New("").Funcs(ui.TemplateFuncMap()), fTemplateDir)

	var publisher ui.Publisher
	if cfg.CanPublish() {
		publisher = archive.NewPublisher(cfg, l)
	}

	app := ui.NewApp(cfg, query.NewFromConfig(cfg, l), publisher, tmpl, l)

	mux := http.NewServeMux()
	app.Register(mux)
	fs := http.FileServer(http.Dir(fStaticDir))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	l.Info("starting", "port", cfg.Port, "imageserver", cfg.ImageServerURL, "epqs", cfg.EPQSURL,
		"publish", cfg.CanPublish())
	golog.Printf("Listening on port %s [obstacle/app/frontend]", cfg.Port)
	golog.Fatal(http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), mux))
}
