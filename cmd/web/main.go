package main

import (
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vitrineshop.org/vitrine-web/internal/cart"
	"vitrineshop.org/vitrine-web/internal/cartstore"
	"vitrineshop.org/vitrine-web/internal/catalog"
	"vitrineshop.org/vitrine-web/internal/config"
	mw "vitrineshop.org/vitrine-web/internal/middleware"
	"vitrineshop.org/vitrine-web/internal/suggest"
	"vitrineshop.org/vitrine-web/internal/viewport"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode is set in main() based on env: VITRINE_DEV (preferred) or DEV (fallback)
	devMode   bool
	tmplCache *template.Template

	cfg           config.Config
	catalogClient *catalog.Client
	cartRepo      cart.Repository
	cartSvc       *cart.Service
	badge         *cartstore.Counter
	pageSizer     viewport.Resolver
	suggestions   *suggest.Registry
)

func main() {
	var (
		addr    string
		cfgPath string
	)
	flag.StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	flag.StringVar(&cfgPath, "config", os.Getenv("VITRINE_CONFIG"), "config file path")
	flag.Parse()

	c, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if addr != "" {
		c.Addr = addr
	}

	// Dev mode: prefer VITRINE_DEV, fallback to DEV
	devMode = os.Getenv("VITRINE_DEV") != "" || os.Getenv("DEV") != ""

	if err := initApp(c); err != nil {
		log.Fatalf("init: %v", err)
	}

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			log.Fatalf("parse templates: %v", err)
		}
		tmplCache = tc
	}

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("storefront listening on %s (devMode=%v catalog=%s)", c.Addr, devMode, c.CatalogBaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}

// initApp wires the application components from config. Tests call it with
// their own config.
func initApp(c config.Config) error {
	cfg = c
	templatesDir = c.TemplatesDir
	publicDir = c.PublicDir
	pageSizer = c.Viewport

	catalogClient = catalog.NewClient(c.CatalogBaseURL)

	store, err := cartstore.Open(c.StateDir)
	if err != nil {
		return err
	}
	cartRepo = store
	badge, _ = cartstore.NewCounter(cartRepo)

	cartSvc = cart.NewService(
		cartRepo,
		&cart.SimulatedOrderService{Delay: c.CheckoutDelay},
		cart.WithWriteDelay(c.WriteDelay),
		cart.WithObserver(badge.Apply),
	)

	suggestions = suggest.NewRegistry(func() *suggest.Fetcher {
		return suggest.NewFetcher(catalogClient,
			suggest.WithWindow(c.DebounceWindow),
			suggest.WithLimit(c.SuggestLimit))
	})
	return nil
}

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(middleware.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	// Catalog
	r.Get("/", HomeHandler)
	r.Get("/products/grid", ProductGridFrag)
	r.Get("/products/{id}", ProductHandler)

	// Search suggestions
	r.Get("/search/suggest", SuggestFrag)
	r.Post("/search/clear", SuggestClearHandler)

	// Cart
	r.Get("/cart", CartHandler)
	r.Get("/cart/badge", CartBadgeFrag)
	r.Post("/cart/items", CartAddHandler)
	r.Post("/cart/items/{id}", CartSetQuantityHandler)
	r.Delete("/cart/items/{id}", CartRemoveHandler)
	r.Post("/cart/clear", CartClearHandler)
	r.Post("/cart/checkout", CartCheckoutHandler)

	return r
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
		"inc": func(i int) int { return i + 1 },
		"dec": func(i int) int { return i - 1 },
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func templates(w http.ResponseWriter) *template.Template {
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return nil
		}
		return tc
	}
	if tmplCache == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return nil
	}
	return tmplCache
}

// renderPage executes the named page template ("page_"+name) inside the
// shared layout. In dev mode, templates are reparsed on each request.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t := templates(w)
	if t == nil {
		return
	}
	if err := t.ExecuteTemplate(w, "page_"+name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}

// renderTemplate executes a named fragment template without the layout.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t := templates(w)
	if t == nil {
		return
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}
