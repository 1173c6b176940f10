package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	api "github.com/eduvate/eduvate-api/internal/api/http"
	auth "github.com/eduvate/eduvate-api/internal/auth/middleware"
	"github.com/eduvate/eduvate-api/internal/cache"
	"github.com/eduvate/eduvate-api/internal/college"
	"github.com/eduvate/eduvate-api/internal/config"
	"github.com/eduvate/eduvate-api/internal/db"
	"github.com/eduvate/eduvate-api/internal/exam"
	"github.com/eduvate/eduvate-api/internal/hostel"
	"github.com/eduvate/eduvate-api/internal/placement"
	"github.com/eduvate/eduvate-api/internal/scholarship"
	"github.com/eduvate/eduvate-api/internal/seed"
	"github.com/eduvate/eduvate-api/internal/storage"
	"github.com/eduvate/eduvate-api/internal/user"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	driver, err := db.ParseDriver(cfg.DBDriver)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	dbh, err := db.Open(openCtx, driver, cfg.DBDSN)
	cancel()
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	// --- Cache (Redis when configured, in-process otherwise) ---
	var c cache.Cache = cache.NewMemory()
	if cfg.RedisAddr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		rc, err := cache.NewRedis(pingCtx, cfg.RedisAddr, cfg.RedisDB, "eduvate:")
		cancel()
		if err != nil {
			log.Fatalf("redis %s: %v", cfg.RedisAddr, err)
		}
		c = rc
	}
	defer c.Close()

	colleges := college.NewService(college.NewSQLStore(dbh, driver), c, cfg.CacheTTL)
	if cfg.SeedOnStart {
		data, err := seed.Default()
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		n, err := seed.Apply(ctx, dbh, data, seed.DefaultRandSeed)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		// college ids changed; a shared Redis cache may still hold old candidates
		if err := colleges.InvalidateAll(ctx); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Printf("seeded %d colleges, %d cutoffs, %d placements", n.Colleges, n.Cutoffs, n.Placements)
	}

	bs, err := storage.NewFSStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	authSvc := auth.NewAuthService(cfg.JWTSecret, cfg.JWTExpiresIn)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.Mount(r, api.Deps{
		Auth:         authSvc,
		Users:        user.NewSQLStore(dbh, driver),
		Colleges:     colleges,
		Exams:        exam.NewSQLStore(dbh, driver),
		Scholarships: scholarship.NewSQLStore(dbh, driver),
		Hostels:      hostel.NewSQLStore(dbh, driver),
		Placements:   placement.NewSQLStore(dbh, driver),
		Uploads:      bs,
		DB:           dbh,
	})

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s (db=%s, cache=%s)", cfg.HTTPAddr, driver, c.Name())
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Printf("server: %v", err)
	}
}
