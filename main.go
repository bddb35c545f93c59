package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sameersharma62616/edyucationn/config"
	"github.com/sameersharma62616/edyucationn/handlers"
	"github.com/sameersharma62616/edyucationn/middleware"
	"github.com/sameersharma62616/edyucationn/models"
	"github.com/sameersharma62616/edyucationn/service"
	"github.com/sameersharma62616/edyucationn/store"
)

func main() {
	_ = godotenv.Load()
	config.ValidateEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb:", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongodb disconnect:", err)
		}
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal("mongodb indexes:", err)
	}

	var mediaService *service.MediaService
	if cfg.S3Bucket != "" {
		mediaService, err = service.NewMediaService(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			log.Fatal("s3:", err)
		}
	} else {
		log.Println("warning: AWS_S3_BUCKET not set; media uploads will fail")
	}
	mailer := &service.Mailer{DB: db, EncKey: cfg.MailEncryptionKey}

	authHandler := &handlers.AuthHandler{
		DB:         db,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		AdminEmail: cfg.AdminEmail,
		AdminPass:  cfg.AdminPass,
	}
	adminHandler := &handlers.AdminHandler{DB: db, Mailer: mailer, EncKey: cfg.MailEncryptionKey}
	lecturesHandler := &handlers.LecturesHandler{DB: db, Media: mediaService}
	playlistsHandler := &handlers.PlaylistsHandler{DB: db}
	usersHandler := &handlers.UsersHandler{DB: db}
	mediaHandler := &handlers.MediaHandler{
		DB:       db,
		Media:    mediaService,
		MaxBytes: cfg.MaxUploadMB * 1024 * 1024,
	}

	r := chi.NewRouter()
	r.Use(middleware.AllowAll())
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"EduConnect API is running!"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/lectures", lecturesHandler.List)
		r.Get("/users/teachers", usersHandler.Teachers)
		r.Get("/users/{id}", usersHandler.Get)

		// Any authenticated identity
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))

			r.Get("/lectures/teacher/{id}", lecturesHandler.ByTeacher)
			r.Put("/lectures/like/{id}", lecturesHandler.ToggleLike)
			r.Post("/lectures/comment/{id}", lecturesHandler.AddComment)
			r.Get("/lectures/comments/{id}", lecturesHandler.Comments)
			r.Get("/lectures/{id}/media", mediaHandler.MediaURL)
			// Ownership (creator or admin) is enforced in the handlers
			r.Put("/lectures/{id}", lecturesHandler.Update)
			r.Delete("/lectures/{id}", lecturesHandler.Delete)

			r.Post("/playlists/create", playlistsHandler.Create)
			r.Get("/playlists/my", playlistsHandler.ListMine)
			r.Get("/playlists/all", playlistsHandler.ListMine)
			r.Put("/playlists/update/{id}", playlistsHandler.Update)
			r.Delete("/playlists/{id}", playlistsHandler.Delete)

			r.Get("/users/search", usersHandler.SearchTeachers)
			r.Post("/users/save/{lectureId}", usersHandler.ToggleSave)
			r.Get("/users/saved/lectures", usersHandler.SavedLectures)

			// Teacher only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleTeacher))
				r.Post("/lectures", lecturesHandler.Create)
				r.Post("/lectures/{id}/media", mediaHandler.Upload)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Post("/admin/create-teacher", adminHandler.CreateTeacher)
				r.Get("/admin/mail-settings", adminHandler.GetMailSettings)
				r.Put("/admin/mail-settings", adminHandler.SaveMailSettings)
				r.Get("/users/admin/teachers/details", usersHandler.AdminTeacherDetails)
				r.Delete("/users/admin/delete/{id}", usersHandler.AdminDeleteTeacher)
				r.Put("/users/admin/update-teacher/{id}", usersHandler.AdminUpdateTeacher)
				r.Put("/users/admin/update-self", usersHandler.AdminUpdateSelf)
			})
		})
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
