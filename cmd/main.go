package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mateusmacedo/go-dispatch/internal/scene"
	sceneDomain "github.com/mateusmacedo/go-dispatch/internal/scene/domain"
	sceneInfra "github.com/mateusmacedo/go-dispatch/internal/scene/infrastructure"
	pkgInfra "github.com/mateusmacedo/go-dispatch/pkg/infrastructure"
	zapAdapter "github.com/mateusmacedo/go-dispatch/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	idGenerator := func() string {
		return uuid.New().String()
	}

	registry := pkgInfra.NewInMemoryScriptRegistry()
	dispatcher := pkgInfra.NewEventDispatcher(pkgInfra.NewResolver(), registry, appLogger)

	// String de conexão para o banco de dados PostgreSQL
	dsn := "host=localhost user=myuser password=mypassword dbname=mydb port=5432 sslmode=disable TimeZone=UTC"

	repository, err := sceneInfra.NewGormSceneObjectRepository(dsn, appLogger)
	if err != nil {
		appLogger.Error(context.Background(), "error initializing the scene object repository", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}

	engine := &sceneDomain.Engine{Name: "go-dispatch"}

	sceneSlice := scene.NewSceneSlice(
		dispatcher,
		registry,
		repository,
		idGenerator,
		appLogger,
		engine,
	)

	if err := sceneSlice.Service().LoadScene(ctx); err != nil {
		appLogger.Error(ctx, "error loading scene", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}

	// Laço de atualização: origina onStep periodicamente.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := sceneSlice.Service().StepAll(ctx); err != nil {
					appLogger.Error(ctx, "error stepping scene", map[string]interface{}{
						"error": err,
					})
				}
			}
		}
	}()

	router := chi.NewRouter()

	sceneSlice.RegisterRoutes(router)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		appLogger.Info(ctx, "signal received", map[string]interface{}{"signal": sig})
		cancel()
	}()

	serverAddress := ":8080"
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	go func() {
		appLogger.Info(ctx, "Server starting on:"+serverAddress, nil)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error(ctx, "error starting the server", map[string]interface{}{
				"error": err,
			})
		}
	}()

	<-ctx.Done()
	appLogger.Info(ctx, "shutting down...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	sceneSlice.Service().Shutdown(shutdownCtx)

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(context.Background(), "error shutting down the server", map[string]interface{}{
			"error": err,
		})
	}

	appLogger.Info(context.Background(), "server stopped", nil)
}
