package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

var serverPort int

const rebuildDebounce = 500 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds on changes",
	Long: `The serve command performs an initial build, then serves the output
directory over HTTP. Content, layouts and static directories are watched; any
change triggers a debounced rebuild. A failed rebuild logs the error and keeps
serving the previous good snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runBuild(); err != nil {
			return fmt.Errorf("initial build: %w", err)
		}
		logger.Info("initial build successful")

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file watcher: %w", err)
		}
		defer watcher.Close()

		go watchAndRebuild(watcher)

		for _, root := range []string{appConfig.ContentDir, appConfig.LayoutsDir, appConfig.StaticDir} {
			if root == "" {
				continue
			}
			if _, err := os.Stat(root); os.IsNotExist(err) {
				logger.Debugw("directory not found, not watching", "dir", root)
				continue
			}
			if err := watchRecursive(watcher, root); err != nil {
				logger.Warnw("watch setup failed", "dir", root, "err", err)
			}
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Recoverer)
		r.Handle("/*", siteHandler(appConfig.OutputDir))

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", serverPort),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      15 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Infow("serving site", "dir", appConfig.OutputDir, "addr", fmt.Sprintf("http://localhost:%d", serverPort))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("serve: %w", err)
		case <-ctx.Done():
		}

		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// siteHandler serves the generated files, answering 404 for routes with no
// materialized page and disabling caches during local preview.
func siteHandler(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(dir, r.URL.Path, "index.html")); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		fileServer.ServeHTTP(w, r)
	})
}

func watchAndRebuild(watcher *fsnotify.Watcher) {
	var rebuildTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debugw("change detected", "path", event.Name, "op", event.Op.String())

			// New subdirectories are not watched automatically.
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					logger.Warnw("watch new directory", "dir", event.Name, "err", err)
				}
			}

			if rebuildTimer != nil {
				rebuildTimer.Stop()
			}
			rebuildTimer = time.AfterFunc(rebuildDebounce, func() {
				logger.Info("rebuilding site")
				if err := runBuild(); err != nil {
					logger.Errorw("rebuild failed, keeping previous output", "err", err)
					return
				}
				logger.Info("site rebuilt")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("watcher error", "err", err)
		}
	}
}

func watchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
