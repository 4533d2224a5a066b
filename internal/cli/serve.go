package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	router "tripplanner/internal/http"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				env.AppAddr = addr
			}
			if driver, _ := cmd.Flags().GetString("store"); driver != "" {
				env.StoreDriver = driver
			}
			if env.GinMode != "" {
				gin.SetMode(env.GinMode)
			}

			store, closeStore, err := openStore(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer closeStore()

			srv := &http.Server{
				Addr:              env.AppAddr,
				Handler:           router.NewRouter(env, store),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       20 * time.Second,
				WriteTimeout:      20 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				log.Printf("[SERVER] listening on %s store=%s", env.AppAddr, env.StoreDriver)
				serverErrors <- srv.ListenAndServe()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case sig := <-quit:
				log.Printf("[SERVER] shutting down signal=%v", sig)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				_ = srv.Close()
				return err
			}
			log.Println("[SERVER] stopped")
			return nil
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides APP_ADDR)")
	cmd.Flags().String("store", "", "Store driver: mysql, mongo or memory (overrides STORE_DRIVER)")
	return cmd
}
